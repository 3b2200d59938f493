package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// DepositMethod handles the deposit RPC method.
type DepositMethod struct{}

func (m *DepositMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		rpc_types.UserParam
		rpc_types.CurrencyParam
		rpc_types.AmountParam
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if request.User == "" {
		return nil, rpc_types.RpcErrorMissingField("user")
	}
	if request.Currency == "" {
		return nil, rpc_types.RpcErrorMissingField("currency")
	}
	amount, rpcErr := parseAmount(request.Amount)
	if rpcErr != nil {
		return nil, rpcErr
	}

	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	balance, err := svc.Bank.Deposit(ctx.Context, request.User, request.Currency, amount)
	if err != nil {
		return nil, rpc_types.FromBankError(err)
	}

	return map[string]interface{}{
		"user":     request.User,
		"currency": request.Currency,
		"balance":  json.Number(balance),
	}, nil
}
