package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// GetBalanceMethod handles the get_balance RPC method. The reported
// balance is the two-digit truncated display form, emitted as a JSON
// number.
type GetBalanceMethod struct{}

func (m *GetBalanceMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		rpc_types.UserParam
		rpc_types.CurrencyParam
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

	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	balance, err := svc.Bank.GetBalance(ctx.Context, request.User, request.Currency)
	if err != nil {
		return nil, rpc_types.FromBankError(err)
	}

	return map[string]interface{}{
		"user":     request.User,
		"currency": request.Currency,
		"balance":  json.Number(balance),
	}, nil
}
