package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// SendMethod handles the send RPC method: a withdraw from the sender
// followed by a deposit to the receiver, with compensation handled
// inside the bank. Same-user transfers are rejected here, before any
// side effect.
type SendMethod struct{}

func (m *SendMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		FromUser string `json:"from_user"`
		ToUser   string `json:"to_user"`
		rpc_types.CurrencyParam
		rpc_types.AmountParam
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if request.FromUser == "" {
		return nil, rpc_types.RpcErrorMissingField("from_user")
	}
	if request.ToUser == "" {
		return nil, rpc_types.RpcErrorMissingField("to_user")
	}
	if request.Currency == "" {
		return nil, rpc_types.RpcErrorMissingField("currency")
	}
	amount, rpcErr := parseAmount(request.Amount)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if request.FromUser == request.ToUser {
		return nil, rpc_types.RpcErrorWrongArguments("Fields 'from_user' and 'to_user' must differ.")
	}

	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	fromBalance, toBalance, err := svc.Bank.Send(ctx.Context, request.FromUser, request.ToUser, request.Currency, amount)
	if err != nil {
		return nil, rpc_types.FromBankError(err)
	}

	return map[string]interface{}{
		"from_user":    request.FromUser,
		"to_user":      request.ToUser,
		"currency":     request.Currency,
		"from_balance": json.Number(fromBalance),
		"to_balance":   json.Number(toBalance),
	}, nil
}
