package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/core/history"
	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// AccountTxMethod handles the account_tx RPC method: the user's recent
// operations, newest first. The journal is bounded, so old or evicted
// history yields an empty list rather than an error.
type AccountTxMethod struct{}

func (m *AccountTxMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		rpc_types.UserParam
		Limit int `json:"limit,omitempty"`
	}
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if request.User == "" {
		return nil, rpc_types.RpcErrorMissingField("user")
	}
	if request.Limit < 0 {
		return nil, rpc_types.RpcErrorInvalidField("limit")
	}

	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	entries, err := svc.Bank.Recent(request.User, request.Limit)
	if err != nil {
		return nil, rpc_types.FromBankError(err)
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	return map[string]interface{}{
		"user":         request.User,
		"transactions": entries,
	}, nil
}
