package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// CreateUserMethod handles the create_user RPC method.
type CreateUserMethod struct{}

func (m *CreateUserMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request rpc_types.UserParam
	if rpcErr := decodeParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if request.User == "" {
		return nil, rpc_types.RpcErrorMissingField("user")
	}

	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	if err := svc.Bank.CreateUser(request.User); err != nil {
		return nil, rpc_types.FromBankError(err)
	}

	return map[string]interface{}{
		"user": request.User,
	}, nil
}
