package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// PingMethod handles the ping RPC method. It exists to test connectivity
// and returns an empty success response.
type PingMethod struct{}

func (m *PingMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	return map[string]interface{}{}, nil
}
