package rpc_handlers

import (
	"encoding/json"
	"time"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// ServerInfoMethod handles the server_info RPC method.
type ServerInfoMethod struct{}

func (m *ServerInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	svc, rpcErr := services()
	if rpcErr != nil {
		return nil, rpcErr
	}

	uptime := int64(0)
	if !svc.Started.IsZero() {
		uptime = int64(time.Since(svc.Started).Seconds())
	}

	return map[string]interface{}{
		"info": map[string]interface{}{
			"build_version":    svc.Version,
			"hostid":           "bankd",
			"uptime":           uptime,
			"users":            svc.Bank.UserCount(),
			"max_inflight":     svc.Bank.InflightLimit(),
			"journal_attached": svc.Journal != nil,
		},
	}, nil
}
