// Package rpc_handlers implements one RPC method per file. Handlers
// validate their parameters first (malformed input is wrong_arguments
// before any lookup), then call into the bank and translate its errors
// through rpc_types.
package rpc_handlers

import (
	"encoding/json"

	"github.com/bankd/bankd/internal/core/money"
	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// services returns the registry or an internal error when the daemon is
// not fully wired yet.
func services() (*rpc_types.ServiceRegistry, *rpc_types.RpcError) {
	if rpc_types.Services == nil || rpc_types.Services.Bank == nil {
		return nil, rpc_types.RpcErrorInternal("Bank service not available")
	}
	return rpc_types.Services, nil
}

// decodeParams unmarshals params into dst. A decode failure means some
// field carried the wrong JSON type, which is wrong_arguments.
func decodeParams(params json.RawMessage, dst interface{}) *rpc_types.RpcError {
	if params == nil {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return rpc_types.RpcErrorWrongArguments("Invalid parameters: " + err.Error())
	}
	return nil
}

// parseAmount validates the amount parameter: it must be present, be a
// JSON number, parse as a decimal with at most money.MaxFractionDigits
// fractional digits, and be strictly positive.
func parseAmount(n json.Number) (money.Money, *rpc_types.RpcError) {
	if n == "" {
		return money.Money{}, rpc_types.RpcErrorMissingField("amount")
	}
	m, err := money.FromString(n.String())
	if err != nil {
		return money.Money{}, rpc_types.RpcErrorInvalidField("amount")
	}
	if !m.IsPositive() {
		return money.Money{}, rpc_types.RpcErrorWrongArguments("Field 'amount' must be greater than zero.")
	}
	return m, nil
}
