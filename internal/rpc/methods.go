package rpc

import (
	"github.com/bankd/bankd/internal/rpc/rpc_handlers"
)

// registerAllMethods sets up the complete method registry. Called by
// NewServer.
func (s *Server) registerAllMethods() {
	// Banking methods
	s.registry.Register("create_user", &rpc_handlers.CreateUserMethod{})
	s.registry.Register("get_balance", &rpc_handlers.GetBalanceMethod{})
	s.registry.Register("deposit", &rpc_handlers.DepositMethod{})
	s.registry.Register("withdraw", &rpc_handlers.WithdrawMethod{})
	s.registry.Register("send", &rpc_handlers.SendMethod{})

	// Account history
	s.registry.Register("account_tx", &rpc_handlers.AccountTxMethod{})

	// Operational methods
	s.registry.Register("ping", &rpc_handlers.PingMethod{})
	s.registry.Register("server_info", &rpc_handlers.ServerInfoMethod{})
}
