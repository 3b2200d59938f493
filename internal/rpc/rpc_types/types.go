// Package rpc_types holds the request/response types shared by the RPC
// server and its method handlers, the external error vocabulary, and the
// service registry handlers resolve the bank through.
package rpc_types

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bankd/bankd/internal/core/bank"
	"github.com/bankd/bankd/internal/core/history"
)

// RpcContext carries request-scoped information into a method handler.
// Context already has the server's per-request timeout applied.
type RpcContext struct {
	Context  context.Context
	ClientIP string
}

// MethodHandler is implemented by every RPC method.
type MethodHandler interface {
	Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError)
}

// MethodRegistry maps method names to handlers.
type MethodRegistry struct {
	methods map[string]MethodHandler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]MethodHandler)}
}

func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (MethodHandler, bool) {
	handler, exists := r.methods[name]
	return handler, exists
}

func (r *MethodRegistry) List() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}

// ServiceRegistry exposes the daemon's services to method handlers. It
// is populated once at startup, before the server accepts requests.
type ServiceRegistry struct {
	Bank    *bank.Bank
	Journal *history.Journal
	Version string
	Started time.Time
}

// Services is the process-wide registry instance.
var Services *ServiceRegistry

// Common parameter shapes. Amounts are declared as json.Number so any
// non-number JSON value fails to decode, which surfaces as
// wrong_arguments before any lookup.
type UserParam struct {
	User string `json:"user"`
}

type CurrencyParam struct {
	Currency string `json:"currency"`
}

type AmountParam struct {
	Amount json.Number `json:"amount"`
}
