// Package rpc serves the bank's five-method API over HTTP JSON-RPC and
// WebSocket. Requests use the {"method": ..., "params": [{...}]} shape;
// responses carry a result object with status "success" or "error", the
// error case embedding error, error_code and error_message inside the
// result.
package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *rpc_types.MethodRegistry
	timeout  time.Duration
	limiter  *ClientLimiter
}

// NewServer creates an RPC server with the given per-request timeout and
// registers all methods.
func NewServer(timeout time.Duration) *Server {
	server := &Server{
		registry: rpc_types.NewMethodRegistry(),
		timeout:  timeout,
	}
	server.registerAllMethods()
	return server
}

// UseLimiter applies a per-client request throttle in front of method
// dispatch. Passing nil disables throttling.
func (s *Server) UseLimiter(l *ClientLimiter) {
	s.limiter = l
}

// Request is the wire form of a call: method name plus a params array
// holding at most one object.
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clientIP := getClientIP(r)
	if s.limiter != nil && !s.limiter.Allow(clientIP) {
		s.writeResponse(w, nil, rpc_types.RpcErrorSlowDown("Client is sending requests too quickly."))
		return
	}

	if r.Method == http.MethodGet {
		s.handleGetRequest(w, r, clientIP)
		return
	}
	s.handlePostRequest(w, r, clientIP)
}

// handleGetRequest serves parameterless queries such as
// GET /?command=server_info.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request, clientIP string) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}

	result, rpcErr := s.executeMethod(r.Context(), method, nil, clientIP)
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request, clientIP string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, rpc_types.RpcErrorInternal("Failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, rpc_types.NewRpcError(rpc_types.RpcPARSE_ERROR, "jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}
	if request.Method == "" {
		s.writeResponse(w, nil, rpc_types.NewRpcError(rpc_types.RpcINVALID_PARAMS, "missingCommand", "Missing method field"))
		return
	}

	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	result, rpcErr := s.executeMethod(r.Context(), request.Method, params, clientIP)
	s.writeResponse(w, result, rpcErr)
}

// executeMethod dispatches to the registered handler with the server's
// timeout applied. An abandoned operation may still run to completion
// inside the bank; only the wait is bounded.
func (s *Server) executeMethod(ctx context.Context, method string, params json.RawMessage, clientIP string) (interface{}, *rpc_types.RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, rpc_types.RpcErrorMethodNotFound(method)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return handler.Handle(&rpc_types.RpcContext{
		Context:  callCtx,
		ClientIP: clientIP,
	}, params)
}

// writeResponse writes the response envelope. Errors are reported inside
// the result object with status "error".
func (s *Server) writeResponse(w http.ResponseWriter, result interface{}, rpcErr *rpc_types.RpcError) {
	response := map[string]interface{}{
		"result": buildResult(result, rpcErr),
	}

	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// buildResult folds a handler outcome into the result object shared by
// the HTTP and WebSocket transports.
func buildResult(result interface{}, rpcErr *rpc_types.RpcError) map[string]interface{} {
	if rpcErr != nil {
		return map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		}
	}

	if resultMap, ok := result.(map[string]interface{}); ok {
		resultMap["status"] = "success"
		return resultMap
	}
	return map[string]interface{}{
		"status": "success",
		"data":   result,
	}
}

// getClientIP extracts the client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
