package rpc

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

// WebSocketServer serves the same methods as the HTTP server over a
// WebSocket connection. Commands arrive as single JSON objects carrying
// "command", an optional "id" echoed back, and the method parameters
// inline.
type WebSocketServer struct {
	upgrader websocket.Upgrader
	inner    *Server
}

// webSocketCommand is the envelope of one incoming message.
type webSocketCommand struct {
	Command string      `json:"command"`
	ID      interface{} `json:"id,omitempty"`
}

// webSocketResponse is the envelope of one reply.
type webSocketResponse struct {
	Type   string      `json:"type"`
	ID     interface{} `json:"id,omitempty"`
	Status string      `json:"status"`
	Result interface{} `json:"result"`
}

// NewWebSocketServer creates a WebSocket server with the given
// per-command timeout and registers all methods.
func NewWebSocketServer(timeout time.Duration) *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		inner: NewServer(timeout),
	}
}

// ServeHTTP upgrades the connection and serves commands until the peer
// goes away.
func (ws *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	clientIP := getClientIP(r)
	var writeMu sync.Mutex

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		ws.handleMessage(conn, &writeMu, r, clientIP, message)
	}
}

func (ws *WebSocketServer) handleMessage(conn *websocket.Conn, writeMu *sync.Mutex, r *http.Request, clientIP string, message []byte) {
	var cmd webSocketCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		ws.writeResponse(conn, writeMu, nil, nil,
			rpc_types.NewRpcError(rpc_types.RpcPARSE_ERROR, "jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}
	if cmd.Command == "" {
		ws.writeResponse(conn, writeMu, cmd.ID, nil,
			rpc_types.NewRpcError(rpc_types.RpcINVALID_PARAMS, "missingCommand", "Missing command field"))
		return
	}

	// The whole message doubles as the params object; handlers ignore
	// the command and id fields.
	result, rpcErr := ws.inner.executeMethod(r.Context(), cmd.Command, message, clientIP)
	ws.writeResponse(conn, writeMu, cmd.ID, result, rpcErr)
}

func (ws *WebSocketServer) writeResponse(conn *websocket.Conn, writeMu *sync.Mutex, id interface{}, result interface{}, rpcErr *rpc_types.RpcError) {
	status := "success"
	if rpcErr != nil {
		status = "error"
	}
	response := webSocketResponse{
		Type:   "response",
		ID:     id,
		Status: status,
		Result: buildResult(result, rpcErr),
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.WriteJSON(response); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
