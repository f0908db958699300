package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	glspserver "github.com/tliron/glsp/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Editors connect from local tooling, not browsers; origin checks
		// do not apply to the LSP wire.
		return true
	},
}

// RunWebSocket listens on addr and serves LSP to each WebSocket connection.
// Connections share the server's document registry. Blocks until the
// listener fails.
func (s *Server) RunWebSocket(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWebSocket)
	s.logger.Infow("serving CQL LSP over WebSocket", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.logger.Infow("LSP WebSocket connection request", "remote", r.RemoteAddr)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("Failed to upgrade WebSocket for LSP", "error", err, "remote", r.RemoteAddr)
		return
	}

	srv := glspserver.NewServer(s.protocolHandler(), serverName, false)

	// Blocks until the connection closes.
	srv.ServeWebSocket(conn)

	s.logger.Infow("LSP WebSocket connection closed", "remote", r.RemoteAddr)
}
