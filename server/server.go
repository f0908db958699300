// Package server runs the CQL language server: a glsp protocol handler over
// the document registry, completion service, and formatter, served on stdio
// or WebSocket.
package server

import (
	"github.com/google/uuid"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"github.com/cqlls/cqlls/complete"
	"github.com/cqlls/cqlls/document"
)

const serverName = "cqlls"

// Server owns one LSP session's handler and serves it over a transport.
type Server struct {
	handler *Handler
	logger  *zap.SugaredLogger
	session string
}

// New assembles a server around the registry and completion service. Each
// server carries a session ID that tags every log line, so logs from
// concurrent editor sessions stay separable.
func New(registry *document.Registry, completion *complete.Service, logger *zap.SugaredLogger) *Server {
	session := uuid.NewString()
	logger = logger.With("session", session)
	return &Server{
		handler: NewHandler(registry, completion, logger),
		logger:  logger,
		session: session,
	}
}

// Session returns the session ID.
func (s *Server) Session() string {
	return s.session
}

// protocolHandler assembles the glsp method table.
func (s *Server) protocolHandler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:             s.handler.Initialize,
		Initialized:            s.handler.Initialized,
		Shutdown:               s.handler.Shutdown,
		TextDocumentDidOpen:    s.handler.TextDocumentDidOpen,
		TextDocumentDidChange:  s.handler.TextDocumentDidChange,
		TextDocumentDidClose:   s.handler.TextDocumentDidClose,
		TextDocumentCompletion: s.handler.TextDocumentCompletion,
		TextDocumentFormatting: s.handler.TextDocumentFormatting,
	}
}

// RunStdio serves LSP over stdin/stdout and blocks until the stream closes.
// All logging goes to stderr and the log file; stdout carries the wire.
func (s *Server) RunStdio() error {
	s.logger.Infow("serving CQL LSP over stdio")
	srv := glspserver.NewServer(s.protocolHandler(), serverName, false)
	return srv.RunStdio()
}
