// Package httpserver provides the span intake HTTP server for the
// TraceMesh agent.
package httpserver

import (
	"context"
	"net/http"
)

// Server represents the HTTP server.
//
// @req RQ-0401
// @design DS-0401
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server.
//
// @design DS-0401
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
