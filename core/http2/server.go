// Package http2 provides the portable serving mode: net/http with
// cleartext HTTP/2 (h2c) upgrade support. It trades the raw engine's
// throughput for running anywhere the Go runtime does.
package http2

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Config contains the portable server configuration.
type Config struct {
	Addr                 string
	Handler              http.Handler
	MaxConcurrentStreams uint32
	IdleTimeout          time.Duration
}

// Server wraps net/http with h2c support.
type Server struct {
	addr   string
	server *http.Server
}

// NewServer creates a portable server around cfg.Handler.
func NewServer(cfg Config) *Server {
	if cfg.MaxConcurrentStreams == 0 {
		cfg.MaxConcurrentStreams = 250
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 120 * time.Second
	}

	h2 := &http2.Server{
		MaxConcurrentStreams: cfg.MaxConcurrentStreams,
		IdleTimeout:          cfg.IdleTimeout,
	}

	return &Server{
		addr: cfg.Addr,
		server: &http.Server{
			Addr:        cfg.Addr,
			Handler:     h2c.NewHandler(cfg.Handler, h2),
			IdleTimeout: cfg.IdleTimeout,
		},
	}
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	log.Printf("h2c server listening on %s", s.addr)
	return s.server.ListenAndServe()
}

// Close shuts the server down.
func (s *Server) Close() error {
	return s.server.Close()
}
