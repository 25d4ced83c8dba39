package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server serves Prometheus metrics over a dedicated listener.
type Server struct {
	httpServer *http.Server
	addr       string
	path       string
	logger     *slog.Logger
}

// NewServer creates a metrics HTTP server.
func NewServer(m *Metrics, addr, path string, logger *slog.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:9090"
	}
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		addr:   addr,
		path:   path,
		logger: logger,
	}
}

// ListenAndServe starts the metrics server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting metrics server", "addr", s.addr, "path", s.path)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
