// Package api exposes the document store to the dashboard UI over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devwatch/devwatch/internal/config"
	"github.com/devwatch/devwatch/internal/dashboard"
	"github.com/devwatch/devwatch/internal/feed"
	"github.com/devwatch/devwatch/internal/metrics"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/snapshot"
)

// Server is the HTTP API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	reg        *repo.Registry
	dash       *dashboard.Aggregator
	snap       *snapshot.Manager
	feed       *feed.Folder
	config     *config.ServerConfig
	logger     *slog.Logger
	metrics    *metrics.Metrics
	startTime  time.Time
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(reg *repo.Registry, dash *dashboard.Aggregator, snap *snapshot.Manager, folder *feed.Folder, cfg *config.ServerConfig, logger *slog.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		reg:       reg,
		dash:      dash,
		snap:      snap,
		feed:      folder,
		config:    cfg,
		logger:    logger,
		metrics:   m,
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)

	if len(s.config.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if s.metrics != nil {
		s.router.Use(s.metricsMiddleware)
	}

	// Health check (no auth required)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		if s.config.Demo {
			r.Use(s.demoGuard)
		}

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleAddUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Post("/", s.handleAddDevice)
			r.Put("/{id}", s.handleUpdateDevice)
			r.Delete("/{id}", s.handleDeleteDevice)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.handleListActivities)
			r.Post("/", s.handleAddActivity)
			r.Put("/{id}", s.handleUpdateActivity)
			r.Delete("/{id}", s.handleDeleteActivity)
		})

		r.Route("/repositories", func(r chi.Router) {
			r.Get("/", s.handleListRepositories)
			r.Get("/stats", s.handleRepositoryStats)
			r.Post("/", s.handleAddRepository)
			r.Put("/{id}", s.handleUpdateRepository)
			r.Delete("/{id}", s.handleDeleteRepository)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.handleListAlerts)
			r.Post("/", s.handleAddAlert)
			r.Put("/{id}", s.handleUpdateAlert)
			r.Delete("/{id}", s.handleDeleteAlert)
		})

		r.Get("/security/settings", s.handleGetSettings)
		r.Put("/security/settings", s.handleUpdateSettings)

		r.Get("/dashboard", s.handleDashboard)

		r.Get("/data/export", s.handleExport)
		r.Post("/data/import", s.handleImport)
		r.Post("/data/reset", s.handleReset)

		r.Post("/events", s.handleEvent)
	})
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting HTTP API server", "addr", s.config.ListenAddr, "demo", s.config.Demo)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP API server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
