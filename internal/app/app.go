// Package app wires the devwatch components together and manages their
// lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/devwatch/devwatch/internal/api"
	"github.com/devwatch/devwatch/internal/config"
	"github.com/devwatch/devwatch/internal/dashboard"
	"github.com/devwatch/devwatch/internal/feed"
	"github.com/devwatch/devwatch/internal/metrics"
	"github.com/devwatch/devwatch/internal/notify"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/snapshot"
	"github.com/devwatch/devwatch/internal/store"
)

// App is the main application.
type App struct {
	config        *config.Config
	logger        *slog.Logger
	store         *store.Store
	registry      *repo.Registry
	aggregator    *dashboard.Aggregator
	apiServer     *api.Server
	metricsServer *metrics.Server
	cron          *cron.Cron
}

// New creates the application.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if _, err := st.Seed(time.Now()); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	reg := repo.NewRegistry(st, time.Now)
	agg := dashboard.New(st, reg, time.Now, logger, m)
	reg.SetRecomputer(agg)

	if m != nil {
		reg.SetMutationHook(func(collection, op string) {
			m.MutationsTotal.WithLabelValues(collection, op).Inc()
		})
		// Prime the score gauge from the stored document; it stays
		// current through recomputes from then on.
		if d, err := agg.Current(); err == nil {
			m.SecurityScore.Set(float64(d.Overview.SecurityScore))
		}
	}

	if cfg.Notifications.Enabled {
		notifier := notify.New(cfg.Notifications.URLs, logger)
		reg.SetAlertHook(notifier.AlertCreated)
		logger.Info("alert notifications enabled", "targets", len(cfg.Notifications.URLs))
	}

	snap := snapshot.NewManager(st, reg, agg, time.Now)
	folder := feed.NewFolder(reg, logger)

	a := &App{
		config:     cfg,
		logger:     logger,
		store:      st,
		registry:   reg,
		aggregator: agg,
		apiServer:  api.NewServer(reg, agg, snap, folder, &cfg.Server, logger, m),
		cron:       cron.New(),
	}

	if m != nil {
		a.metricsServer = metrics.NewServer(m, cfg.Metrics.ListenAddr, cfg.Metrics.Path, logger)
	}

	// The activity trend is bucketed by local day, so the stored
	// dashboard goes stale at midnight even without mutations.
	if _, err := a.cron.AddFunc("@midnight", func() {
		if err := agg.Recompute(); err != nil {
			logger.Error("scheduled dashboard recompute failed", "error", err)
		}
	}); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to schedule recompute: %w", err)
	}

	return a, nil
}

// Registry exposes the repositories, mainly for the data CLI commands.
func (a *App) Registry() *repo.Registry {
	return a.registry
}

// Run starts the servers and blocks until the context is cancelled or a
// termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		if err := a.apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	a.cron.Start()
	a.logger.Info("devwatch started")

	select {
	case err := <-errCh:
		a.shutdown()
		return err
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		a.shutdown()
		return nil
	}
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-a.cron.Stop().Done()

	if err := a.apiServer.Shutdown(ctx); err != nil {
		a.logger.Error("api server shutdown failed", "error", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("store close failed", "error", err)
	}

	a.logger.Info("shutdown complete")
}

// Close releases resources without running servers. Used by one-shot
// CLI commands.
func (a *App) Close() error {
	return a.store.Close()
}

// setupLogger creates a logger based on configuration.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}
