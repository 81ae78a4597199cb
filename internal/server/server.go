// Package server exposes the reconciler over HTTP: a cron-guarded trigger
// endpoint, run history, health, and Prometheus metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmcalloway/sportsettle/internal/server/handler"
	"github.com/jmcalloway/sportsettle/internal/server/middleware"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port       int
	CronSecret string // if empty, the trigger endpoint is unauthenticated
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Health    *handler.HealthHandler
	Reconcile *handler.ReconcileHandler
	Runs      *handler.RunsHandler
	Metrics   http.Handler // optional
}

// Server is the headless HTTP API around the reconciler.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// Only the reconcile trigger sits behind cron auth; health, run history, and
// metrics are open.
func NewServer(cfg Config, handlers Handlers, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)
	mux.HandleFunc("GET /api/runs", handlers.Runs.ListRuns)

	cronAuth := middleware.CronAuth(cfg.CronSecret)
	mux.Handle("POST /api/reconcile", cronAuth(http.HandlerFunc(handlers.Reconcile.TriggerReconcile)))

	if handlers.Metrics != nil {
		mux.Handle("GET /metrics", handlers.Metrics)
	}

	var h http.Handler = mux
	h = middleware.Logging(logger)(h)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     h,
		ReadTimeout: 15 * time.Second,
		// Reconcile runs synchronously inside the trigger request; a large
		// batch with pacing can take minutes.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
