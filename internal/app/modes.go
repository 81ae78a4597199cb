package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmcalloway/sportsettle/internal/server"
	"github.com/jmcalloway/sportsettle/internal/server/handler"
)

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 15 * time.Second

// ServeMode runs the HTTP API and waits for cron or manual triggers. It
// blocks until the context is cancelled, then drains the server.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode", slog.Int("port", a.cfg.Server.Port))

	srv := server.NewServer(
		server.Config{
			Port:       a.cfg.Server.Port,
			CronSecret: a.cfg.Server.CronSecret,
		},
		server.Handlers{
			Health:    handler.NewHealthHandler(a.logger),
			Reconcile: handler.NewReconcileHandler(deps.Service, a.logger),
			Runs:      handler.NewRunsHandler(deps.Service, a.logger),
			Metrics:   deps.Metrics.Handler(),
		},
		a.logger,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// OnceMode performs a single reconciliation run and exits. Intended for
// external schedulers (cron, Kubernetes CronJob).
func (a *App) OnceMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting once mode")

	summary, err := deps.Service.Execute(ctx)
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "run complete",
		slog.String("run_id", summary.RunID),
		slog.Int("considered", summary.Considered()),
		slog.Int("resolved", summary.Resolved),
		slog.Int("pending", summary.Pending),
		slog.Int("failed", summary.Failed),
	)
	return nil
}

// LoopMode runs reconciliations on a fixed interval until the context is
// cancelled. A failed run is logged and the loop continues; the ledger being
// briefly unreachable should not kill the process.
func (a *App) LoopMode(ctx context.Context, deps *Dependencies) error {
	interval := a.cfg.Reconcile.LoopInterval.Duration
	a.logger.InfoContext(ctx, "starting loop mode", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := deps.Service.Execute(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.ErrorContext(ctx, "run failed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
