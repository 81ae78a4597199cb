// Package service wires the reconciler job to its operational side effects:
// run-history persistence, report archival, metrics, and notifications.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/metrics"
	"github.com/jmcalloway/sportsettle/internal/notify"
	"github.com/jmcalloway/sportsettle/internal/reconciler"
)

// ReconcileService runs the job and fans the summary out to every configured
// sink. Sinks are optional; only the job itself is required, and a sink
// failure never fails the run.
type ReconcileService struct {
	job      *reconciler.Job
	runs     domain.RunStore            // optional
	archiver *reconciler.ReportArchiver // optional
	notifier *notify.Notifier           // optional
	metrics  *metrics.Metrics           // optional
	logger   *slog.Logger
}

// NewReconcileService creates the service around a job. Optional sinks may be
// nil.
func NewReconcileService(
	job *reconciler.Job,
	runs domain.RunStore,
	archiver *reconciler.ReportArchiver,
	notifier *notify.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		job:      job,
		runs:     runs,
		archiver: archiver,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With(slog.String("component", "reconcile_service")),
	}
}

// Execute performs one reconciliation run and records it. The returned error
// is non-nil only when the run itself failed (ledger listing unavailable).
func (s *ReconcileService) Execute(ctx context.Context) (domain.RunSummary, error) {
	summary, err := s.job.Run(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveRunError()
		}
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, notify.EventRunFailed,
				"Reconcile run failed",
				fmt.Sprintf("run %s: %v", summary.RunID, err),
			)
		}
		return summary, err
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(summary)
	}

	if s.runs != nil {
		if storeErr := s.runs.InsertRun(ctx, summary); storeErr != nil {
			s.logger.WarnContext(ctx, "run history insert failed",
				slog.String("run_id", summary.RunID),
				slog.String("error", storeErr.Error()),
			)
		}
	}

	if s.archiver != nil {
		if archErr := s.archiver.Archive(ctx, summary); archErr != nil {
			s.logger.WarnContext(ctx, "run report archive failed",
				slog.String("run_id", summary.RunID),
				slog.String("error", archErr.Error()),
			)
		}
	}

	if s.notifier != nil && summary.Failed > 0 {
		_ = s.notifier.Notify(ctx, notify.EventMarketsFailed,
			"Markets failed to resolve",
			fmt.Sprintf("run %s: %d failed, %d pending of %d considered",
				summary.RunID, summary.Failed, summary.Pending, summary.Considered()),
		)
	}

	return summary, nil
}

// RunHistory lists recent run summaries from the history store.
func (s *ReconcileService) RunHistory(ctx context.Context, opts domain.ListOpts) ([]domain.RunSummary, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("reconcile_service: run history: %w", domain.ErrNotFound)
	}
	runs, err := s.runs.ListRecent(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("reconcile_service: run history: %w", err)
	}
	return runs, nil
}
