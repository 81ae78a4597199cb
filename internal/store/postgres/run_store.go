package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// RunStore implements domain.RunStore using PostgreSQL. Only the aggregate
// counters of a run are persisted; the per-market details list stays
// in-process (report archival covers offline inspection).
type RunStore struct {
	pool *pgxpool.Pool
}

var _ domain.RunStore = (*RunStore)(nil)

// NewRunStore creates a new RunStore backed by the given connection pool.
func NewRunStore(pool *pgxpool.Pool) *RunStore {
	return &RunStore{pool: pool}
}

// InsertRun persists one run summary's counters.
func (s *RunStore) InsertRun(ctx context.Context, summary domain.RunSummary) error {
	const query = `
		INSERT INTO reconcile_runs (
			run_id, started_at, duration_ms,
			resolved, draws, home_wins, away_wins, pending, failed, skipped,
			cache_hits, primary_hits, fallback_hits,
			primary_league_errors, fallback_league_errors, cache_size
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := s.pool.Exec(ctx, query,
		summary.RunID, summary.StartedAt, summary.Duration.Milliseconds(),
		summary.Resolved, summary.Draws, summary.HomeWins, summary.AwayWins,
		summary.Pending, summary.Failed, summary.Skipped,
		summary.CacheHits, summary.PrimaryHits, summary.FallbackHits,
		summary.PrimaryLeagueErrors, summary.FallbackLeagueErrors,
		summary.CacheSize,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert run %s: %w", summary.RunID, err)
	}
	return nil
}

// ListRecent returns run summaries ordered newest first. Details are always
// empty; they are not stored.
func (s *RunStore) ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.RunSummary, error) {
	query := `
		SELECT run_id, started_at, duration_ms,
			resolved, draws, home_wins, away_wins, pending, failed, skipped,
			cache_hits, primary_hits, fallback_hits,
			primary_league_errors, fallback_league_errors, cache_size
		FROM reconcile_runs
		ORDER BY started_at DESC`
	args := []any{}
	argIdx := 1

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, opts.Limit)
		argIdx++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, opts.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var r domain.RunSummary
		var durationMs int64

		if err := rows.Scan(
			&r.RunID, &r.StartedAt, &durationMs,
			&r.Resolved, &r.Draws, &r.HomeWins, &r.AwayWins,
			&r.Pending, &r.Failed, &r.Skipped,
			&r.CacheHits, &r.PrimaryHits, &r.FallbackHits,
			&r.PrimaryLeagueErrors, &r.FallbackLeagueErrors,
			&r.CacheSize,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan run: %w", err)
		}

		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list runs rows: %w", err)
	}
	return runs, nil
}
