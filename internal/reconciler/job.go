// Package reconciler implements the sports-market resolution job: find
// markets whose betting window has closed, fetch final scores through the
// cache and provider chain, and push outcomes back to the ledger exactly
// once per market.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/schedule"
)

// resolvePacing spaces ledger resolve attempts so a large batch of due
// markets does not burst the resolve endpoint.
const resolvePacing = 250 * time.Millisecond

// MarketGateway is the ledger surface the job needs.
type MarketGateway interface {
	ListUnresolvedSportsMarkets(ctx context.Context) ([]domain.Market, error)
	ResolveMarket(ctx context.Context, marketID string, outcome domain.Outcome) error
}

// ScoreFetcher looks up an event's score across the provider chain.
type ScoreFetcher interface {
	FetchScore(ctx context.Context, eventID string) (*domain.Score, domain.FetchStats)
}

// Job is the reconciler orchestrator. One Run is a single terminal pass over
// all due markets; there is no internal retry loop. Markets are processed
// sequentially so the resolve pacing acts as global backpressure.
type Job struct {
	gateway MarketGateway
	fetcher ScoreFetcher
	cache   domain.ScoreCache
	sched   *schedule.Scheduler
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time
}

// NewJob creates a reconciler job. The cache is constructor-injected so tests
// can supply a fresh or pre-seeded one; the job never assumes entries survive
// across invocations.
func NewJob(
	gateway MarketGateway,
	fetcher ScoreFetcher,
	cache domain.ScoreCache,
	sched *schedule.Scheduler,
	logger *slog.Logger,
) *Job {
	return &Job{
		gateway: gateway,
		fetcher: fetcher,
		cache:   cache,
		sched:   sched,
		limiter: rate.NewLimiter(rate.Every(resolvePacing), 1),
		logger:  logger.With(slog.String("component", "reconciler")),
		now:     time.Now,
	}
}

// Run executes one reconciliation pass and returns its summary. Per-market
// failures are recorded and never abort the pass; Run itself fails only when
// the ledger listing fails.
func (j *Job) Run(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: j.now().UTC(),
	}

	markets, err := j.gateway.ListUnresolvedSportsMarkets(ctx)
	if err != nil {
		return summary, fmt.Errorf("reconciler: list unresolved markets: %w", err)
	}

	j.logger.InfoContext(ctx, "run started",
		slog.String("run_id", summary.RunID),
		slog.Int("markets", len(markets)),
	)

	// Most-urgent first; ties keep the ledger's original order.
	sort.SliceStable(markets, func(a, b int) bool {
		pa, _ := j.sched.Priority(markets[a].ResolutionTime)
		pb, _ := j.sched.Priority(markets[b].ResolutionTime)
		return pa.Rank() < pb.Rank()
	})

	for _, market := range markets {
		result := j.processMarket(ctx, market, &summary)
		summary.Details = append(summary.Details, result)
	}

	if size, err := j.cache.Len(ctx); err == nil {
		summary.CacheSize = size
	} else {
		j.logger.WarnContext(ctx, "cache size snapshot failed", slog.String("error", err.Error()))
	}
	summary.Duration = j.now().UTC().Sub(summary.StartedAt)

	j.logger.InfoContext(ctx, "run finished",
		slog.String("run_id", summary.RunID),
		slog.Int("resolved", summary.Resolved),
		slog.Int("pending", summary.Pending),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// processMarket runs steps 3a-3g of the pass for one market. It mutates the
// summary counters and returns the market's detail line.
func (j *Job) processMarket(ctx context.Context, market domain.Market, summary *domain.RunSummary) domain.MarketResult {
	priority, _ := j.sched.Priority(market.ResolutionTime)
	result := domain.MarketResult{
		MarketID: market.ID,
		Priority: priority,
	}

	eventID, err := domain.EventIDFromMarketID(market.ID)
	if err != nil {
		summary.Failed++
		result.Status = domain.ResultFailed
		result.Error = err.Error()
		return result
	}

	cached, found, err := j.cache.Get(ctx, eventID)
	if err != nil {
		// A broken cache read is the same as a miss.
		j.logger.WarnContext(ctx, "cache read failed",
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
		found = false
	}

	var score *domain.Score
	fromCache := false

	if !j.sched.ShouldPoll(cached, found, market.ResolutionTime) {
		if found && cached.Score != nil && cached.Score.Final() {
			// Final score already known: resolve straight from cache, no
			// network call. This is also the retry path after a rejected
			// resolve in an earlier run.
			score = cached.Score
			fromCache = true
		} else {
			summary.Skipped++
			result.Status = domain.ResultSkipped
			return result
		}
	} else if found {
		// Cache-aside: a live entry answers without a network call, even
		// when the poll interval has elapsed.
		score = cached.Score
		fromCache = true
	} else {
		var stats domain.FetchStats
		score, stats = j.fetcher.FetchScore(ctx, eventID)
		summary.PrimaryLeagueErrors += stats.PrimaryLeagueErrors
		summary.FallbackLeagueErrors += stats.FallbackLeagueErrors

		if err := j.cache.Put(ctx, eventID, score, market.ResolutionTime); err != nil {
			j.logger.WarnContext(ctx, "cache write failed",
				slog.String("event_id", eventID),
				slog.String("error", err.Error()),
			)
		}
		if score != nil {
			switch score.Source {
			case domain.ScoreSourcePrimary:
				summary.PrimaryHits++
			case domain.ScoreSourceFallback:
				summary.FallbackHits++
			}
		}
	}

	if fromCache {
		summary.CacheHits++
	}

	if score == nil {
		summary.Pending++
		result.Status = domain.ResultPending
		return result
	}
	result.Source = score.Source

	outcome := domain.ResolveOutcome(*score)
	if outcome == domain.OutcomeNone {
		summary.Pending++
		result.Status = domain.ResultPending
		return result
	}

	// Pace ledger-mutating calls.
	if err := j.limiter.Wait(ctx); err != nil {
		summary.Failed++
		result.Status = domain.ResultFailed
		result.Error = err.Error()
		return result
	}

	if err := j.gateway.ResolveMarket(ctx, market.ID, outcome); err != nil {
		j.logger.ErrorContext(ctx, "resolve rejected",
			slog.String("market_id", market.ID),
			slog.String("outcome", string(outcome)),
			slog.String("error", err.Error()),
		)
		summary.Failed++
		result.Status = domain.ResultFailed
		result.Outcome = outcome
		result.Error = err.Error()
		return result
	}

	summary.Resolved++
	switch outcome {
	case domain.OutcomeYes:
		summary.HomeWins++
	case domain.OutcomeNo:
		summary.AwayWins++
	case domain.OutcomeDraw:
		summary.Draws++
	}

	j.logger.InfoContext(ctx, "market resolved",
		slog.String("market_id", market.ID),
		slog.String("outcome", string(outcome)),
		slog.String("source", string(score.Source)),
		slog.Bool("from_cache", fromCache),
	)

	result.Status = domain.ResultResolved
	result.Outcome = outcome
	return result
}
