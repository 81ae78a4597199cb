// Package provider chains the primary odds provider and the fallback
// scoreboard provider into one score lookup.
package provider

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// PrimaryProvider scans a credential-keyed provider for an event's score. The
// error is non-nil only when the whole scan was aborted (invalid credential).
type PrimaryProvider interface {
	FindScore(ctx context.Context, eventID string) (*domain.Score, int, error)
}

// FallbackProvider scans a credential-free provider for an event's score.
type FallbackProvider interface {
	FindScore(ctx context.Context, eventID string) (*domain.Score, int)
}

// Chain queries the primary provider first and consults the fallback only
// when the primary produced nothing at all. Any non-nil primary result, even
// an in-progress one, is terminal for the lookup: mixing states from two
// sources for the same event is worse than waiting for the primary to settle.
type Chain struct {
	primary  PrimaryProvider // nil when no credential is configured
	fallback FallbackProvider
	logger   *slog.Logger
}

// NewChain creates a provider chain. primary may be nil, in which case every
// lookup degrades directly to the fallback — a supported mode, not an error.
func NewChain(primary PrimaryProvider, fallback FallbackProvider, logger *slog.Logger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With(slog.String("component", "provider_chain")),
	}
}

// FetchScore returns the normalized score for an event, or nil when neither
// provider knows it ("not found", which is still a cacheable answer).
func (c *Chain) FetchScore(ctx context.Context, eventID string) (*domain.Score, domain.FetchStats) {
	var stats domain.FetchStats

	if c.primary != nil {
		score, leagueErrs, err := c.primary.FindScore(ctx, eventID)
		stats.PrimaryLeagueErrors = leagueErrs
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				stats.PrimaryAborted = true
			}
			c.logger.WarnContext(ctx, "primary provider failed, falling back",
				slog.String("event_id", eventID),
				slog.String("error", err.Error()),
			)
		} else if score != nil {
			return score, stats
		}
	}

	score, leagueErrs := c.fallback.FindScore(ctx, eventID)
	stats.FallbackLeagueErrors = leagueErrs
	return score, stats
}
