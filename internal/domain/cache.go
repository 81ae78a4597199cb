package domain

import (
	"context"
	"time"
)

// Cache TTLs by result finality. Final scores never change, so they live the
// longest; live scores go stale quickly; a confirmed "not found" is usually a
// transient provider indexing delay, worth a cooldown between live polling
// and a final-score hold. No entry may be written with a TTL above
// FinalScoreTTL, which bounds growth to one entry per event per process.
const (
	FinalScoreTTL = time.Hour
	LiveScoreTTL  = 30 * time.Second
	NotFoundTTL   = 2 * time.Minute
)

// ScoreTTL returns the cache lifetime for a lookup result. A nil score is the
// explicit "event not found" sentinel, which is still cacheable.
func ScoreTTL(score *Score) time.Duration {
	switch {
	case score == nil:
		return NotFoundTTL
	case score.Final():
		return FinalScoreTTL
	default:
		return LiveScoreTTL
	}
}

// CachedScore is a score lookup result held by a ScoreCache.
type CachedScore struct {
	// Score is nil when the providers confirmed the event could not be found.
	Score    *Score    `json:"score"`
	CachedAt time.Time `json:"cached_at"`
	// ResolutionTime is copied from the market that triggered the lookup, so
	// polling priority can be recomputed on later sightings of the event.
	ResolutionTime int64 `json:"resolution_time"`
}

// ScoreCache memoizes provider lookups keyed by external event ID. It is a
// best-effort optimization with no durability contract: an expired or lost
// entry only costs an extra provider call, never a wrong answer. Expired
// entries are treated as absent.
type ScoreCache interface {
	Get(ctx context.Context, eventID string) (CachedScore, bool, error)
	Put(ctx context.Context, eventID string, score *Score, resolutionTime int64) error
	// Len returns the number of live entries.
	Len(ctx context.Context) (int, error)
}
