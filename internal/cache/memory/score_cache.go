// Package memory implements the score cache as a process-lifetime in-memory
// map. There is no background sweep; expired entries are evicted lazily on
// read. If the hosting environment recycles processes between invocations the
// cache degrades to within-run deduplication, which is acceptable because no
// correctness property depends on a hit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

type entry struct {
	cached    domain.CachedScore
	expiresAt time.Time
}

// ScoreCache is a TTL-bucketed in-memory score cache safe for concurrent use.
type ScoreCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewScoreCache creates an empty cache using the wall clock.
func NewScoreCache() *ScoreCache {
	return NewScoreCacheWithClock(time.Now)
}

// NewScoreCacheWithClock creates a cache with a custom clock, for tests.
func NewScoreCacheWithClock(now func() time.Time) *ScoreCache {
	return &ScoreCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the cached lookup result for an event. An expired entry is
// removed and reported as absent.
func (c *ScoreCache) Get(_ context.Context, eventID string) (domain.CachedScore, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[eventID]
	if !ok {
		return domain.CachedScore{}, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, eventID)
		return domain.CachedScore{}, false, nil
	}
	return e.cached, true, nil
}

// Put stores a lookup result (score or nil "not found") with a TTL chosen by
// the result's finality.
func (c *ScoreCache) Put(_ context.Context, eventID string, score *domain.Score, resolutionTime int64) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[eventID] = entry{
		cached: domain.CachedScore{
			Score:          score,
			CachedAt:       now,
			ResolutionTime: resolutionTime,
		},
		expiresAt: now.Add(domain.ScoreTTL(score)),
	}
	return nil
}

// Len returns the number of live entries, pruning any that have expired.
func (c *ScoreCache) Len(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
	return len(c.entries), nil
}

// Compile-time interface check.
var _ domain.ScoreCache = (*ScoreCache)(nil)
