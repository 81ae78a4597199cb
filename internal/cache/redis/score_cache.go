package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// ScoreCache implements domain.ScoreCache using Redis string values holding
// JSON-serialized entries with per-key expiry.
//
// Key schema:
//
//	score:{eventID} - JSON domain.CachedScore
type ScoreCache struct {
	rdb *redis.Client
	now func() time.Time
}

// NewScoreCache creates a ScoreCache backed by the given Client.
func NewScoreCache(c *Client) *ScoreCache {
	return &ScoreCache{rdb: c.Underlying(), now: time.Now}
}

func scoreKey(eventID string) string { return "score:" + eventID }

// Get retrieves the cached lookup result for an event. A missing or expired
// key is reported as absent.
func (sc *ScoreCache) Get(ctx context.Context, eventID string) (domain.CachedScore, bool, error) {
	data, err := sc.rdb.Get(ctx, scoreKey(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.CachedScore{}, false, nil
		}
		return domain.CachedScore{}, false, fmt.Errorf("redis: get score %s: %w", eventID, err)
	}

	var cached domain.CachedScore
	if err := json.Unmarshal(data, &cached); err != nil {
		return domain.CachedScore{}, false, fmt.Errorf("redis: unmarshal score %s: %w", eventID, err)
	}
	return cached, true, nil
}

// Put stores a lookup result with the TTL chosen by the result's finality.
func (sc *ScoreCache) Put(ctx context.Context, eventID string, score *domain.Score, resolutionTime int64) error {
	cached := domain.CachedScore{
		Score:          score,
		CachedAt:       sc.now().UTC(),
		ResolutionTime: resolutionTime,
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("redis: marshal score %s: %w", eventID, err)
	}

	if err := sc.rdb.Set(ctx, scoreKey(eventID), data, domain.ScoreTTL(score)).Err(); err != nil {
		return fmt.Errorf("redis: set score %s: %w", eventID, err)
	}
	return nil
}

// Len counts live score entries by scanning the key space. The count is
// approximate under concurrent writes, which is fine for a summary snapshot.
func (sc *ScoreCache) Len(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := sc.rdb.Scan(ctx, cursor, scoreKey("*"), 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis: scan scores: %w", err)
		}
		count += len(keys)
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

// Compile-time interface check.
var _ domain.ScoreCache = (*ScoreCache)(nil)
