// Package schedule decides how urgently an unresolved market should be
// re-polled. Priority is a pure function of how far the market is from its
// resolution deadline, so it is recomputed on every call and a market
// naturally escalates from low to high as the deadline approaches.
package schedule

import (
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// Deadline-distance thresholds and the re-poll interval for each class.
const (
	highWindow   = 30 * time.Minute
	mediumWindow = 2 * time.Hour

	highInterval   = time.Minute
	mediumInterval = 5 * time.Minute
	lowInterval    = 15 * time.Minute
)

// Scheduler computes polling priorities against an injectable clock.
type Scheduler struct {
	now func() time.Time
}

// New creates a Scheduler using the wall clock.
func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewWithClock creates a Scheduler with a custom clock, for tests.
func NewWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Priority returns the urgency class and minimum re-poll interval for a
// market with the given resolution time (unix seconds). Markets at or past
// their deadline are always high priority.
func (s *Scheduler) Priority(resolutionTime int64) (domain.Priority, time.Duration) {
	delta := time.Duration(resolutionTime-s.now().Unix()) * time.Second
	switch {
	case delta <= highWindow:
		return domain.PriorityHigh, highInterval
	case delta <= mediumWindow:
		return domain.PriorityMedium, mediumInterval
	default:
		return domain.PriorityLow, lowInterval
	}
}

// ShouldPoll reports whether a fresh provider fetch is warranted right now.
// A market with no cache entry is always polled; a cached final score is
// never re-polled; otherwise the entry's age is compared against the
// interval for the market's current priority.
func (s *Scheduler) ShouldPoll(entry domain.CachedScore, found bool, resolutionTime int64) bool {
	if !found {
		return true
	}
	if entry.Score != nil && entry.Score.Final() {
		return false
	}
	_, interval := s.Priority(resolutionTime)
	return s.now().Sub(entry.CachedAt) >= interval
}
