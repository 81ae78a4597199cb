package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

var testNow = time.Unix(1_700_000_000, 0)

func testScheduler() *Scheduler {
	return NewWithClock(func() time.Time { return testNow })
}

func TestPriority_Classes(t *testing.T) {
	s := testScheduler()

	tests := []struct {
		name     string
		delta    int64 // seconds until resolution
		class    domain.Priority
		interval time.Duration
	}{
		{"past deadline", -500, domain.PriorityHigh, time.Minute},
		{"at deadline", 0, domain.PriorityHigh, time.Minute},
		{"30min boundary", 1800, domain.PriorityHigh, time.Minute},
		{"just over 30min", 1801, domain.PriorityMedium, 5 * time.Minute},
		{"2h boundary", 7200, domain.PriorityMedium, 5 * time.Minute},
		{"just over 2h", 7201, domain.PriorityLow, 15 * time.Minute},
		{"far out", 86400, domain.PriorityLow, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, interval := s.Priority(testNow.Unix() + tt.delta)
			assert.Equal(t, tt.class, class)
			assert.Equal(t, tt.interval, interval)
		})
	}
}

// An earlier deadline must never yield a less urgent class than a later one.
func TestPriority_Monotonic(t *testing.T) {
	s := testScheduler()

	deltas := []int64{-7200, -60, 0, 900, 1800, 1801, 3600, 7200, 7201, 50000}
	for i := 0; i < len(deltas)-1; i++ {
		earlier, _ := s.Priority(testNow.Unix() + deltas[i])
		later, _ := s.Priority(testNow.Unix() + deltas[i+1])
		assert.LessOrEqual(t, earlier.Rank(), later.Rank(),
			"delta %d vs %d", deltas[i], deltas[i+1])
	}
}

// A far-out market escalates to high priority as the clock advances, without
// any state carried between calls.
func TestPriority_EscalatesOverTime(t *testing.T) {
	resolution := testNow.Unix() + 10_000

	clock := testNow
	s := NewWithClock(func() time.Time { return clock })

	class, _ := s.Priority(resolution)
	assert.Equal(t, domain.PriorityLow, class)

	clock = testNow.Add(time.Duration(10_000-3600) * time.Second)
	class, _ = s.Priority(resolution)
	assert.Equal(t, domain.PriorityMedium, class)

	clock = testNow.Add(10_000 * time.Second)
	class, _ = s.Priority(resolution)
	assert.Equal(t, domain.PriorityHigh, class)
}

func TestShouldPoll_NoEntry(t *testing.T) {
	s := testScheduler()
	assert.True(t, s.ShouldPoll(domain.CachedScore{}, false, testNow.Unix()))
}

func TestShouldPoll_FinalNeverRepolled(t *testing.T) {
	s := testScheduler()
	entry := domain.CachedScore{
		Score:    &domain.Score{Status: domain.ScoreStatusFinal},
		CachedAt: testNow.Add(-24 * time.Hour),
	}
	assert.False(t, s.ShouldPoll(entry, true, testNow.Unix()))
}

func TestShouldPoll_IntervalByPriority(t *testing.T) {
	s := testScheduler()

	live := func(age time.Duration) domain.CachedScore {
		return domain.CachedScore{
			Score:    &domain.Score{Status: domain.ScoreStatusInProgress},
			CachedAt: testNow.Add(-age),
		}
	}

	// High priority: 60s interval.
	due := testNow.Unix() - 100
	assert.False(t, s.ShouldPoll(live(30*time.Second), true, due))
	assert.True(t, s.ShouldPoll(live(60*time.Second), true, due))

	// Low priority: 15m interval.
	farOut := testNow.Unix() + 50_000
	assert.False(t, s.ShouldPoll(live(5*time.Minute), true, farOut))
	assert.True(t, s.ShouldPoll(live(15*time.Minute), true, farOut))
}

func TestShouldPoll_NotFoundEntryRepolledOnInterval(t *testing.T) {
	s := testScheduler()
	entry := domain.CachedScore{Score: nil, CachedAt: testNow.Add(-90 * time.Second)}
	assert.True(t, s.ShouldPoll(entry, true, testNow.Unix()))

	fresh := domain.CachedScore{Score: nil, CachedAt: testNow.Add(-10 * time.Second)}
	assert.False(t, s.ShouldPoll(fresh, true, testNow.Unix()))
}
