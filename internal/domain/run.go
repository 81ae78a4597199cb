package domain

import "time"

// Priority is the coarse urgency bucket governing how often a market is
// re-polled. It is always recomputed from the current clock, never cached.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ResultStatus classifies how a single market fared within one run.
type ResultStatus string

const (
	ResultResolved ResultStatus = "resolved"
	ResultPending  ResultStatus = "pending"
	ResultSkipped  ResultStatus = "skipped"
	ResultFailed   ResultStatus = "failed"
)

// MarketResult is the per-market detail line of a run.
type MarketResult struct {
	MarketID string       `json:"market_id"`
	Outcome  Outcome      `json:"outcome,omitempty"`
	Status   ResultStatus `json:"status"`
	Source   ScoreSource  `json:"source,omitempty"`
	Priority Priority     `json:"priority"`
	Error    string       `json:"error,omitempty"`
}

// RunSummary aggregates one reconciler invocation.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Resolved int `json:"resolved"`
	Draws    int `json:"draws"`
	HomeWins int `json:"homeWins"`
	AwayWins int `json:"awayWins"`
	Pending  int `json:"pending"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`

	CacheHits    int `json:"cacheHits"`
	PrimaryHits  int `json:"primaryHits"`
	FallbackHits int `json:"fallbackHits"`

	// League-level provider failures observed during the run, so operators can
	// tell "no league matched" apart from "all leagues errored".
	PrimaryLeagueErrors  int `json:"primaryLeagueErrors"`
	FallbackLeagueErrors int `json:"fallbackLeagueErrors"`

	CacheSize int `json:"cacheSize"`

	Details []MarketResult `json:"details"`
}

// Considered returns how many markets the run looked at.
func (s RunSummary) Considered() int {
	return len(s.Details)
}

// FetchStats describes what the provider chain did for a single lookup.
type FetchStats struct {
	PrimaryLeagueErrors  int
	FallbackLeagueErrors int
	// PrimaryAborted is set when the primary provider was cut short for the
	// whole lookup (invalid credential).
	PrimaryAborted bool
}
