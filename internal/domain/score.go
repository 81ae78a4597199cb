package domain

// ScoreStatus is the normalized lifecycle state of a sporting event as
// reported by a score provider.
type ScoreStatus string

const (
	ScoreStatusFinal      ScoreStatus = "final"
	ScoreStatusInProgress ScoreStatus = "in_progress"
	ScoreStatusScheduled  ScoreStatus = "scheduled"
	ScoreStatusUnknown    ScoreStatus = "unknown"
)

// ScoreSource identifies which provider in the chain produced a score.
type ScoreSource string

const (
	ScoreSourcePrimary  ScoreSource = "primary"
	ScoreSourceFallback ScoreSource = "fallback"
)

// Score is the provider-normalized result of a sporting event lookup. Both
// provider adapters map their native payloads into this one shape; only a
// Score with status final may be fed to outcome resolution.
type Score struct {
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Status    ScoreStatus `json:"status"`
	Source    ScoreSource `json:"source"`
}

// Final reports whether the event has completed and the score will not change.
func (s Score) Final() bool {
	return s.Status == ScoreStatusFinal
}
