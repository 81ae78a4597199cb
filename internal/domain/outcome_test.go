package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutcome_HomeWin(t *testing.T) {
	s := Score{HomeScore: 2, AwayScore: 1, Status: ScoreStatusFinal}
	assert.Equal(t, OutcomeYes, ResolveOutcome(s))
}

func TestResolveOutcome_AwayWin(t *testing.T) {
	s := Score{HomeScore: 1, AwayScore: 2, Status: ScoreStatusFinal}
	assert.Equal(t, OutcomeNo, ResolveOutcome(s))
}

func TestResolveOutcome_Draw(t *testing.T) {
	s := Score{HomeScore: 1, AwayScore: 1, Status: ScoreStatusFinal}
	assert.Equal(t, OutcomeDraw, ResolveOutcome(s))
}

func TestResolveOutcome_NotFinal(t *testing.T) {
	for _, status := range []ScoreStatus{ScoreStatusInProgress, ScoreStatusScheduled, ScoreStatusUnknown} {
		s := Score{HomeScore: 5, AwayScore: 0, Status: status}
		assert.Equal(t, OutcomeNone, ResolveOutcome(s), "status %s", status)
	}
}
