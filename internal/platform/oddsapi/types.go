package oddsapi

import (
	"fmt"
	"strconv"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// apiEvent is one event from the per-sport scores endpoint.
type apiEvent struct {
	ID        string         `json:"id"`
	SportKey  string         `json:"sport_key"`
	Completed bool           `json:"completed"`
	HomeTeam  string         `json:"home_team"`
	AwayTeam  string         `json:"away_team"`
	Scores    []apiTeamScore `json:"scores"`
}

// apiTeamScore is a single team's score line. Score arrives as a string and
// may be absent entirely before an event starts.
type apiTeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// scoreFor returns the parsed score for the named team, or ok=false when the
// team has no score line yet.
func (e apiEvent) scoreFor(team string) (int, bool, error) {
	for _, s := range e.Scores {
		if s.Name != team {
			continue
		}
		n, err := strconv.Atoi(s.Score)
		if err != nil {
			return 0, false, fmt.Errorf("score %q for %s: %w", s.Score, team, err)
		}
		return n, true, nil
	}
	return 0, false, nil
}

// toScore normalizes the event into the domain score shape. For an event
// still underway partial scores are best-effort, defaulting to 0. A completed
// event with a missing or non-numeric score is malformed and yields an error
// so the caller can treat the league response as unusable.
func (e apiEvent) toScore() (*domain.Score, error) {
	score := &domain.Score{
		HomeTeam: e.HomeTeam,
		AwayTeam: e.AwayTeam,
		Source:   domain.ScoreSourcePrimary,
	}

	home, homeOK, homeErr := e.scoreFor(e.HomeTeam)
	away, awayOK, awayErr := e.scoreFor(e.AwayTeam)

	if !e.Completed {
		score.Status = domain.ScoreStatusInProgress
		if homeErr == nil && homeOK {
			score.HomeScore = home
		}
		if awayErr == nil && awayOK {
			score.AwayScore = away
		}
		return score, nil
	}

	if homeErr != nil {
		return nil, homeErr
	}
	if awayErr != nil {
		return nil, awayErr
	}
	if !homeOK || !awayOK {
		return nil, fmt.Errorf("completed event %s missing team scores", e.ID)
	}

	score.Status = domain.ScoreStatusFinal
	score.HomeScore = home
	score.AwayScore = away
	return score, nil
}
