package espn

import (
	"strconv"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// scoreboardResponse is the top-level shape of a scoreboard endpoint.
type scoreboardResponse struct {
	Events []apiEvent `json:"events"`
}

type apiEvent struct {
	ID           string           `json:"id"`
	UID          string           `json:"uid"`
	Name         string           `json:"name"`
	Competitions []apiCompetition `json:"competitions"`
}

type apiCompetition struct {
	Competitors []apiCompetitor `json:"competitors"`
	Status      apiStatus       `json:"status"`
}

type apiCompetitor struct {
	HomeAway string  `json:"homeAway"`
	Score    string  `json:"score"`
	Team     apiTeam `json:"team"`
}

type apiTeam struct {
	DisplayName string `json:"displayName"`
}

type apiStatus struct {
	Type apiStatusType `json:"type"`
}

type apiStatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

// finalStatusNames is the provider's own taxonomy of "this event is over".
var finalStatusNames = map[string]bool{
	"STATUS_FINAL":          true,
	"STATUS_FULL_TIME":      true,
	"STATUS_FINAL_PEN":      true,
	"STATUS_FINAL_OT":       true,
	"STATUS_FINAL_OVERTIME": true,
}

// toScore normalizes the event into the domain score shape, or returns nil
// when required fields (both competitors) are missing — treated the same as
// the event not being found at all.
func (e apiEvent) toScore() *domain.Score {
	if len(e.Competitions) == 0 {
		return nil
	}
	comp := e.Competitions[0]

	score := &domain.Score{Source: domain.ScoreSourceFallback}

	var haveHome, haveAway bool
	for _, c := range comp.Competitors {
		points, _ := strconv.Atoi(c.Score) // missing or live-blank score reads as 0
		switch c.HomeAway {
		case "home":
			score.HomeTeam = c.Team.DisplayName
			score.HomeScore = points
			haveHome = true
		case "away":
			score.AwayTeam = c.Team.DisplayName
			score.AwayScore = points
			haveAway = true
		}
	}
	if !haveHome || !haveAway {
		return nil
	}

	switch {
	case finalStatusNames[comp.Status.Type.Name] || comp.Status.Type.Completed:
		score.Status = domain.ScoreStatusFinal
	case comp.Status.Type.State == "in":
		score.Status = domain.ScoreStatusInProgress
	case comp.Status.Type.State == "pre":
		score.Status = domain.ScoreStatusScheduled
	default:
		score.Status = domain.ScoreStatusUnknown
	}
	return score
}
