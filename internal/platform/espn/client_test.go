package espn

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func event(id, statusName, state string, completed bool, homeScore, awayScore string) apiEvent {
	return apiEvent{
		ID: id,
		Competitions: []apiCompetition{{
			Competitors: []apiCompetitor{
				{HomeAway: "home", Score: homeScore, Team: apiTeam{DisplayName: "Home FC"}},
				{HomeAway: "away", Score: awayScore, Team: apiTeam{DisplayName: "Away FC"}},
			},
			Status: apiStatus{Type: apiStatusType{
				Name:      statusName,
				State:     state,
				Completed: completed,
			}},
		}},
	}
}

func TestFindScoreFullTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "soccer/eng.1") {
			_ = json.NewEncoder(w).Encode(scoreboardResponse{Events: []apiEvent{
				event("evt42", "STATUS_FULL_TIME", "post", true, "2", "0"),
			}})
			return
		}
		_ = json.NewEncoder(w).Encode(scoreboardResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	score, leagueErrs := client.FindScore(context.Background(), "evt42")
	require.NotNil(t, score)

	assert.Equal(t, 0, leagueErrs)
	assert.Equal(t, domain.ScoreStatusFinal, score.Status)
	assert.Equal(t, domain.ScoreSourceFallback, score.Source)
	assert.Equal(t, "Home FC", score.HomeTeam)
	assert.Equal(t, 2, score.HomeScore)
	assert.Equal(t, 0, score.AwayScore)
}

func TestFindScoreMatchesUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "basketball/nba") {
			e := event("internal-1", "STATUS_FINAL", "post", true, "110", "99")
			e.UID = "s:40~l:46~e:evt77"
			_ = json.NewEncoder(w).Encode(scoreboardResponse{Events: []apiEvent{e}})
			return
		}
		_ = json.NewEncoder(w).Encode(scoreboardResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	score, _ := client.FindScore(context.Background(), "evt77")
	require.NotNil(t, score)
	assert.Equal(t, 110, score.HomeScore)
}

func TestFindScoreCountsLeagueFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "soccer/eng.1") || strings.Contains(r.URL.Path, "soccer/esp.1") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(scoreboardResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	score, leagueErrs := client.FindScore(context.Background(), "evt1")
	assert.Nil(t, score)
	assert.Equal(t, 2, leagueErrs)
}

func TestToScoreStatusTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		statusName string
		state      string
		completed  bool
		want       domain.ScoreStatus
	}{
		{"final name", "STATUS_FINAL", "post", false, domain.ScoreStatusFinal},
		{"full time", "STATUS_FULL_TIME", "post", false, domain.ScoreStatusFinal},
		{"penalties", "STATUS_FINAL_PEN", "post", false, domain.ScoreStatusFinal},
		{"completed flag only", "STATUS_SOMETHING", "post", true, domain.ScoreStatusFinal},
		{"in progress", "STATUS_IN_PROGRESS", "in", false, domain.ScoreStatusInProgress},
		{"scheduled", "STATUS_SCHEDULED", "pre", false, domain.ScoreStatusScheduled},
		{"unknown", "STATUS_POSTPONED", "post", false, domain.ScoreStatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := event("evt", tc.statusName, tc.state, tc.completed, "1", "1")
			score := e.toScore()
			require.NotNil(t, score)
			assert.Equal(t, tc.want, score.Status)
		})
	}
}

func TestToScoreMissingCompetitorIsNil(t *testing.T) {
	e := apiEvent{
		ID: "evt",
		Competitions: []apiCompetition{{
			Competitors: []apiCompetitor{
				{HomeAway: "home", Score: "1", Team: apiTeam{DisplayName: "Only Home"}},
			},
		}},
	}
	assert.Nil(t, e.toScore())

	e.Competitions = nil
	assert.Nil(t, e.toScore())
}

func TestToScoreBlankLiveScoreReadsZero(t *testing.T) {
	e := event("evt", "STATUS_IN_PROGRESS", "in", false, "", "")
	score := e.toScore()
	require.NotNil(t, score)
	assert.Equal(t, 0, score.HomeScore)
	assert.Equal(t, 0, score.AwayScore)
}
