package oddsapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func eplEvent(id string, completed bool, home, away string, homeScore, awayScore string) apiEvent {
	e := apiEvent{
		ID:        id,
		SportKey:  "soccer_epl",
		Completed: completed,
		HomeTeam:  home,
		AwayTeam:  away,
	}
	if homeScore != "" || awayScore != "" {
		e.Scores = []apiTeamScore{
			{Name: home, Score: homeScore},
			{Name: away, Score: awayScore},
		}
	}
	return e
}

func TestFindScoreCompletedEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("apiKey"))
		assert.Equal(t, "2", r.URL.Query().Get("daysFrom"))

		if strings.Contains(r.URL.Path, "soccer_epl") {
			_ = json.NewEncoder(w).Encode([]apiEvent{
				eplEvent("other-event", true, "X", "Y", "1", "1"),
				eplEvent("evt123", true, "Arsenal", "Chelsea", "3", "1"),
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]apiEvent{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testLogger())
	score, leagueErrs, err := client.FindScore(context.Background(), "evt123")
	require.NoError(t, err)
	require.NotNil(t, score)

	assert.Equal(t, 0, leagueErrs)
	assert.Equal(t, domain.ScoreStatusFinal, score.Status)
	assert.Equal(t, domain.ScoreSourcePrimary, score.Source)
	assert.Equal(t, "Arsenal", score.HomeTeam)
	assert.Equal(t, 3, score.HomeScore)
	assert.Equal(t, 1, score.AwayScore)
}

func TestFindScoreSubstringMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "basketball_nba") {
			_ = json.NewEncoder(w).Encode([]apiEvent{
				eplEvent("abc-evt55-xyz", true, "Lakers", "Celtics", "99", "101"),
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]apiEvent{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testLogger())
	score, _, err := client.FindScore(context.Background(), "evt55")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 101, score.AwayScore)
}

func TestFindScoreInProgressIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "soccer_epl") {
			_ = json.NewEncoder(w).Encode([]apiEvent{
				eplEvent("evt1", false, "Home", "Away", "1", "0"),
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]apiEvent{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testLogger())
	score, _, err := client.FindScore(context.Background(), "evt1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, domain.ScoreStatusInProgress, score.Status)
	assert.Equal(t, 1, score.HomeScore)
}

func TestFindScoreUnauthorizedAbortsScan(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", testLogger())
	score, _, err := client.FindScore(context.Background(), "evt1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, score)
	assert.Equal(t, int32(1), requests.Load(), "scan must stop at the first 401")
}

func TestFindScoreSkipsFailingLeagues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "soccer_epl") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if strings.Contains(r.URL.Path, "soccer_spain_la_liga") {
			_ = json.NewEncoder(w).Encode([]apiEvent{
				eplEvent("evt2", true, "Real", "Barca", "2", "2"),
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]apiEvent{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testLogger())
	score, leagueErrs, err := client.FindScore(context.Background(), "evt2")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 1, leagueErrs)
	assert.Equal(t, domain.ScoreStatusFinal, score.Status)
}

func TestFindScoreNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]apiEvent{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testLogger())
	score, leagueErrs, err := client.FindScore(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, score)
	assert.Equal(t, 0, leagueErrs)
}

func TestToScoreCompletedWithMissingScoresIsError(t *testing.T) {
	e := eplEvent("evt1", true, "Home", "Away", "", "")
	e.Scores = nil
	_, err := e.toScore()
	require.Error(t, err)
}

func TestToScoreNonNumericCompletedScoreIsError(t *testing.T) {
	e := eplEvent("evt1", true, "Home", "Away", "abc", "2")
	_, err := e.toScore()
	require.Error(t, err)
}
