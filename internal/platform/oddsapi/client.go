// Package oddsapi is the REST adapter for the primary score provider, a
// credential-keyed odds API with per-sport scoreboard endpoints.
package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// Leagues is the fixed allow-list of sport keys scanned for a matching event:
// top-five European soccer leagues, MLS, the continental cups, and the major
// US leagues plus combat sports.
var Leagues = []string{
	"soccer_epl",
	"soccer_spain_la_liga",
	"soccer_germany_bundesliga",
	"soccer_italy_serie_a",
	"soccer_france_ligue_one",
	"soccer_usa_mls",
	"soccer_uefa_champs_league",
	"soccer_uefa_europa_league",
	"americanfootball_nfl",
	"americanfootball_ncaaf",
	"basketball_nba",
	"basketball_ncaab",
	"baseball_mlb",
	"icehockey_nhl",
	"mma_mixed_martial_arts",
	"boxing_boxing",
}

// leagueTimeout caps a single league scoreboard request.
const leagueTimeout = 8 * time.Second

// Client is the REST client for the primary odds provider.
type Client struct {
	baseURL    string
	apiKey     string
	leagues    []string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a primary provider client.
//
// baseURL is the API root, e.g. "https://api.the-odds-api.com".
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		leagues: Leagues,
		httpClient: &http.Client{
			Timeout: leagueTimeout,
		},
		logger: logger.With(slog.String("component", "oddsapi")),
	}
}

// FindScore scans every allowed league's scoreboard for an event whose
// provider-native id matches eventID (exact or substring in either direction,
// since the upstream id format is inconsistent between contexts) and returns
// its normalized score. It returns a nil score when no league produced a
// match, together with the number of league calls that failed outright.
//
// A 401 means the credential is invalid; the scan is aborted and
// domain.ErrUnauthorized returned, since retrying other leagues would only
// waste quota. Any other per-league failure skips that league.
func (c *Client) FindScore(ctx context.Context, eventID string) (*domain.Score, int, error) {
	leagueErrors := 0

	for _, league := range c.leagues {
		events, err := c.leagueScores(ctx, league)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.logger.WarnContext(ctx, "credential rejected, aborting primary scan",
					slog.String("league", league),
				)
				return nil, leagueErrors, domain.ErrUnauthorized
			}
			leagueErrors++
			c.logger.DebugContext(ctx, "league scoreboard failed",
				slog.String("league", league),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, e := range events {
			if !idMatches(e.ID, eventID) {
				continue
			}
			score, convErr := e.toScore()
			if convErr != nil {
				leagueErrors++
				c.logger.WarnContext(ctx, "matched event has malformed scores",
					slog.String("league", league),
					slog.String("event_id", e.ID),
					slog.String("error", convErr.Error()),
				)
				break // payload for this league is unusable, try the next
			}
			return score, leagueErrors, nil
		}
	}

	return nil, leagueErrors, nil
}

// leagueScores fetches the recent scoreboard for one sport key.
func (c *Client) leagueScores(ctx context.Context, league string) ([]apiEvent, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("daysFrom", "2")

	endpoint := fmt.Sprintf("%s/v4/sports/%s/scores/?%s", c.baseURL, url.PathEscape(league), params.Encode())

	reqCtx, cancel := context.WithTimeout(ctx, leagueTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: %s scoreboard: %w", league, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("oddsapi: %s scoreboard: %w", league, domain.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("oddsapi: %s scoreboard: HTTP %d", league, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: read %s scoreboard: %w", league, err)
	}

	var events []apiEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("oddsapi: decode %s scoreboard: %w", league, err)
	}
	return events, nil
}

// idMatches compares provider-native and requested event ids, accepting a
// substring match in either direction.
func idMatches(nativeID, eventID string) bool {
	if nativeID == "" || eventID == "" {
		return false
	}
	return nativeID == eventID ||
		strings.Contains(nativeID, eventID) ||
		strings.Contains(eventID, nativeID)
}
