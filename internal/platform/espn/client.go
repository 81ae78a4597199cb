// Package espn is the REST adapter for the fallback score provider, the
// public ESPN site scoreboard API. It needs no credential, which makes it the
// degraded-mode source when the primary provider is unavailable.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// Leagues is the fixed list of scoreboard paths scanned for a matching event,
// mirroring the primary provider's coverage.
var Leagues = []string{
	"soccer/eng.1",
	"soccer/esp.1",
	"soccer/ger.1",
	"soccer/ita.1",
	"soccer/fra.1",
	"soccer/usa.1",
	"soccer/uefa.champions",
	"soccer/uefa.europa",
	"football/nfl",
	"football/college-football",
	"basketball/nba",
	"basketball/mens-college-basketball",
	"baseball/mlb",
	"hockey/nhl",
	"mma/ufc",
	"boxing/boxing",
}

// leagueTimeout caps a single scoreboard request. The fallback is kept on a
// tighter budget than the primary since it is scanned last.
const leagueTimeout = 5 * time.Second

// Client is the REST client for the fallback scoreboard provider.
type Client struct {
	baseURL    string
	leagues    []string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a fallback provider client.
//
// baseURL is the API root, e.g. "https://site.api.espn.com".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		leagues: Leagues,
		httpClient: &http.Client{
			Timeout: leagueTimeout,
		},
		logger: logger.With(slog.String("component", "espn")),
	}
}

// FindScore scans every league scoreboard for an event whose id matches
// eventID (exact or substring in either direction) and returns its normalized
// score, plus the number of league calls that failed. League failures are
// skipped silently beyond debug logging; a nil score with no error means no
// league produced a match.
func (c *Client) FindScore(ctx context.Context, eventID string) (*domain.Score, int) {
	leagueErrors := 0

	for _, league := range c.leagues {
		board, err := c.scoreboard(ctx, league)
		if err != nil {
			leagueErrors++
			c.logger.DebugContext(ctx, "scoreboard failed",
				slog.String("league", league),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, e := range board.Events {
			if !idMatches(e.ID, eventID) && !idMatches(e.UID, eventID) {
				continue
			}
			if score := e.toScore(); score != nil {
				return score, leagueErrors
			}
		}
	}

	return nil, leagueErrors
}

// scoreboard fetches one league's current scoreboard.
func (c *Client) scoreboard(ctx context.Context, league string) (*scoreboardResponse, error) {
	endpoint := fmt.Sprintf("%s/apis/site/v2/sports/%s/scoreboard", c.baseURL, league)

	reqCtx, cancel := context.WithTimeout(ctx, leagueTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("espn: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn: %s scoreboard: %w", league, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("espn: %s scoreboard: HTTP %d", league, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("espn: read %s scoreboard: %w", league, err)
	}

	var board scoreboardResponse
	if err := json.Unmarshal(body, &board); err != nil {
		return nil, fmt.Errorf("espn: decode %s scoreboard: %w", league, err)
	}
	return &board, nil
}

func idMatches(nativeID, eventID string) bool {
	if nativeID == "" || eventID == "" {
		return false
	}
	return nativeID == eventID ||
		strings.Contains(nativeID, eventID) ||
		strings.Contains(eventID, nativeID)
}
