// Package ledger is the thin REST client for the prediction-market ledger:
// listing unresolved sports markets and submitting resolutions. The ledger
// owns all market, pool, and bet state; this client never caches it.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// Client is the REST client for the ledger API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a ledger client.
//
// baseURL is the ledger API root, e.g. "https://api.example.bet".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// ListUnresolvedSportsMarkets returns sports markets whose betting window has
// closed but which are not yet resolved. The upstream unresolved filter is
// necessary but not sufficient: it does not filter by deadline or market
// family, so both are applied locally.
func (c *Client) ListUnresolvedSportsMarkets(ctx context.Context) ([]domain.Market, error) {
	endpoint := c.baseURL + "/predictions/markets?include_resolved=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger: list markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ledger: list markets: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ledger: read markets: %w", err)
	}

	var listResp listMarketsResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("ledger: decode markets: %w", err)
	}

	now := c.now()
	markets := make([]domain.Market, 0, len(listResp.Markets))
	for _, am := range listResp.Markets {
		m := am.toDomain()
		if !domain.IsSportsMarket(m.ID) || !m.Due(now) {
			continue
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// ResolveMarket posts the outcome for a market. A DRAW triggers ledger-side
// refund logic for all participants; this client only signals the outcome.
// Submitting for an already-resolved market is expected to be rejected by the
// ledger, which surfaces here as ErrResolveRejected.
func (c *Client) ResolveMarket(ctx context.Context, marketID string, outcome domain.Outcome) error {
	endpoint := fmt.Sprintf("%s/predictions/markets/%s/resolve", c.baseURL, url.PathEscape(marketID))

	payload, err := json.Marshal(resolveRequest{Outcome: string(outcome)})
	if err != nil {
		return fmt.Errorf("ledger: marshal resolve %s: %w", marketID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ledger: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger: resolve %s: %w", marketID, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rr resolveResponse
		_ = json.Unmarshal(body, &rr)
		if rr.Error != "" {
			return fmt.Errorf("ledger: resolve %s: HTTP %d: %s: %w", marketID, resp.StatusCode, rr.Error, domain.ErrResolveRejected)
		}
		return fmt.Errorf("ledger: resolve %s: HTTP %d: %w", marketID, resp.StatusCode, domain.ErrResolveRejected)
	}

	var rr resolveResponse
	if err := json.Unmarshal(body, &rr); err == nil && !rr.Success && rr.Error != "" {
		return fmt.Errorf("ledger: resolve %s: %s: %w", marketID, rr.Error, domain.ErrResolveRejected)
	}
	return nil
}
