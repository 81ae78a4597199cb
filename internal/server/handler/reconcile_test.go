package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/sportsettle/internal/cache/memory"
	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/reconciler"
	"github.com/jmcalloway/sportsettle/internal/schedule"
	"github.com/jmcalloway/sportsettle/internal/service"
)

type stubGateway struct {
	markets []domain.Market
	listErr error
}

func (g *stubGateway) ListUnresolvedSportsMarkets(ctx context.Context) ([]domain.Market, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.markets, nil
}

func (g *stubGateway) ResolveMarket(ctx context.Context, marketID string, outcome domain.Outcome) error {
	return nil
}

type stubFetcher struct{}

func (stubFetcher) FetchScore(ctx context.Context, eventID string) (*domain.Score, domain.FetchStats) {
	return nil, domain.FetchStats{}
}

func reconcileHandler(gateway *stubGateway) *ReconcileHandler {
	logger := slog.New(slog.DiscardHandler)
	job := reconciler.NewJob(gateway, stubFetcher{}, memory.NewScoreCache(), schedule.New(), logger)
	svc := service.NewReconcileService(job, nil, nil, nil, nil, logger)
	return NewReconcileHandler(svc, logger)
}

func TestTriggerReconcileSuccessBody(t *testing.T) {
	h := reconcileHandler(&stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", nil)
	rec := httptest.NewRecorder()
	h.TriggerReconcile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["run_id"])
	assert.Contains(t, body, "cacheSize")
}

func TestTriggerReconcileListingFailureIs500(t *testing.T) {
	h := reconcileHandler(&stubGateway{listErr: errors.New("ledger down")})

	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", nil)
	rec := httptest.NewRecorder()
	h.TriggerReconcile(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "ledger down")
}
