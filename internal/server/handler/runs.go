package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/service"
)

// RunsHandler serves run-history endpoints.
type RunsHandler struct {
	svc    *service.ReconcileService
	logger *slog.Logger
}

// NewRunsHandler creates a RunsHandler around the reconcile service.
func NewRunsHandler(svc *service.ReconcileService, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{svc: svc, logger: logger}
}

// ListRuns returns recent run summaries, newest first.
// GET /api/runs
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	opts := parseListOpts(r)

	runs, err := h.svc.RunHistory(r.Context(), opts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run history is not enabled")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: list runs failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	if runs == nil {
		runs = []domain.RunSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}
