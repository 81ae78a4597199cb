package handler

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/service"
)

// ReconcileHandler serves the reconcile trigger endpoint.
type ReconcileHandler struct {
	svc     *service.ReconcileService
	logger  *slog.Logger
	running atomic.Bool
}

// triggerResponse is the trigger endpoint's response body: the run summary
// counters plus an explicit success flag and completion timestamp.
type triggerResponse struct {
	Success bool `json:"success"`
	domain.RunSummary
	Timestamp string `json:"timestamp"`
}

// NewReconcileHandler creates a ReconcileHandler around the reconcile service.
func NewReconcileHandler(svc *service.ReconcileService, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{svc: svc, logger: logger}
}

// TriggerReconcile runs one reconciliation synchronously and returns the run
// summary with success=true. A failed run (ledger listing unavailable) yields
// 500 with success=false and the error. Only one run may be in flight at a
// time; concurrent triggers get a 409.
// POST /api/reconcile
func (h *ReconcileHandler) TriggerReconcile(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a reconcile run is already in progress")
		return
	}
	defer h.running.Store(false)

	h.logger.InfoContext(r.Context(), "handler: reconcile triggered",
		slog.Bool("manual", r.URL.Query().Get("manual") == "true"),
	)

	summary, err := h.svc.Execute(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: reconcile run failed",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, triggerResponse{
		Success:    true,
		RunSummary: summary,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
