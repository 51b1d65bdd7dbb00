package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hiredesk/internal/service"
)

// DashboardHandler serves the aggregate counts.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// HandleStats returns the four dashboard counts, recomputed on every call.
//
// HTTP: GET /dashboard/stats
// → {"totalPositions":N,"totalCandidates":N,"inReview":N,"shortlisted":N}
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
