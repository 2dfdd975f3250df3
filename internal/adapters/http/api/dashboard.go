// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/careeriq/internal/domain/model"
)

// DashboardDependencies defines the interface for dashboard queries.
type DashboardDependencies interface {
	DashboardSummary(ctx context.Context, userID string) (model.Dashboard, error)
}

// DashboardHandler handles dashboard summary requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleSummary handles GET /api/v1/dashboard/summary requests.
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	summary, err := h.deps.DashboardSummary(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
