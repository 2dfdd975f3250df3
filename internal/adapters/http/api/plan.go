// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/careeriq/internal/domain/model"
)

// PlanDependencies defines the interface for career plan operations.
type PlanDependencies interface {
	GeneratePlan(ctx context.Context, userID string) (model.CareerPlan, error)
	ActivePlan(ctx context.Context, userID string) (model.CareerPlan, error)
	UpdateRecommendation(ctx context.Context, userID, recID string, status, notes *string) (model.Recommendation, error)
}

// PlanHandler handles career plan requests.
type PlanHandler struct {
	deps PlanDependencies
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(deps PlanDependencies) *PlanHandler {
	return &PlanHandler{deps: deps}
}

// HandleGenerate handles POST /api/v1/plan/generate requests.
func (h *PlanHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	p, err := h.deps.GeneratePlan(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleActive handles GET /api/v1/plan requests.
func (h *PlanHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	p, err := h.deps.ActivePlan(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// recommendationRequest mirrors the PATCH body for one recommendation.
// Absent fields leave the stored value untouched.
type recommendationRequest struct {
	Status    *string `json:"status"`
	UserNotes *string `json:"user_notes"`
}

// HandleUpdateRecommendation handles
// PATCH /api/v1/plan/recommendations/{id} requests.
func (h *PlanHandler) HandleUpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	recID := strings.TrimPrefix(r.URL.Path, "/api/v1/plan/recommendations/")
	if recID == "" || strings.Contains(recID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", errMissingField("recommendation id"))
		return
	}
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Status == nil && req.UserNotes == nil {
		writeError(w, http.StatusBadRequest, "bad_request", errMissingField("status or user_notes"))
		return
	}
	rec, err := h.deps.UpdateRecommendation(r.Context(), identity.UserID, recID, req.Status, req.UserNotes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
