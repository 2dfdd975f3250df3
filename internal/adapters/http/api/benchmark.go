// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/careeriq/internal/domain/model"
)

// BenchmarkDependencies defines the interface for benchmark operations.
type BenchmarkDependencies interface {
	GenerateBenchmark(ctx context.Context, userID string) (model.BenchmarkReport, error)
	CurrentReport(ctx context.Context, userID string) (model.BenchmarkReport, error)
}

// BenchmarkHandler handles benchmark report requests.
type BenchmarkHandler struct {
	deps BenchmarkDependencies
}

// NewBenchmarkHandler creates a new benchmark handler.
func NewBenchmarkHandler(deps BenchmarkDependencies) *BenchmarkHandler {
	return &BenchmarkHandler{deps: deps}
}

// HandleGenerate handles POST /api/v1/benchmarks/generate requests.
func (h *BenchmarkHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	report, err := h.deps.GenerateBenchmark(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// HandleCurrent handles GET /api/v1/benchmarks/current requests.
func (h *BenchmarkHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	report, err := h.deps.CurrentReport(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
