// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/careeriq/internal/adapters/repository"
	service "github.com/okian/careeriq/internal/app"
	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/internal/domain/plan"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	GetProfile(ctx context.Context, userID string) (model.Profile, error)

	GenerateBenchmark(ctx context.Context, userID string) (model.BenchmarkReport, error)
	CurrentReport(ctx context.Context, userID string) (model.BenchmarkReport, error)

	GeneratePlan(ctx context.Context, userID string) (model.CareerPlan, error)
	ActivePlan(ctx context.Context, userID string) (model.CareerPlan, error)
	UpdateRecommendation(ctx context.Context, userID, recID string, status, notes *string) (model.Recommendation, error)

	DashboardSummary(ctx context.Context, userID string) (model.Dashboard, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	profileHandler   *ProfileHandler
	benchmarkHandler *BenchmarkHandler
	planHandler      *PlanHandler
	dashboardHandler *DashboardHandler
	verifier         TokenVerifier
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, verifier TokenVerifier) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		profileHandler:   NewProfileHandler(deps),
		benchmarkHandler: NewBenchmarkHandler(deps),
		planHandler:      NewPlanHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		verifier:         verifier,
	}
}

// Register attaches all HTTP routes to mux. Business routes sit behind
// the bearer-token middleware; health and metrics stay open.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)

	authed := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(AuthMiddleware(s.verifier, h), endpoint)
	}
	mux.HandleFunc("/api/v1/profile", authed(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/api/v1/benchmarks/generate", authed(s.benchmarkHandler.HandleGenerate, "benchmark_generate"))
	mux.HandleFunc("/api/v1/benchmarks/current", authed(s.benchmarkHandler.HandleCurrent, "benchmark_current"))
	mux.HandleFunc("/api/v1/plan/generate", authed(s.planHandler.HandleGenerate, "plan_generate"))
	mux.HandleFunc("/api/v1/plan", authed(s.planHandler.HandleActive, "plan_active"))
	mux.HandleFunc("/api/v1/plan/recommendations/", authed(s.planHandler.HandleUpdateRecommendation, "plan_recommendation"))
	mux.HandleFunc("/api/v1/dashboard/summary", authed(s.dashboardHandler.HandleSummary, "dashboard_summary"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer sentinels to HTTP status
// codes; anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProfileRequired):
		writeError(w, http.StatusBadRequest, "profile_required", err)
	case errors.Is(err, service.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_data", err)
	case errors.Is(err, plan.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
