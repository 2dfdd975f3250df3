// Package repository provides collection-store access for profiles,
// survey records, benchmark reports and career plans.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okian/careeriq/internal/domain/model"
)

// Collection names in the careeriq database.
const (
	ProfileCollection = "profiles"
	SurveyCollection  = "market_benchmarks"
	ReportCollection  = "benchmark_reports"
	PlanCollection    = "career_plans"
)

// ProfileStore reads and writes user profiles, one document per user.
type ProfileStore interface {
	// Upsert replaces the user's profile, creating it if absent.
	Upsert(ctx context.Context, p model.Profile) (model.Profile, error)

	// Get returns the user's profile or ErrNotFound.
	Get(ctx context.Context, userID string) (model.Profile, error)
}

// ReportStore owns the benchmark report lifecycle. At most one report
// per user is current between operations.
type ReportStore interface {
	// Activate marks every existing current report for the report's
	// user as non-current, then stores the report as current.
	Activate(ctx context.Context, r model.BenchmarkReport) (model.BenchmarkReport, error)

	// Current returns the single current report or ErrNotFound.
	Current(ctx context.Context, userID string) (model.BenchmarkReport, error)
}

// PlanStore owns the career plan lifecycle and the embedded
// recommendation list. At most one plan per user is active.
type PlanStore interface {
	// Activate marks every existing active plan for the plan's user
	// as inactive, then stores the plan as active.
	Activate(ctx context.Context, p model.CareerPlan) (model.CareerPlan, error)

	// Active returns the single active plan or ErrNotFound.
	Active(ctx context.Context, userID string) (model.CareerPlan, error)

	// UpdateRecommendation replaces one embedded recommendation by id
	// and persists the recomputed completion percentage. Returns
	// ErrNotFound if the plan or the recommendation is absent.
	UpdateRecommendation(ctx context.Context, planID primitive.ObjectID, rec model.Recommendation, completion int) error

	// SetRecommendations replaces the whole recommendation list and
	// the completion percentage, used for legacy id repair.
	SetRecommendations(ctx context.Context, planID primitive.ObjectID, recs []model.Recommendation, completion int) error
}
