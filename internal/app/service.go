// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/careeriq/internal/adapters/advisor"
	"github.com/okian/careeriq/internal/adapters/repository"
	"github.com/okian/careeriq/internal/domain/cohort"
	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/internal/domain/plan"
	"github.com/okian/careeriq/internal/domain/scoring"
	"github.com/okian/careeriq/pkg/logger"
	"github.com/okian/careeriq/pkg/metrics"
)

// Service implements the career benchmarking operations exposed over
// the HTTP API.
type Service struct {
	profiles repository.ProfileStore
	reports  repository.ReportStore
	plans    repository.PlanStore
	resolver *cohort.Resolver
	engine   *scoring.Engine
	advisor  advisor.Provider

	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProfileStore sets the profile store.
func WithProfileStore(s repository.ProfileStore) Option {
	return func(svc *Service) {
		svc.profiles = s
	}
}

// WithReportStore sets the benchmark report store.
func WithReportStore(s repository.ReportStore) Option {
	return func(svc *Service) {
		svc.reports = s
	}
}

// WithPlanStore sets the career plan store.
func WithPlanStore(s repository.PlanStore) Option {
	return func(svc *Service) {
		svc.plans = s
	}
}

// WithResolver sets the cohort resolver.
func WithResolver(r *cohort.Resolver) Option {
	return func(svc *Service) {
		if r != nil {
			svc.resolver = r
		}
	}
}

// WithEngine sets the scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(svc *Service) {
		if e != nil {
			svc.engine = e
		}
	}
}

// WithAdvisor sets the advice provider. A nil provider is allowed;
// plans then always come from the fallback template.
func WithAdvisor(p advisor.Provider) Option {
	return func(svc *Service) {
		svc.advisor = p
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine: scoring.NewEngine(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// SaveProfile upserts the user's profile, stamping the update time.
func (s *Service) SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	p.UpdatedAt = s.now().UTC()
	saved, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		metrics.RecordStoreError("profiles.upsert")
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info(ctx, "profile saved", logger.String("userID", p.UserID))
	return saved, nil
}

// GetProfile returns the user's profile or repository.ErrNotFound.
func (s *Service) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GenerateBenchmark resolves the user's comparison cohort, scores the
// profile against it, and activates the resulting report. The previous
// current report is archived in the same call.
func (s *Service) GenerateBenchmark(ctx context.Context, userID string) (model.BenchmarkReport, error) {
	start := s.now()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BenchmarkReport{}, ErrProfileRequired
		}
		return model.BenchmarkReport{}, fmt.Errorf("load profile: %w", err)
	}

	res, err := s.resolver.Resolve(ctx, cohort.Target{
		Country:         profile.Country,
		Role:            profile.CurrentTitle,
		YearsExperience: profile.YearsExperience,
	})
	if err != nil {
		if errors.Is(err, cohort.ErrNoCohort) {
			metrics.RecordCohortUnavailable()
			s.logger.Warn(ctx, "no comparable population",
				logger.String("userID", userID),
				logger.String("country", profile.Country),
				logger.String("role", profile.CurrentTitle),
			)
			return model.BenchmarkReport{}, ErrInsufficientData
		}
		return model.BenchmarkReport{}, fmt.Errorf("resolve cohort: %w", err)
	}
	metrics.RecordCohortTier(res.Tier)

	report := s.engine.Score(profile, res.Cohort)
	report.UserID = userID

	saved, err := s.reports.Activate(ctx, report)
	if err != nil {
		metrics.RecordStoreError("reports.activate")
		return model.BenchmarkReport{}, fmt.Errorf("activate report: %w", err)
	}

	metrics.RecordReportGenerated()
	metrics.RecordScoringDuration(float64(s.now().Sub(start).Milliseconds()))
	s.logger.Info(ctx, "benchmark report generated",
		logger.String("userID", userID),
		logger.String("tier", res.Tier),
		logger.Int("cohortSize", int(res.Cohort.Size)),
		logger.Int("percentile", saved.CompensationPercentile),
	)
	return saved, nil
}

// CurrentReport returns the user's current benchmark report or
// repository.ErrNotFound.
func (s *Service) CurrentReport(ctx context.Context, userID string) (model.BenchmarkReport, error) {
	r, err := s.reports.Current(ctx, userID)
	if err != nil {
		return model.BenchmarkReport{}, fmt.Errorf("current report: %w", err)
	}
	return r, nil
}

// GeneratePlan produces a career plan from the current benchmark
// report, generating a fresh report first when none exists. Advice
// provider failures fall back to a fixed two-recommendation template
// and never surface as errors.
func (s *Service) GeneratePlan(ctx context.Context, userID string) (model.CareerPlan, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CareerPlan{}, ErrProfileRequired
		}
		return model.CareerPlan{}, fmt.Errorf("load profile: %w", err)
	}

	report, err := s.reports.Current(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		report, err = s.GenerateBenchmark(ctx, userID)
	}
	if err != nil {
		return model.CareerPlan{}, err
	}

	advice := s.advise(ctx, profile, report)

	now := s.now().UTC()
	recs := plan.FromDrafts(advice.Recommendations, now)
	p := model.CareerPlan{
		UserID:            userID,
		BenchmarkReportID: report.ID.Hex(),
		Summary:           advice.Summary,
		LongTermGoal:      advice.LongTermGoal,
		Recommendations:   recs,
		CompletionPercent: plan.CompletionPercent(recs),
		GeneratedAt:       now,
	}

	saved, err := s.plans.Activate(ctx, p)
	if err != nil {
		metrics.RecordStoreError("plans.activate")
		return model.CareerPlan{}, fmt.Errorf("activate plan: %w", err)
	}

	metrics.RecordPlanGenerated()
	s.logger.Info(ctx, "career plan generated",
		logger.String("userID", userID),
		logger.Int("recommendations", len(saved.Recommendations)),
	)
	return saved, nil
}

// advise asks the provider for tailored advice and degrades to the
// fallback template on any failure.
func (s *Service) advise(ctx context.Context, profile model.Profile, report model.BenchmarkReport) advisor.Advice {
	if s.advisor == nil {
		metrics.RecordAdvisorFallback()
		return advisor.Fallback()
	}

	start := s.now()
	advice, err := s.advisor.Advise(ctx, profile, report)
	metrics.RecordAdvisorDuration(float64(s.now().Sub(start).Milliseconds()))
	if err != nil || len(advice.Recommendations) == 0 {
		metrics.RecordAdvisorFallback()
		s.logger.Warn(ctx, "advice provider unavailable, using fallback",
			logger.String("userID", profile.UserID),
			logger.Any("error", err),
		)
		return advisor.Fallback()
	}
	return advice
}

// ActivePlan returns the user's active career plan with recommendation
// ids repaired and the completion percentage recomputed. Repairs are
// persisted before returning.
func (s *Service) ActivePlan(ctx context.Context, userID string) (model.CareerPlan, error) {
	p, err := s.plans.Active(ctx, userID)
	if err != nil {
		return model.CareerPlan{}, fmt.Errorf("active plan: %w", err)
	}

	repaired := plan.EnsureIDs(p.Recommendations)
	completion := plan.CompletionPercent(p.Recommendations)
	if repaired || completion != p.CompletionPercent {
		if err := s.plans.SetRecommendations(ctx, p.ID, p.Recommendations, completion); err != nil {
			metrics.RecordStoreError("plans.set_recommendations")
			return model.CareerPlan{}, fmt.Errorf("repair plan: %w", err)
		}
		if repaired {
			metrics.RecordLegacyIDRepair()
			s.logger.Info(ctx, "repaired recommendation ids",
				logger.String("userID", userID),
				logger.String("planID", p.ID.Hex()),
			)
		}
	}
	p.CompletionPercent = completion
	return p, nil
}

// UpdateRecommendation applies a status transition and/or a note to
// one recommendation of the active plan and persists the recomputed
// completion percentage. Nil fields are left untouched.
func (s *Service) UpdateRecommendation(ctx context.Context, userID, recID string, status, notes *string) (model.Recommendation, error) {
	p, err := s.ActivePlan(ctx, userID)
	if err != nil {
		return model.Recommendation{}, err
	}

	idx := -1
	for i := range p.Recommendations {
		if p.Recommendations[i].ID == recID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Recommendation{}, fmt.Errorf("recommendation %s: %w", recID, repository.ErrNotFound)
	}

	rec := &p.Recommendations[idx]
	if status != nil {
		if err := plan.Transition(rec, *status, s.now().UTC()); err != nil {
			return model.Recommendation{}, err
		}
		metrics.RecordRecommendationUpdate(rec.Status)
	}
	if notes != nil {
		rec.UserNotes = *notes
	}

	completion := plan.CompletionPercent(p.Recommendations)
	if err := s.plans.UpdateRecommendation(ctx, p.ID, *rec, completion); err != nil {
		metrics.RecordStoreError("plans.update_recommendation")
		return model.Recommendation{}, fmt.Errorf("update recommendation: %w", err)
	}
	return *rec, nil
}

// DashboardSummary assembles the dashboard view, tolerating an absent
// report or plan.
func (s *Service) DashboardSummary(ctx context.Context, userID string) (model.Dashboard, error) {
	var d model.Dashboard

	if _, err := s.profiles.Get(ctx, userID); err == nil {
		d.HasProfile = true
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Dashboard{}, fmt.Errorf("dashboard profile: %w", err)
	}

	if r, err := s.reports.Current(ctx, userID); err == nil {
		d.HasReport = true
		d.CompensationQuartile = r.CompensationQuartile
		d.MarketComparison = r.MarketComparison
		d.CohortLabel = r.CohortLabel
		generatedAt := r.GeneratedAt
		d.ReportGeneratedAt = &generatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Dashboard{}, fmt.Errorf("dashboard report: %w", err)
	}

	if p, err := s.plans.Active(ctx, userID); err == nil {
		d.HasPlan = true
		d.PlanCompletion = plan.CompletionPercent(p.Recommendations)
		d.CompletedRecommendations, d.TotalRecommendations = plan.Counts(p.Recommendations)
		if milestone, ok := plan.NextMilestone(p.Recommendations); ok {
			d.NextMilestone = milestone
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Dashboard{}, fmt.Errorf("dashboard plan: %w", err)
	}

	return d, nil
}
