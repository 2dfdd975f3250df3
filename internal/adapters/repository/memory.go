package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okian/careeriq/internal/domain/cohort"
	"github.com/okian/careeriq/internal/domain/model"
)

// In-memory store implementations backing tests and local runs
// without a MongoDB deployment. They mirror the Mongo stores'
// observable behavior, including archive-then-activate ordering.

// MemorySurveySource implements cohort.Source over a fixed slice of
// survey records.
type MemorySurveySource struct {
	mu      sync.RWMutex
	records []model.SurveyRecord
}

// NewMemorySurveySource creates a survey source over records.
func NewMemorySurveySource(records []model.SurveyRecord) *MemorySurveySource {
	return &MemorySurveySource{records: records}
}

func matches(r model.SurveyRecord, f cohort.Filter) bool {
	if r.Salary <= 0 {
		return false
	}
	if r.YearsExperience < f.MinExperience || r.YearsExperience > f.MaxExperience {
		return false
	}
	if f.Country != "" && r.Country != f.Country {
		return false
	}
	if f.Role != "" && r.Role != f.Role {
		return false
	}
	return true
}

// Count returns the number of records matching f.
func (s *MemorySurveySource) Count(_ context.Context, f cohort.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, r := range s.records {
		if matches(r, f) {
			n++
		}
	}
	return n, nil
}

// Aggregate returns ascending salaries and top-k frequency tables for
// the records matching f. Ties are broken by name for determinism.
func (s *MemorySurveySource) Aggregate(_ context.Context, f cohort.Filter, k cohort.TopK) (cohort.Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var agg cohort.Aggregate
	languages := map[string]int64{}
	databases := map[string]int64{}
	platforms := map[string]int64{}
	frameworks := map[string]int64{}

	for _, r := range s.records {
		if !matches(r, f) {
			continue
		}
		agg.Salaries = append(agg.Salaries, r.Salary)
		countInto(languages, r.Languages)
		countInto(databases, r.Databases)
		countInto(platforms, r.Platforms)
		countInto(frameworks, r.Frameworks)
	}
	sort.Float64s(agg.Salaries)

	agg.Languages = topK(languages, k.Languages)
	agg.Databases = topK(databases, k.Databases)
	agg.Platforms = topK(platforms, k.Platforms)
	agg.Frameworks = topK(frameworks, k.Frameworks)
	return agg, nil
}

func countInto(freq map[string]int64, values []string) {
	for _, v := range values {
		if v != "" {
			freq[v]++
		}
	}
}

func topK(freq map[string]int64, k int) []model.SkillCount {
	table := make([]model.SkillCount, 0, len(freq))
	for name, count := range freq {
		table = append(table, model.SkillCount{Name: name, Count: count})
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Name < table[j].Name
	})
	if len(table) > k {
		table = table[:k]
	}
	return table
}

// MemoryReportStore implements ReportStore in memory.
type MemoryReportStore struct {
	mu      sync.Mutex
	reports []model.BenchmarkReport
}

// NewMemoryReportStore creates an empty report store.
func NewMemoryReportStore() *MemoryReportStore {
	return &MemoryReportStore{}
}

// Activate archives the user's current reports, then appends r as
// current.
func (s *MemoryReportStore) Activate(_ context.Context, r model.BenchmarkReport) (model.BenchmarkReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].UserID == r.UserID {
			s.reports[i].IsCurrent = false
		}
	}
	r.ID = primitive.NewObjectID()
	r.IsCurrent = true
	s.reports = append(s.reports, r)
	return r, nil
}

// Current returns the user's current report.
func (s *MemoryReportStore) Current(_ context.Context, userID string) (model.BenchmarkReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.UserID == userID && r.IsCurrent {
			return r, nil
		}
	}
	return model.BenchmarkReport{}, ErrNotFound
}

// All returns every stored report for the user, archived included.
func (s *MemoryReportStore) All(userID string) []model.BenchmarkReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.BenchmarkReport
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// MemoryPlanStore implements PlanStore in memory.
type MemoryPlanStore struct {
	mu    sync.Mutex
	plans []model.CareerPlan
}

// NewMemoryPlanStore creates an empty plan store.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{}
}

// Activate archives the user's active plans, then appends p as
// active.
func (s *MemoryPlanStore) Activate(_ context.Context, p model.CareerPlan) (model.CareerPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].UserID == p.UserID {
			s.plans[i].IsActive = false
		}
	}
	p.ID = primitive.NewObjectID()
	p.IsActive = true
	s.plans = append(s.plans, p)
	return p, nil
}

// Active returns the user's active plan.
func (s *MemoryPlanStore) Active(_ context.Context, userID string) (model.CareerPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.plans {
		if p.UserID == userID && p.IsActive {
			return clonePlan(p), nil
		}
	}
	return model.CareerPlan{}, ErrNotFound
}

// UpdateRecommendation replaces one embedded recommendation by id.
func (s *MemoryPlanStore) UpdateRecommendation(_ context.Context, planID primitive.ObjectID, rec model.Recommendation, completion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID != planID {
			continue
		}
		for j := range s.plans[i].Recommendations {
			if s.plans[i].Recommendations[j].ID == rec.ID {
				s.plans[i].Recommendations[j] = rec
				s.plans[i].CompletionPercent = completion
				return nil
			}
		}
	}
	return ErrNotFound
}

// SetRecommendations replaces the whole recommendation list.
func (s *MemoryPlanStore) SetRecommendations(_ context.Context, planID primitive.ObjectID, recs []model.Recommendation, completion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == planID {
			s.plans[i].Recommendations = append([]model.Recommendation(nil), recs...)
			s.plans[i].CompletionPercent = completion
			return nil
		}
	}
	return ErrNotFound
}

func clonePlan(p model.CareerPlan) model.CareerPlan {
	p.Recommendations = append([]model.Recommendation(nil), p.Recommendations...)
	return p
}

// MemoryProfileStore implements ProfileStore in memory.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
}

// NewMemoryProfileStore creates an empty profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]model.Profile)}
}

// Upsert replaces the user's profile.
func (s *MemoryProfileStore) Upsert(_ context.Context, p model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.profiles[p.UserID] = p
	return p, nil
}

// Get returns the user's profile.
func (s *MemoryProfileStore) Get(_ context.Context, userID string) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, ErrNotFound
	}
	return p, nil
}
