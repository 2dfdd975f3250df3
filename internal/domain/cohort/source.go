// Package cohort selects the comparison population for a profile by
// progressively relaxing match constraints.
package cohort

import (
	"context"

	"github.com/okian/careeriq/internal/domain/model"
)

// Filter is a conjunctive predicate over survey records. Empty Country
// or Role means the constraint is dropped. Records with non-positive
// salary are always excluded by implementations.
type Filter struct {
	Country       string
	Role          string
	MinExperience float64
	MaxExperience float64
}

// TopK bounds the per-category frequency tables returned by Aggregate.
type TopK struct {
	Languages  int
	Databases  int
	Platforms  int
	Frameworks int
}

// Aggregate is the materialized view of a filtered population.
type Aggregate struct {
	// Salaries sorted ascending.
	Salaries   []float64
	Languages  []model.SkillCount
	Databases  []model.SkillCount
	Platforms  []model.SkillCount
	Frameworks []model.SkillCount
}

// Source is the read-only query surface over the survey population.
type Source interface {
	// Count returns the number of records matching f.
	Count(ctx context.Context, f Filter) (int64, error)

	// Aggregate returns sorted salaries and top-k skill frequency
	// tables for the records matching f.
	Aggregate(ctx context.Context, f Filter, k TopK) (Aggregate, error)
}
