package cohort

import (
	"context"
	"fmt"

	"github.com/okian/careeriq/internal/domain/model"
)

// Default resolution configuration constants.
const (
	// DefaultMinSampleSize is the minimum cohort size considered
	// statistically adequate.
	DefaultMinSampleSize = 10

	// strictExperienceBand and wideExperienceBand are the half-widths
	// of the years-of-experience window per relaxation tier.
	strictExperienceBand = 2.0
	wideExperienceBand   = 5.0
)

// defaultTopK matches the skill-set merge caps used by the scoring
// engine downstream.
var defaultTopK = TopK{
	Languages:  10,
	Databases:  5,
	Platforms:  5,
	Frameworks: 5,
}

// Target identifies the population a profile should be compared to.
type Target struct {
	Country         string
	Role            string
	YearsExperience float64
}

// tier is one step of the relaxation ladder: a filter builder plus a
// human-readable label builder. Tiers are evaluated in order with an
// early exit once a tier meets the sample threshold, so they stay
// independently testable.
type tier struct {
	name  string
	build func(t Target) Filter
	label func(t Target) string
}

// ladder returns the ordered relaxation tiers, narrowest first.
func ladder() []tier {
	return []tier{
		{
			name: "strict",
			build: func(t Target) Filter {
				lo, hi := experienceBand(t.YearsExperience, strictExperienceBand)
				return Filter{Country: t.Country, Role: t.Role, MinExperience: lo, MaxExperience: hi}
			},
			label: func(t Target) string {
				lo, hi := experienceBand(t.YearsExperience, strictExperienceBand)
				return fmt.Sprintf("%s in %s, %g-%g yrs experience", t.Role, t.Country, lo, hi)
			},
		},
		{
			name: "wide_experience",
			build: func(t Target) Filter {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return Filter{Country: t.Country, Role: t.Role, MinExperience: lo, MaxExperience: hi}
			},
			label: func(t Target) string {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return fmt.Sprintf("%s in %s, %g-%g yrs experience (wide band)", t.Role, t.Country, lo, hi)
			},
		},
		{
			name: "global_role",
			build: func(t Target) Filter {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return Filter{Role: t.Role, MinExperience: lo, MaxExperience: hi}
			},
			label: func(t Target) string {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return fmt.Sprintf("%s worldwide, %g-%g yrs experience", t.Role, lo, hi)
			},
		},
		{
			name: "country_only",
			build: func(t Target) Filter {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return Filter{Country: t.Country, MinExperience: lo, MaxExperience: hi}
			},
			label: func(t Target) string {
				lo, hi := experienceBand(t.YearsExperience, wideExperienceBand)
				return fmt.Sprintf("all roles in %s, %g-%g yrs experience", t.Country, lo, hi)
			},
		},
	}
}

// experienceBand clamps the lower bound at zero; years of experience
// are non-negative in the population.
func experienceBand(years, halfWidth float64) (lo, hi float64) {
	lo = years - halfWidth
	if lo < 0 {
		lo = 0
	}
	return lo, years + halfWidth
}

// Resolution is a resolved cohort plus the tier that produced it.
type Resolution struct {
	Tier   string
	Cohort model.Cohort
}

// Resolver walks the relaxation ladder against a Source.
type Resolver struct {
	source    Source
	minSample int64
	topK      TopK
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithMinSampleSize overrides the minimum adequate cohort size.
func WithMinSampleSize(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.minSample = n
		}
	}
}

// WithTopK overrides the per-category frequency table caps.
func WithTopK(k TopK) Option {
	return func(r *Resolver) {
		if k.Languages > 0 && k.Databases > 0 && k.Platforms > 0 && k.Frameworks > 0 {
			r.topK = k
		}
	}
}

// NewResolver creates a Resolver with default configuration.
func NewResolver(source Source, opts ...Option) *Resolver {
	r := &Resolver{
		source:    source,
		minSample: DefaultMinSampleSize,
		topK:      defaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks the ladder until a tier meets the sample threshold.
// Tiers are issued strictly one at a time; each count query is a
// potentially slow round trip and a later tier is only worth asking
// for once the narrower one is known to be too small. The terminal
// tier is used even under threshold as long as it is non-empty;
// a zero count there yields ErrNoCohort.
func (r *Resolver) Resolve(ctx context.Context, t Target) (Resolution, error) {
	tiers := ladder()
	for i, step := range tiers {
		f := step.build(t)
		n, err := r.source.Count(ctx, f)
		if err != nil {
			return Resolution{}, fmt.Errorf("count tier %s: %w", step.name, err)
		}
		terminal := i == len(tiers)-1
		if n >= r.minSample || (terminal && n > 0) {
			return r.materialize(ctx, step, t, f, n)
		}
	}
	return Resolution{}, ErrNoCohort
}

func (r *Resolver) materialize(ctx context.Context, step tier, t Target, f Filter, n int64) (Resolution, error) {
	agg, err := r.source.Aggregate(ctx, f, r.topK)
	if err != nil {
		return Resolution{}, fmt.Errorf("aggregate tier %s: %w", step.name, err)
	}
	return Resolution{
		Tier: step.name,
		Cohort: model.Cohort{
			Label:      step.label(t),
			Size:       n,
			Salaries:   agg.Salaries,
			Languages:  agg.Languages,
			Databases:  agg.Databases,
			Platforms:  agg.Platforms,
			Frameworks: agg.Frameworks,
		},
	}, nil
}
