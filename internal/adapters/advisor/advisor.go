// Package advisor turns a profile and benchmark summary into a
// structured career advice draft via an external provider.
package advisor

import (
	"context"

	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/internal/domain/plan"
)

// Advice is the structured output of the advice provider. Field
// validation beyond coarse structure is the caller's concern.
type Advice struct {
	Summary         string
	LongTermGoal    string
	Recommendations []plan.Draft
}

// Provider generates career advice. Implementations may fail for any
// reason; callers recover by substituting the fallback plan.
type Provider interface {
	Advise(ctx context.Context, profile model.Profile, report model.BenchmarkReport) (Advice, error)
}
