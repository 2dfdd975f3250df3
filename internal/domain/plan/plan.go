// Package plan owns the mutable recommendation list attached to a
// career plan: status transitions, timestamping and completion
// accounting.
package plan

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okian/careeriq/internal/domain/model"
)

// Defaults substituted for malformed or missing advice fields.
const (
	DefaultTitle      = "Untitled Recommendation"
	DefaultDataSource = "AI Advisor"
)

// Transition applies a status change to a recommendation in place.
//
// Allowed states: active, completed, dismissed. Re-applying the
// current status is a no-op so timestamps stay meaningful. A move to
// active is a reactivation and clears both stamps, even from
// dismissed. At most one of the two stamps is set at any time.
func Transition(rec *model.Recommendation, status string, now time.Time) error {
	switch status {
	case model.StatusActive, model.StatusCompleted, model.StatusDismissed:
	default:
		return ErrInvalidStatus
	}

	if rec.Status == status {
		return nil
	}

	rec.Status = status
	switch status {
	case model.StatusCompleted:
		t := now.UTC()
		rec.CompletedDate = &t
		rec.DismissedDate = nil
	case model.StatusDismissed:
		t := now.UTC()
		rec.DismissedDate = &t
		rec.CompletedDate = nil
	case model.StatusActive:
		rec.CompletedDate = nil
		rec.DismissedDate = nil
	}
	return nil
}

// CompletionPercent is round(100 * completed / non-dismissed).
// Dismissed recommendations count neither as completed nor in the
// denominator. A zero denominator yields 0.
func CompletionPercent(recs []model.Recommendation) int {
	completed, total := Counts(recs)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Counts returns the completed and non-dismissed totals.
func Counts(recs []model.Recommendation) (completed, total int) {
	for _, r := range recs {
		if r.Status == model.StatusDismissed {
			continue
		}
		total++
		if r.Status == model.StatusCompleted {
			completed++
		}
	}
	return completed, total
}

// NextMilestone is the title of the first recommendation in stored
// order still in the active state.
func NextMilestone(recs []model.Recommendation) (string, bool) {
	for _, r := range recs {
		if r.Status == model.StatusActive {
			return r.Title, true
		}
	}
	return "", false
}

// EnsureIDs assigns identifiers to recommendations that lack one, a
// legacy data-quality repair. Reports whether anything changed; the
// caller must persist the repaired list before returning it.
func EnsureIDs(recs []model.Recommendation) bool {
	changed := false
	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}

// Draft is one advice-provider recommendation before validation.
type Draft struct {
	Category       string
	Title          string
	Description    string
	ExpectedImpact string
	DataSource     string
	Priority       string
}

// FromDrafts validates advice drafts into recommendations,
// substituting documented defaults for out-of-range fields. Every
// resulting recommendation starts active with a fresh identifier.
func FromDrafts(drafts []Draft, now time.Time) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(drafts))
	for _, d := range drafts {
		rec := model.Recommendation{
			ID:             uuid.NewString(),
			Category:       d.Category,
			Title:          d.Title,
			Description:    d.Description,
			ExpectedImpact: d.ExpectedImpact,
			DataSource:     d.DataSource,
			Priority:       d.Priority,
			Status:         model.StatusActive,
			CreatedDate:    now.UTC(),
		}
		switch rec.Category {
		case model.CategoryCompensation, model.CategorySkills, model.CategoryStrategic:
		default:
			rec.Category = model.CategoryStrategic
		}
		switch rec.Priority {
		case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		default:
			rec.Priority = model.PriorityMedium
		}
		if rec.Title == "" {
			rec.Title = DefaultTitle
		}
		if rec.DataSource == "" {
			rec.DataSource = DefaultDataSource
		}
		recs = append(recs, rec)
	}
	return recs
}
