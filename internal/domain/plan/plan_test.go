package plan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/internal/domain/plan"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTransition(t *testing.T) {
	Convey("Given an active recommendation", t, func() {
		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		rec := model.Recommendation{ID: "rec-1", Status: model.StatusActive}

		Convey("When completing it", func() {
			err := plan.Transition(&rec, model.StatusCompleted, now)

			Convey("Then the completed stamp is set and dismissed is clear", func() {
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.StatusCompleted)
				So(rec.CompletedDate, ShouldNotBeNil)
				So(rec.CompletedDate.Equal(now), ShouldBeTrue)
				So(rec.DismissedDate, ShouldBeNil)
			})
		})

		Convey("When dismissing it", func() {
			err := plan.Transition(&rec, model.StatusDismissed, now)

			Convey("Then the dismissed stamp is set and completed is clear", func() {
				So(err, ShouldBeNil)
				So(rec.DismissedDate, ShouldNotBeNil)
				So(rec.CompletedDate, ShouldBeNil)
			})
		})

		Convey("When re-applying the current status", func() {
			later := now.Add(time.Hour)
			So(plan.Transition(&rec, model.StatusCompleted, now), ShouldBeNil)
			first := *rec.CompletedDate
			So(plan.Transition(&rec, model.StatusCompleted, later), ShouldBeNil)

			Convey("Then the stamp is not refreshed", func() {
				So(rec.CompletedDate.Equal(first), ShouldBeTrue)
			})
		})

		Convey("When reactivating from completed", func() {
			So(plan.Transition(&rec, model.StatusCompleted, now), ShouldBeNil)
			So(plan.Transition(&rec, model.StatusActive, now.Add(time.Hour)), ShouldBeNil)

			Convey("Then both stamps are cleared", func() {
				So(rec.Status, ShouldEqual, model.StatusActive)
				So(rec.CompletedDate, ShouldBeNil)
				So(rec.DismissedDate, ShouldBeNil)
			})
		})

		Convey("When reactivating from dismissed", func() {
			So(plan.Transition(&rec, model.StatusDismissed, now), ShouldBeNil)
			So(plan.Transition(&rec, model.StatusActive, now.Add(time.Hour)), ShouldBeNil)

			Convey("Then both stamps are cleared", func() {
				So(rec.CompletedDate, ShouldBeNil)
				So(rec.DismissedDate, ShouldBeNil)
			})
		})

		Convey("When flipping completed to dismissed", func() {
			So(plan.Transition(&rec, model.StatusCompleted, now), ShouldBeNil)
			So(plan.Transition(&rec, model.StatusDismissed, now.Add(time.Hour)), ShouldBeNil)

			Convey("Then at most one stamp is set", func() {
				So(rec.CompletedDate, ShouldBeNil)
				So(rec.DismissedDate, ShouldNotBeNil)
			})
		})

		Convey("When an unknown status is applied", func() {
			err := plan.Transition(&rec, "archived", now)

			Convey("Then it fails with ErrInvalidStatus and nothing changes", func() {
				So(errors.Is(err, plan.ErrInvalidStatus), ShouldBeTrue)
				So(rec.Status, ShouldEqual, model.StatusActive)
			})
		})
	})
}

func TestCompletionPercent(t *testing.T) {
	Convey("Given recommendation lists in various states", t, func() {
		rec := func(status string) model.Recommendation {
			return model.Recommendation{Status: status}
		}

		Convey("When 2 are completed, 1 active and 1 dismissed", func() {
			recs := []model.Recommendation{
				rec(model.StatusCompleted),
				rec(model.StatusCompleted),
				rec(model.StatusActive),
				rec(model.StatusDismissed),
			}

			Convey("Then completion is round(100*2/3) = 67", func() {
				So(plan.CompletionPercent(recs), ShouldEqual, 67)
			})

			Convey("And the counts exclude the dismissed entry", func() {
				completed, total := plan.Counts(recs)
				So(completed, ShouldEqual, 2)
				So(total, ShouldEqual, 3)
			})
		})

		Convey("When every recommendation is dismissed", func() {
			recs := []model.Recommendation{rec(model.StatusDismissed), rec(model.StatusDismissed)}

			Convey("Then completion is 0, not a division error", func() {
				So(plan.CompletionPercent(recs), ShouldEqual, 0)
			})
		})

		Convey("When the list is empty", func() {
			So(plan.CompletionPercent(nil), ShouldEqual, 0)
		})

		Convey("When everything is completed", func() {
			recs := []model.Recommendation{rec(model.StatusCompleted), rec(model.StatusCompleted)}
			So(plan.CompletionPercent(recs), ShouldEqual, 100)
		})
	})
}

func TestNextMilestone(t *testing.T) {
	Convey("Given an ordered recommendation list", t, func() {
		recs := []model.Recommendation{
			{Title: "First", Status: model.StatusCompleted},
			{Title: "Second", Status: model.StatusActive},
			{Title: "Third", Status: model.StatusActive},
		}

		Convey("When asking for the next milestone", func() {
			title, ok := plan.NextMilestone(recs)

			Convey("Then the first active entry in stored order wins", func() {
				So(ok, ShouldBeTrue)
				So(title, ShouldEqual, "Second")
			})
		})

		Convey("When no recommendation is active", func() {
			_, ok := plan.NextMilestone([]model.Recommendation{
				{Title: "Done", Status: model.StatusCompleted},
			})

			Convey("Then there is no milestone", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestEnsureIDs(t *testing.T) {
	Convey("Given recommendations with and without identifiers", t, func() {
		recs := []model.Recommendation{
			{ID: "keep-me"},
			{ID: ""},
			{ID: ""},
		}

		Convey("When repairing the list", func() {
			changed := plan.EnsureIDs(recs)

			Convey("Then only empty ids are assigned", func() {
				So(changed, ShouldBeTrue)
				So(recs[0].ID, ShouldEqual, "keep-me")
				So(recs[1].ID, ShouldNotBeEmpty)
				So(recs[2].ID, ShouldNotBeEmpty)
				So(recs[1].ID, ShouldNotEqual, recs[2].ID)
			})
		})

		Convey("When every id is already set", func() {
			complete := []model.Recommendation{{ID: "a"}, {ID: "b"}}

			Convey("Then nothing changes", func() {
				So(plan.EnsureIDs(complete), ShouldBeFalse)
			})
		})
	})
}

func TestFromDrafts(t *testing.T) {
	Convey("Given advice drafts from the provider", t, func() {
		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		Convey("When the drafts are well formed", func() {
			recs := plan.FromDrafts([]plan.Draft{
				{
					Category:       model.CategorySkills,
					Title:          "Learn Kubernetes",
					Description:    "Container orchestration shows up in most postings.",
					ExpectedImpact: "Broader role eligibility",
					DataSource:     "Market Analysis",
					Priority:       model.PriorityHigh,
				},
			}, now)

			Convey("Then fields carry through and the item starts active", func() {
				So(len(recs), ShouldEqual, 1)
				So(recs[0].ID, ShouldNotBeEmpty)
				So(recs[0].Category, ShouldEqual, model.CategorySkills)
				So(recs[0].Priority, ShouldEqual, model.PriorityHigh)
				So(recs[0].Status, ShouldEqual, model.StatusActive)
				So(recs[0].CreatedDate.Equal(now), ShouldBeTrue)
			})
		})

		Convey("When fields are malformed or missing", func() {
			recs := plan.FromDrafts([]plan.Draft{
				{Category: "networking", Priority: "urgent"},
			}, now)

			Convey("Then documented defaults are substituted", func() {
				So(recs[0].Category, ShouldEqual, model.CategoryStrategic)
				So(recs[0].Priority, ShouldEqual, model.PriorityMedium)
				So(recs[0].Title, ShouldEqual, plan.DefaultTitle)
				So(recs[0].DataSource, ShouldEqual, plan.DefaultDataSource)
			})
		})

		Convey("When there are no drafts", func() {
			So(plan.FromDrafts(nil, now), ShouldBeEmpty)
		})
	})
}
