package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/careeriq/internal/adapters/repository"
	"github.com/okian/careeriq/internal/domain/cohort"
	"github.com/okian/careeriq/internal/domain/model"
)

func TestMemorySurveySource(t *testing.T) {
	Convey("Given survey records from mixed cohorts", t, func() {
		ctx := context.Background()
		records := []model.SurveyRecord{
			{Country: "Germany", Role: "Backend Developer", YearsExperience: 5, Salary: 70000, Languages: []string{"Go", "Python"}},
			{Country: "Germany", Role: "Backend Developer", YearsExperience: 6, Salary: 80000, Languages: []string{"Go"}},
			{Country: "Germany", Role: "Backend Developer", YearsExperience: 5, Salary: 0, Languages: []string{"Rust"}},
			{Country: "Germany", Role: "Data Scientist", YearsExperience: 5, Salary: 90000, Languages: []string{"Python"}},
			{Country: "France", Role: "Backend Developer", YearsExperience: 5, Salary: 60000, Languages: []string{"Go"}},
			{Country: "Germany", Role: "Backend Developer", YearsExperience: 12, Salary: 95000, Languages: []string{"Java"}},
		}
		src := repository.NewMemorySurveySource(records)

		Convey("When counting with a full filter", func() {
			n, err := src.Count(ctx, cohort.Filter{
				Country:       "Germany",
				Role:          "Backend Developer",
				MinExperience: 3,
				MaxExperience: 7,
			})

			Convey("Then zero-salary, off-country, off-role and off-band rows are excluded", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})

		Convey("When the role filter is empty", func() {
			n, err := src.Count(ctx, cohort.Filter{
				Country:       "Germany",
				MinExperience: 3,
				MaxExperience: 7,
			})

			Convey("Then every role in the country band matches", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
			})
		})

		Convey("When aggregating the strict cohort", func() {
			agg, err := src.Aggregate(ctx, cohort.Filter{
				Country:       "Germany",
				Role:          "Backend Developer",
				MinExperience: 3,
				MaxExperience: 7,
			}, cohort.TopK{Languages: 10})

			Convey("Then salaries come back ascending", func() {
				So(err, ShouldBeNil)
				So(agg.Salaries, ShouldResemble, []float64{70000, 80000})
			})

			Convey("Then frequency tables are count-descending", func() {
				So(len(agg.Languages), ShouldEqual, 2)
				So(agg.Languages[0].Name, ShouldEqual, "Go")
				So(agg.Languages[0].Count, ShouldEqual, 2)
				So(agg.Languages[1].Name, ShouldEqual, "Python")
			})
		})

		Convey("When skills tie on count", func() {
			tied := repository.NewMemorySurveySource([]model.SurveyRecord{
				{Country: "Germany", Role: "Backend Developer", YearsExperience: 5, Salary: 70000, Languages: []string{"Zig", "Ada"}},
			})
			agg, err := tied.Aggregate(ctx, cohort.Filter{
				Country:       "Germany",
				Role:          "Backend Developer",
				MaxExperience: 10,
			}, cohort.TopK{Languages: 1})

			Convey("Then the name breaks the tie and k truncates", func() {
				So(err, ShouldBeNil)
				So(len(agg.Languages), ShouldEqual, 1)
				So(agg.Languages[0].Name, ShouldEqual, "Ada")
			})
		})
	})
}

func TestMemoryReportStore(t *testing.T) {
	Convey("Given an empty report store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryReportStore()

		Convey("When no report exists", func() {
			_, err := store.Current(ctx, "u1")

			Convey("Then lookup fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When activating reports repeatedly", func() {
			first, err := store.Activate(ctx, model.BenchmarkReport{UserID: "u1", CompensationPercentile: 40})
			So(err, ShouldBeNil)
			second, err := store.Activate(ctx, model.BenchmarkReport{UserID: "u1", CompensationPercentile: 55})
			So(err, ShouldBeNil)

			Convey("Then exactly one report is current and it is the newest", func() {
				current, err := store.Current(ctx, "u1")
				So(err, ShouldBeNil)
				So(current.ID, ShouldResemble, second.ID)
				So(current.CompensationPercentile, ShouldEqual, 55)

				all := store.All("u1")
				So(len(all), ShouldEqual, 2)
				currents := 0
				for _, r := range all {
					if r.IsCurrent {
						currents++
					}
				}
				So(currents, ShouldEqual, 1)
				So(first.ID, ShouldNotResemble, second.ID)
			})
		})

		Convey("When two users have reports", func() {
			_, err := store.Activate(ctx, model.BenchmarkReport{UserID: "u1"})
			So(err, ShouldBeNil)
			_, err = store.Activate(ctx, model.BenchmarkReport{UserID: "u2"})
			So(err, ShouldBeNil)

			Convey("Then activation does not archive the other user", func() {
				current, err := store.Current(ctx, "u1")
				So(err, ShouldBeNil)
				So(current.IsCurrent, ShouldBeTrue)
			})
		})
	})
}

func TestMemoryPlanStore(t *testing.T) {
	Convey("Given a plan store with an active plan", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryPlanStore()
		active, err := store.Activate(ctx, model.CareerPlan{
			UserID: "u1",
			Recommendations: []model.Recommendation{
				{ID: "r1", Title: "First", Status: model.StatusActive},
				{ID: "r2", Title: "Second", Status: model.StatusActive},
			},
		})
		So(err, ShouldBeNil)

		Convey("When activating a replacement plan", func() {
			next, err := store.Activate(ctx, model.CareerPlan{UserID: "u1"})
			So(err, ShouldBeNil)

			Convey("Then the old plan is archived", func() {
				got, err := store.Active(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.ID, ShouldResemble, next.ID)
			})
		})

		Convey("When updating one recommendation", func() {
			rec := active.Recommendations[0]
			rec.Status = model.StatusCompleted
			err := store.UpdateRecommendation(ctx, active.ID, rec, 50)

			Convey("Then the embedded entry and completion change", func() {
				So(err, ShouldBeNil)
				got, err := store.Active(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.Recommendations[0].Status, ShouldEqual, model.StatusCompleted)
				So(got.Recommendations[1].Status, ShouldEqual, model.StatusActive)
				So(got.CompletionPercent, ShouldEqual, 50)
			})
		})

		Convey("When updating a recommendation that does not exist", func() {
			err := store.UpdateRecommendation(ctx, active.ID, model.Recommendation{ID: "ghost"}, 0)

			Convey("Then it fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When replacing the whole recommendation list", func() {
			recs := []model.Recommendation{{ID: "r9", Status: model.StatusCompleted}}
			err := store.SetRecommendations(ctx, active.ID, recs, 100)

			Convey("Then the list and completion are replaced", func() {
				So(err, ShouldBeNil)
				got, err := store.Active(ctx, "u1")
				So(err, ShouldBeNil)
				So(len(got.Recommendations), ShouldEqual, 1)
				So(got.Recommendations[0].ID, ShouldEqual, "r9")
				So(got.CompletionPercent, ShouldEqual, 100)
			})
		})

		Convey("When mutating a returned plan", func() {
			got, err := store.Active(ctx, "u1")
			So(err, ShouldBeNil)
			got.Recommendations[0].Title = "tampered"

			Convey("Then the stored copy is unaffected", func() {
				again, err := store.Active(ctx, "u1")
				So(err, ShouldBeNil)
				So(again.Recommendations[0].Title, ShouldEqual, "First")
			})
		})
	})
}

func TestMemoryProfileStore(t *testing.T) {
	Convey("Given an empty profile store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryProfileStore()

		Convey("When the profile is missing", func() {
			_, err := store.Get(ctx, "u1")

			Convey("Then lookup fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When upserting twice", func() {
			first, err := store.Upsert(ctx, model.Profile{UserID: "u1", CurrentTitle: "Backend Developer"})
			So(err, ShouldBeNil)
			second, err := store.Upsert(ctx, model.Profile{ID: first.ID, UserID: "u1", CurrentTitle: "Staff Engineer"})
			So(err, ShouldBeNil)

			Convey("Then the second write replaces the first under the same id", func() {
				So(second.ID, ShouldResemble, first.ID)
				got, err := store.Get(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.CurrentTitle, ShouldEqual, "Staff Engineer")
			})
		})
	})
}
