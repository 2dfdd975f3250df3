package advisor

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/careeriq/internal/domain/model"
)

func TestFallback(t *testing.T) {
	Convey("Given the advice provider is unavailable", t, func() {
		Convey("When the fallback plan is requested", func() {
			advice := Fallback()

			Convey("Then the template carries a summary and goal", func() {
				So(advice.Summary, ShouldContainSubstring, "unavailable")
				So(advice.LongTermGoal, ShouldNotBeEmpty)
			})

			Convey("Then both template recommendations are well formed", func() {
				So(len(advice.Recommendations), ShouldEqual, 2)
				So(advice.Recommendations[0].Title, ShouldEqual, "Update Resume & LinkedIn")
				So(advice.Recommendations[0].Category, ShouldEqual, model.CategoryStrategic)
				So(advice.Recommendations[0].Priority, ShouldEqual, model.PriorityHigh)
				So(advice.Recommendations[1].Title, ShouldEqual, "Assess Technical Skills")
				So(advice.Recommendations[1].Category, ShouldEqual, model.CategorySkills)
				So(advice.Recommendations[1].Priority, ShouldEqual, model.PriorityMedium)
				for _, rec := range advice.Recommendations {
					So(rec.Description, ShouldNotBeEmpty)
					So(rec.ExpectedImpact, ShouldNotBeEmpty)
					So(rec.DataSource, ShouldNotBeEmpty)
				}
			})
		})
	})
}

func TestStripFences(t *testing.T) {
	Convey("Given model replies with assorted fencing", t, func() {
		Convey("When the reply is wrapped in a json fence", func() {
			out := stripFences("```json\n{\"summary\":\"ok\"}\n```")

			Convey("Then only the payload remains", func() {
				So(out, ShouldEqual, `{"summary":"ok"}`)
			})
		})

		Convey("When the reply uses a bare fence", func() {
			So(stripFences("```\n{}\n```"), ShouldEqual, "{}")
		})

		Convey("When there is no fence", func() {
			So(stripFences(`  {"a":1}  `), ShouldEqual, `{"a":1}`)
		})
	})
}

func TestBuildPrompt(t *testing.T) {
	Convey("Given a profile and its benchmark report", t, func() {
		profile := model.Profile{
			CurrentTitle:    "Backend Developer",
			Country:         "Germany",
			YearsExperience: 5,
			Salary:          72000,
			TechnicalSkills: []string{"Go", "PostgreSQL"},
		}
		report := model.BenchmarkReport{
			CohortLabel:            "Backend Developer in Germany, 3-7 yrs experience",
			CohortSize:             240,
			CompensationPercentile: 42,
			MarketComparison:       "Competitive",
			MissingCriticalSkills:  []string{"Kubernetes"},
		}

		Convey("When the prompt is built", func() {
			prompt := buildPrompt(profile, report)

			Convey("Then the user and market context are embedded", func() {
				So(prompt, ShouldContainSubstring, "Backend Developer")
				So(prompt, ShouldContainSubstring, "Germany")
				So(prompt, ShouldContainSubstring, "Go, PostgreSQL")
				So(prompt, ShouldContainSubstring, "240 comparable profiles")
				So(prompt, ShouldContainSubstring, "Kubernetes")
			})

			Convey("Then the contract demands bare JSON output", func() {
				So(prompt, ShouldContainSubstring, "Return ONLY valid JSON")
				So(strings.Count(prompt, "recommendations"), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})
	})
}

func TestCollectText(t *testing.T) {
	Convey("Given Gemini responses of varying shape", t, func() {
		Convey("When the response is nil", func() {
			So(collectText(nil), ShouldBeEmpty)
		})
	})
}
