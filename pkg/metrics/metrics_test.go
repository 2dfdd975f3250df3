package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording benchmarking metrics", func() {
			Convey("Then it should record generated reports", func() {
				So(func() {
					RecordReportGenerated()
					RecordReportGenerated()
				}, ShouldNotPanic)
			})

			Convey("And it should record cohort tiers", func() {
				So(func() {
					RecordCohortTier("strict")
					RecordCohortTier("wide_experience")
					RecordCohortTier("country_only")
				}, ShouldNotPanic)
			})

			Convey("And it should record unavailable cohorts", func() {
				So(func() {
					RecordCohortUnavailable()
				}, ShouldNotPanic)
			})

			Convey("And it should record scoring duration", func() {
				So(func() {
					RecordScoringDuration(50.0)
					RecordScoringDuration(120.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording plan metrics", func() {
			Convey("Then it should record generated plans", func() {
				So(func() {
					RecordPlanGenerated()
					RecordAdvisorFallback()
					RecordAdvisorDuration(800.0)
					RecordLegacyIDRepair()
				}, ShouldNotPanic)
			})

			Convey("And it should record recommendation updates", func() {
				So(func() {
					RecordRecommendationUpdate("completed")
					RecordRecommendationUpdate("dismissed")
					RecordRecommendationUpdate("active")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store metrics", func() {
			Convey("Then it should record query durations and errors", func() {
				So(func() {
					RecordStoreQueryDuration(5.0)
					RecordStoreError("reports.activate")
					RecordStoreError("plans.update_recommendation")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/api/v1/benchmark", "POST", "200")
					RecordHTTPRequest("/api/v1/career-plan/current", "GET", "404")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/api/v1/benchmark", "POST", "200", 150.0)
					RecordHTTPRequestDuration("/healthz", "GET", "200", 1.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					RecordScoringDuration(0.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using empty label values", func() {
				So(func() {
					RecordCohortTier("")
					RecordRecommendationUpdate("")
					RecordHTTPRequest("", "", "")
				}, ShouldNotPanic)
			})
		})

		Convey("When the registry is requested", func() {
			Convey("Then it should return the custom registry", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordReportGenerated()
						RecordCohortTier("strict")
						RecordScoringDuration(float64(j))
						RecordHTTPRequest("/test", "GET", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}
