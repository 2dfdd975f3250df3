package model

import "time"

// Dashboard summarizes a user's standing across profile, report and
// plan. Absent documents zero their section instead of failing.
type Dashboard struct {
	HasProfile               bool       `json:"has_profile"`
	HasReport                bool       `json:"has_report"`
	CompensationQuartile     int        `json:"compensation_quartile"`
	MarketComparison         string     `json:"market_salary_comparison,omitempty"`
	CohortLabel              string     `json:"cohort_label,omitempty"`
	ReportGeneratedAt        *time.Time `json:"report_generated_at,omitempty"`
	HasPlan                  bool       `json:"has_plan"`
	PlanCompletion           int        `json:"plan_completion_percentage"`
	CompletedRecommendations int        `json:"completed_recommendations"`
	TotalRecommendations     int        `json:"total_recommendations"`
	NextMilestone            string     `json:"next_milestone,omitempty"`
}
