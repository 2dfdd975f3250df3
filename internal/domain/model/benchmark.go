package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillCount is one row of a cohort skill frequency table.
type SkillCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Cohort is the comparison population selected for a profile. It is
// recomputed per request and never persisted. Salaries are sorted
// ascending.
type Cohort struct {
	Label      string       `json:"label"`
	Size       int64        `json:"size"`
	Salaries   []float64    `json:"-"`
	Languages  []SkillCount `json:"languages"`
	Databases  []SkillCount `json:"databases"`
	Platforms  []SkillCount `json:"platforms"`
	Frameworks []SkillCount `json:"frameworks"`
}

// SkillScores holds the per-category skill match scores, each 0-100.
type SkillScores struct {
	Overall   int `bson:"overall" json:"overall"`
	Technical int `bson:"technical" json:"technical"`
	Soft      int `bson:"soft" json:"soft"`
}

// Insights carries the narrative-ready summary lines of a report.
type Insights struct {
	Overall      string `bson:"overall" json:"overall"`
	Compensation string `bson:"compensation" json:"compensation"`
	Progression  string `bson:"progression" json:"progression"`
	Skills       string `bson:"skills" json:"skills"`
}

// BenchmarkReport is the persisted outcome of one benchmarking request.
// At most one report per user carries IsCurrent=true.
type BenchmarkReport struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID                 string             `bson:"user_id" json:"user_id"`
	CompensationPercentile int                `bson:"compensation_percentile" json:"compensation_percentile"`
	CompensationQuartile   int                `bson:"compensation_quartile" json:"compensation_quartile"`
	SkillScores            SkillScores        `bson:"skill_relevance_scores" json:"skill_relevance_scores"`
	CareerProgressionScore int                `bson:"career_progression_score" json:"career_progression_score"`
	PositionLevelScore     int                `bson:"position_level_score" json:"position_level_score"`
	MissingCriticalSkills  []string           `bson:"missing_critical_skills" json:"missing_critical_skills"`
	MarketComparison       string             `bson:"market_salary_comparison" json:"market_salary_comparison"`
	CohortLabel            string             `bson:"cohort_label" json:"cohort_label"`
	CohortSize             int64              `bson:"comparable_profiles_count" json:"comparable_profiles_count"`
	DataSources            []string           `bson:"data_sources_used" json:"data_sources_used"`
	Insights               Insights           `bson:"insights" json:"insights"`
	GeneratedAt            time.Time          `bson:"generated_at" json:"generated_at"`
	IsCurrent              bool               `bson:"is_current" json:"is_current"`
}
