package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation categories.
const (
	CategoryCompensation = "compensation"
	CategorySkills       = "skills"
	CategoryStrategic    = "strategic"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDismissed = "dismissed"
)

// Recommendation is one user-actionable item embedded in a career plan.
// ID must never be empty in a persisted plan; legacy items without one
// are repaired on read.
type Recommendation struct {
	ID             string     `bson:"id" json:"id"`
	Category       string     `bson:"category" json:"category"`
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description" json:"description"`
	ExpectedImpact string     `bson:"expected_impact" json:"expected_impact"`
	DataSource     string     `bson:"data_source" json:"data_source"`
	Priority       string     `bson:"priority_level" json:"priority_level"`
	Status         string     `bson:"status" json:"status"`
	UserNotes      string     `bson:"user_notes,omitempty" json:"user_notes,omitempty"`
	CreatedDate    time.Time  `bson:"created_date" json:"created_date"`
	CompletedDate  *time.Time `bson:"completed_date,omitempty" json:"completed_date,omitempty"`
	DismissedDate  *time.Time `bson:"dismissed_date,omitempty" json:"dismissed_date,omitempty"`
}

// CareerPlan is the persisted plan for one user. At most one plan per
// user carries IsActive=true. Recommendations keep their stored order.
type CareerPlan struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            string             `bson:"user_id" json:"user_id"`
	BenchmarkReportID string             `bson:"benchmark_report_id,omitempty" json:"benchmark_report_id,omitempty"`
	Summary           string             `bson:"summary" json:"summary"`
	LongTermGoal      string             `bson:"long_term_goal" json:"long_term_goal"`
	Recommendations   []Recommendation   `bson:"recommendations" json:"recommendations"`
	CompletionPercent int                `bson:"overall_completion_percentage" json:"overall_completion_percentage"`
	GeneratedAt       time.Time          `bson:"generated_at" json:"generated_at"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
}
