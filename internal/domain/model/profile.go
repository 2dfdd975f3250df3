// Package model contains domain documents passed between layers and
// persisted in the collection store.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CareerEntry is a single position in a user's career history.
type CareerEntry struct {
	Title       string `bson:"title" json:"title"`
	Company     string `bson:"company" json:"company"`
	StartDate   string `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Profile is the self-reported professional profile, one per user.
type Profile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string             `bson:"user_id" json:"user_id"`
	GraduationYear  int                `bson:"graduation_year" json:"graduation_year"`
	FieldOfStudy    string             `bson:"field_of_study" json:"field_of_study"`
	CurrentCompany  string             `bson:"current_company" json:"current_company"`
	CurrentTitle    string             `bson:"current_title" json:"current_title"`
	Country         string             `bson:"country" json:"country"`
	YearsExperience float64            `bson:"years_experience" json:"years_experience"`
	TechnicalSkills []string           `bson:"technical_skills" json:"technical_skills"`
	SoftSkills      []string           `bson:"soft_skills" json:"soft_skills"`
	Salary          float64            `bson:"salary_package" json:"salary_package"`
	CareerHistory   []CareerEntry      `bson:"career_progression" json:"career_progression"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// SurveyRecord is one ingested survey response in the market_benchmarks
// collection. Immutable at serving time.
type SurveyRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Country         string             `bson:"country" json:"country"`
	Role            string             `bson:"dev_role" json:"dev_role"`
	YearsExperience float64            `bson:"years_experience" json:"years_experience"`
	Salary          float64            `bson:"salary" json:"salary"`
	Languages       []string           `bson:"languages" json:"languages"`
	Databases       []string           `bson:"databases" json:"databases"`
	Platforms       []string           `bson:"platforms" json:"platforms"`
	Frameworks      []string           `bson:"frameworks" json:"frameworks"`
	SourceYear      int                `bson:"source_year" json:"source_year"`
}
