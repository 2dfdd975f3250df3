// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MongoURI is the collection-store connection string.
	MongoURI string `koanf:"mongo_uri"`

	// DBName selects the database inside the deployment.
	DBName string `koanf:"db_name"`

	// MinCohortSize is the minimum statistically adequate cohort.
	MinCohortSize int64 `koanf:"min_cohort_size"`

	// TechnicalWeight and SoftWeight blend the overall skill score.
	TechnicalWeight float64 `koanf:"technical_weight"`
	SoftWeight      float64 `koanf:"soft_weight"`

	// SoftSkillDefault is the neutral soft-skill score used while the
	// survey carries no soft-skill data.
	SoftSkillDefault int `koanf:"soft_skill_default"`

	// GeminiAPIKey enables the AI advice provider; empty means the
	// fallback template plan is always used.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the generation model.
	GeminiModel string `koanf:"gemini_model"`

	// IssuerURL is the token issuer base URL, e.g. a Clerk frontend
	// API origin. Empty disables request authentication (local dev).
	IssuerURL string `koanf:"issuer_url"`

	// Audience optionally pins the aud claim.
	Audience string `koanf:"audience"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		MongoURI:         "mongodb://localhost:27017",
		DBName:           "careeriq",
		MinCohortSize:    10,
		TechnicalWeight:  0.7,
		SoftWeight:       0.3,
		SoftSkillDefault: 70,
		GeminiModel:      "gemini-2.5-flash",
	}
}
