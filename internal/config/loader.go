package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if CAREERIQ_CONFIG is set
//  3. env (prefix CAREERIQ_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("CAREERIQ_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CAREERIQ_ADDR, CAREERIQ_MONGO_URI, ...
	// Map env keys like CAREERIQ_MIN_COHORT_SIZE -> min_cohort_size
	// (flat keys; underscores preserved to match koanf tags).
	envProvider := env.Provider("CAREERIQ_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "careeriq_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.MongoURI == "":
		return fmt.Errorf("%w: mongo_uri must not be empty", ErrInvalidConfig)
	case cfg.DBName == "":
		return fmt.Errorf("%w: db_name must not be empty", ErrInvalidConfig)
	case cfg.MinCohortSize <= 0:
		return fmt.Errorf("%w: min_cohort_size must be positive", ErrInvalidConfig)
	case cfg.TechnicalWeight < 0 || cfg.SoftWeight < 0 || cfg.TechnicalWeight+cfg.SoftWeight <= 0:
		return fmt.Errorf("%w: skill weights must be non-negative with a positive sum", ErrInvalidConfig)
	case cfg.SoftSkillDefault < 0 || cfg.SoftSkillDefault > 100:
		return fmt.Errorf("%w: soft_skill_default must be within 0-100", ErrInvalidConfig)
	}
	return nil
}
