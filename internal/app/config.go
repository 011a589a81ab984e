package app

import (
	"errors"
	"fmt"

	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/space"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SweepPath string // declarative sweep file; overrides the positional form

	Command  string
	Strategy sampler.Strategy
	Count    int
	Space    *space.Space

	Workers    int
	Seed       int64
	Rate       float64
	OutputJSON bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. When a sweep file is given, the command and
// strategy fields are filled in later by the loader, so only the generic
// fields are checked here.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Rate < 0 {
		return nil, fmt.Errorf("rate must not be negative, got %v", cfg.Rate)
	}

	if cfg.SweepPath != "" {
		return &cfg, nil
	}

	if cfg.Command == "" {
		return nil, errors.New("a command is required and cannot be empty")
	}
	if cfg.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", cfg.Count)
	}
	if cfg.Space == nil {
		cfg.Space = space.New()
	}
	if cfg.Strategy != sampler.Repeat && cfg.Space.Len() == 0 {
		return nil, fmt.Errorf("strategy %q requires at least one templated parameter", cfg.Strategy)
	}

	return &cfg, nil
}
