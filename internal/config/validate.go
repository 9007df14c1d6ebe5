package config

import (
	"fmt"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/errors"
)

// Validate checks the configuration for invalid values.
// It returns a wrapped sentinel error describing the first problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Debate.Rounds < constants.MinRounds || cfg.Debate.Rounds > constants.MaxRounds {
		return fmt.Errorf("%w: debate.rounds must be in [%d, %d], got %d",
			errors.ErrValueOutOfRange, constants.MinRounds, constants.MaxRounds, cfg.Debate.Rounds)
	}

	switch cfg.Debate.SynthesisEngine {
	case "", "claude", "gemini", "custom":
	default:
		return fmt.Errorf("%w: debate.synthesis_engine %q", errors.ErrInvalidEngine, cfg.Debate.SynthesisEngine)
	}

	if cfg.Backends.Claude.Timeout < 0 {
		return fmt.Errorf("%w: backends.claude.timeout must not be negative", errors.ErrValueOutOfRange)
	}
	if cfg.Backends.Gemini.Timeout < 0 {
		return fmt.Errorf("%w: backends.gemini.timeout must not be negative", errors.ErrValueOutOfRange)
	}
	if cfg.Backends.Custom.Timeout < 0 {
		return fmt.Errorf("%w: backends.custom.timeout must not be negative", errors.ErrValueOutOfRange)
	}

	return nil
}
