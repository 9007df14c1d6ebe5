// Package config provides configuration management for Rebuttal with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (REBUTTAL_* prefix)
//  3. Global config (~/.rebuttal/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/rebuttal/internal/constants"
)

// Config is the root configuration structure for Rebuttal.
type Config struct {
	// Debate contains settings for debate orchestration.
	Debate DebateConfig `yaml:"debate" mapstructure:"debate"`

	// Backends contains per-engine backend settings.
	Backends BackendsConfig `yaml:"backends" mapstructure:"backends"`
}

// DebateConfig contains settings for the round scheduler and synthesis stage.
type DebateConfig struct {
	// Rounds is the default number of rounds when the flag is not given.
	// Valid range: 2-50.
	Rounds int `yaml:"rounds" mapstructure:"rounds"`

	// Strict promotes any failed or empty backend invocation to a fatal
	// error instead of degrading to filler text.
	// Default: false
	Strict bool `yaml:"strict" mapstructure:"strict"`

	// SynthesisEngine optionally names a distinct engine for the final
	// synthesis call ("claude", "gemini", "custom"). Empty means the
	// Critic's fixed engine is used.
	SynthesisEngine string `yaml:"synthesis_engine" mapstructure:"synthesis_engine"`
}

// BackendsConfig groups the per-engine settings.
type BackendsConfig struct {
	// Claude configures the primary high-effort backend.
	Claude BackendConfig `yaml:"claude" mapstructure:"claude"`

	// Gemini configures the secondary conversational backend.
	Gemini BackendConfig `yaml:"gemini" mapstructure:"gemini"`

	// Custom configures a user-provided command line. When Command is
	// non-empty the custom engine takes top priority for the Creator.
	Custom CustomBackendConfig `yaml:"custom" mapstructure:"custom"`
}

// BackendConfig contains settings for a stock backend CLI.
type BackendConfig struct {
	// Model specifies the model flag passed to the CLI, if any.
	Model string `yaml:"model" mapstructure:"model"`

	// Timeout is the maximum duration for one invocation.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CustomBackendConfig contains settings for a user-configured command.
type CustomBackendConfig struct {
	// Command is the command line to run. The prompt is passed on stdin.
	// Empty disables the custom engine.
	Command string `yaml:"command" mapstructure:"command"`

	// Timeout is the maximum duration for one invocation.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() *Config {
	return &Config{
		Debate: DebateConfig{
			Rounds: constants.DefaultRounds,
		},
		Backends: BackendsConfig{
			Claude: BackendConfig{Timeout: constants.DefaultClaudeTimeout},
			Gemini: BackendConfig{Timeout: constants.DefaultGeminiTimeout},
			Custom: CustomBackendConfig{Timeout: constants.DefaultCustomTimeout},
		},
	}
}
