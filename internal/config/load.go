package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/errors"
)

// newViperInstance creates a new Viper instance with standard Rebuttal configuration.
// This includes environment variable prefix (REBUTTAL_), key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("REBUTTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are expected and skipped silently; only actual
// configuration problems return an error.
//
// For CLI flag overrides, use LoadWithOverrides instead.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("debate.rounds", cfg.Debate.Rounds).
		Dur("backends.claude.timeout", cfg.Backends.Claude.Timeout).
		Dur("backends.gemini.timeout", cfg.Backends.Gemini.Timeout).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied, allowing partial overrides.
//
// IMPORTANT: Boolean fields (Strict) cannot be overridden to false here
// because Go's zero value for bool is false. CLI implementations handle
// boolean flags separately via cmd.Flags().Changed().
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path for testing.
func LoadFromPath(_ context.Context, path string) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config: %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file (~/.rebuttal/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := globalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// globalConfigPathIfExists returns the global config path if it exists.
func globalConfigPathIfExists() (string, bool) {
	homeDir, err := HomeDir()
	if err != nil {
		return "", false
	}

	path := filepath.Join(homeDir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// HomeDir returns the Rebuttal home directory path.
// If the REBUTTAL_HOME environment variable is set, it uses that.
// Otherwise, it defaults to ~/.rebuttal.
func HomeDir() (string, error) {
	if home := os.Getenv(constants.RebuttalHomeEnv); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, constants.RebuttalHome), nil
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("debate.rounds", constants.DefaultRounds)
	v.SetDefault("debate.strict", false)
	v.SetDefault("debate.synthesis_engine", "")

	v.SetDefault("backends.claude.model", "")
	v.SetDefault("backends.claude.timeout", constants.DefaultClaudeTimeout.String())
	v.SetDefault("backends.gemini.model", "")
	v.SetDefault("backends.gemini.timeout", constants.DefaultGeminiTimeout.String())
	v.SetDefault("backends.custom.command", "")
	v.SetDefault("backends.custom.timeout", constants.DefaultCustomTimeout.String())
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Debate.Rounds != 0 {
		cfg.Debate.Rounds = overrides.Debate.Rounds
	}
	if overrides.Debate.SynthesisEngine != "" {
		cfg.Debate.SynthesisEngine = overrides.Debate.SynthesisEngine
	}
	if overrides.Backends.Claude.Timeout != 0 {
		cfg.Backends.Claude.Timeout = overrides.Backends.Claude.Timeout
	}
	if overrides.Backends.Gemini.Timeout != 0 {
		cfg.Backends.Gemini.Timeout = overrides.Backends.Gemini.Timeout
	}
	if overrides.Backends.Custom.Command != "" {
		cfg.Backends.Custom.Command = overrides.Backends.Custom.Command
	}
	if overrides.Backends.Custom.Timeout != 0 {
		cfg.Backends.Custom.Timeout = overrides.Backends.Custom.Timeout
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
