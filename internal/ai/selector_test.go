package ai

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

func lookPathWith(found ...string) LookPathFunc {
	set := make(map[string]bool, len(found))
	for _, name := range found {
		set[name] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
}

func newTestSelector(cfg *config.Config, lookPath LookPathFunc, executor CommandExecutor) *Selector {
	logger := zerolog.Nop()
	registry := NewRegistry()
	registry.Register(domain.EngineClaude, NewClaudeRunner(cfg.Backends.Claude, executor, logger))
	registry.Register(domain.EngineGemini, NewGeminiRunner(cfg.Backends.Gemini, executor, logger))
	if cfg.Backends.Custom.Command != "" {
		registry.Register(domain.EngineCustom, NewCustomRunner(cfg.Backends.Custom, executor, logger))
	}
	return NewSelector(cfg, registry, lookPath, logger)
}

func TestSelectCreatorEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("custom command has top priority", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Backends.Custom.Command = "mytool --flag"
		selector := newTestSelector(cfg, lookPathWith("mytool", "gemini", "claude"), &MockExecutor{})

		assert.Equal(t, domain.EngineCustom, selector.SelectCreatorEngine(ctx))
	})

	t.Run("unresolvable custom command falls through to stock", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Backends.Custom.Command = "missing-tool"
		selector := newTestSelector(cfg, lookPathWith("gemini", "claude"), &MockExecutor{})

		assert.Equal(t, domain.EngineGemini, selector.SelectCreatorEngine(ctx))
	})

	t.Run("gemini preferred over claude", func(t *testing.T) {
		selector := newTestSelector(config.DefaultConfig(), lookPathWith("gemini", "claude"), &MockExecutor{})

		assert.Equal(t, domain.EngineGemini, selector.SelectCreatorEngine(ctx))
	})

	t.Run("claude when gemini is absent", func(t *testing.T) {
		selector := newTestSelector(config.DefaultConfig(), lookPathWith("claude"), &MockExecutor{})

		assert.Equal(t, domain.EngineClaude, selector.SelectCreatorEngine(ctx))
	})

	t.Run("fallback when nothing is installed", func(t *testing.T) {
		selector := newTestSelector(config.DefaultConfig(), lookPathWith(), &MockExecutor{})

		assert.Equal(t, domain.EngineFallback, selector.SelectCreatorEngine(ctx))
	})
}

func TestCriticEngine(t *testing.T) {
	selector := newTestSelector(config.DefaultConfig(), lookPathWith(), &MockExecutor{})

	// The critic is pinned regardless of what the machine has installed.
	assert.Equal(t, domain.EngineClaude, selector.CriticEngine())
}

func TestSynthesisEngine(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		want       domain.EngineID
	}{
		{"empty defaults to critic engine", "", domain.EngineClaude},
		{"explicit claude", "claude", domain.EngineClaude},
		{"explicit gemini", "gemini", domain.EngineGemini},
		{"explicit custom", "custom", domain.EngineCustom},
		{"unknown value defaults to critic engine", "gpt", domain.EngineClaude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Debate.SynthesisEngine = tt.configured
			selector := newTestSelector(cfg, lookPathWith(), &MockExecutor{})

			assert.Equal(t, tt.want, selector.SynthesisEngine())
		})
	}
}

func TestSelectorInvoke(t *testing.T) {
	ctx := context.Background()

	t.Run("returns trimmed backend output", func(t *testing.T) {
		executor := &MockExecutor{StdoutData: []byte("  CREATOR: the answer \n")}
		selector := newTestSelector(config.DefaultConfig(), lookPathWith("claude"), executor)

		out, err := selector.Invoke(ctx, domain.EngineClaude, domain.RoleCreator, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "CREATOR: the answer", out)
	})

	t.Run("whitespace only output is an error", func(t *testing.T) {
		executor := &MockExecutor{StdoutData: []byte("   \n\t")}
		selector := newTestSelector(config.DefaultConfig(), lookPathWith("claude"), executor)

		_, err := selector.Invoke(ctx, domain.EngineClaude, domain.RoleCreator, "prompt")
		require.ErrorIs(t, err, rberrors.ErrEmptyBackendOutput)
	})

	t.Run("unregistered engine is an error", func(t *testing.T) {
		cfg := config.DefaultConfig()
		selector := newTestSelector(cfg, lookPathWith(), &MockExecutor{})

		_, err := selector.Invoke(ctx, domain.EngineCustom, domain.RoleCreator, "prompt")
		require.ErrorIs(t, err, rberrors.ErrBackendNotFound)
	})

	t.Run("fallback resolves to first available backend", func(t *testing.T) {
		executor := &MockExecutor{StdoutData: []byte("resolved output")}
		selector := newTestSelector(config.DefaultConfig(), lookPathWith("gemini"), executor)

		out, err := selector.Invoke(ctx, domain.EngineFallback, domain.RoleCreator, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "resolved output", out)
		// The gemini runner was chosen: its command carries the tool name.
		assert.Equal(t, "gemini", executor.CapturedCmd.Args[0])
	})

	t.Run("fallback with nothing available is an error", func(t *testing.T) {
		selector := newTestSelector(config.DefaultConfig(), lookPathWith(), &MockExecutor{})

		_, err := selector.Invoke(ctx, domain.EngineFallback, domain.RoleCreator, "prompt")
		require.ErrorIs(t, err, rberrors.ErrNoBackendAvailable)
	})
}

func TestTimeoutFor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backends.Claude.Timeout = 2 * time.Minute
	cfg.Backends.Gemini.Timeout = 45 * time.Second
	cfg.Backends.Custom.Timeout = time.Minute
	selector := newTestSelector(cfg, lookPathWith(), &MockExecutor{})

	assert.Equal(t, 2*time.Minute, selector.timeoutFor(domain.EngineClaude))
	assert.Equal(t, 45*time.Second, selector.timeoutFor(domain.EngineGemini))
	assert.Equal(t, time.Minute, selector.timeoutFor(domain.EngineCustom))
	assert.Equal(t, 2*time.Minute, selector.timeoutFor(domain.EngineFallback))
}
