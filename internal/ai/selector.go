package ai

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// LookPathFunc abstracts executable lookup for testing.
// The production implementation is exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Selector chooses which engine each debate role uses and routes
// invocations to the registered runners with per-engine timeouts.
//
// The Creator's engine is chosen exactly once per session, at the first
// transition out of the new state, and frozen into the session state by the
// scheduler. The Critic is always bound to the primary high-effort backend
// with no selection logic.
type Selector struct {
	registry *Registry
	cfg      *config.Config
	lookPath LookPathFunc
	logger   zerolog.Logger
}

// NewSelector creates a Selector over the given registry and configuration.
// If lookPath is nil, exec.LookPath is used.
func NewSelector(cfg *config.Config, registry *Registry, lookPath LookPathFunc, logger zerolog.Logger) *Selector {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Selector{
		registry: registry,
		cfg:      cfg,
		lookPath: lookPath,
		logger:   logger,
	}
}

// SelectCreatorEngine picks the Creator's engine by priority:
// user-configured custom command, then the secondary conversational backend,
// then the primary high-effort backend. When nothing is detectable the
// fallback marker is returned, deferring the decision to invoke time.
//
// Stock backends are probed concurrently; a probe is a PATH lookup only.
func (s *Selector) SelectCreatorEngine(ctx context.Context) domain.EngineID {
	if cmd := strings.Fields(s.cfg.Backends.Custom.Command); len(cmd) > 0 {
		if _, err := s.lookPath(cmd[0]); err == nil {
			s.logger.Debug().Str("command", cmd[0]).Msg("creator engine: custom command")
			return domain.EngineCustom
		}
		s.logger.Warn().Str("command", cmd[0]).Msg("configured custom command not found, trying stock backends")
	}

	available := s.probeStock(ctx)
	if available[domain.EngineGemini] {
		return domain.EngineGemini
	}
	if available[domain.EngineClaude] {
		return domain.EngineClaude
	}

	s.logger.Warn().Msg("no backend detected at selection time, deferring to invoke time")
	return domain.EngineFallback
}

// CriticEngine returns the Critic's fixed engine.
func (s *Selector) CriticEngine() domain.EngineID {
	return domain.EngineClaude
}

// SynthesisEngine returns the engine used for the final synthesis call:
// the configured synthesis engine if set, else the Critic's fixed engine.
func (s *Selector) SynthesisEngine() domain.EngineID {
	switch s.cfg.Debate.SynthesisEngine {
	case "gemini":
		return domain.EngineGemini
	case "custom":
		return domain.EngineCustom
	case "claude":
		return domain.EngineClaude
	default:
		return s.CriticEngine()
	}
}

// Invoke runs one synchronous backend call for the given engine and returns
// its raw text output. Missing executables, non-zero exits, and timeouts all
// surface as ordinary errors; an invocation that succeeds but produces only
// whitespace returns ErrEmptyBackendOutput so callers treat it identically.
func (s *Selector) Invoke(ctx context.Context, engine domain.EngineID, role domain.Role, prompt string) (string, error) {
	resolved, err := s.resolveEngine(ctx, engine)
	if err != nil {
		return "", err
	}

	runner, err := s.registry.Get(resolved)
	if err != nil {
		return "", err
	}

	req := &domain.BackendRequest{
		Engine:  resolved,
		Role:    role,
		Prompt:  prompt,
		Timeout: s.timeoutFor(resolved),
	}

	s.logger.Debug().
		Str("engine", resolved.String()).
		Str("role", role.String()).
		Dur("timeout", req.Timeout).
		Int("prompt_bytes", len(prompt)).
		Msg("invoking backend")

	result, err := runner.Run(ctx, req)
	if err != nil {
		return "", err
	}

	out := strings.TrimSpace(result.Output)
	if out == "" {
		return "", fmt.Errorf("%w: %s", rberrors.ErrEmptyBackendOutput, resolved)
	}

	s.logger.Debug().
		Str("engine", resolved.String()).
		Int64("duration_ms", result.DurationMs).
		Int("output_bytes", len(out)).
		Msg("backend invocation complete")

	return out, nil
}

// resolveEngine maps the fallback marker to the first backend available
// right now, in the same priority order as selection.
func (s *Selector) resolveEngine(ctx context.Context, engine domain.EngineID) (domain.EngineID, error) {
	if engine != domain.EngineFallback {
		return engine, nil
	}

	if cmd := strings.Fields(s.cfg.Backends.Custom.Command); len(cmd) > 0 {
		if _, err := s.lookPath(cmd[0]); err == nil {
			return domain.EngineCustom, nil
		}
	}

	available := s.probeStock(ctx)
	if available[domain.EngineGemini] {
		return domain.EngineGemini, nil
	}
	if available[domain.EngineClaude] {
		return domain.EngineClaude, nil
	}

	return "", rberrors.ErrNoBackendAvailable
}

// timeoutFor returns the configured invocation budget for an engine.
func (s *Selector) timeoutFor(engine domain.EngineID) time.Duration {
	switch engine {
	case domain.EngineGemini:
		return s.cfg.Backends.Gemini.Timeout
	case domain.EngineCustom:
		return s.cfg.Backends.Custom.Timeout
	default:
		return s.cfg.Backends.Claude.Timeout
	}
}

// probeStock checks PATH availability of the stock backends concurrently.
func (s *Selector) probeStock(ctx context.Context) map[domain.EngineID]bool {
	engines := []domain.EngineID{domain.EngineGemini, domain.EngineClaude}
	results := make([]bool, len(engines))

	g, _ := errgroup.WithContext(ctx)
	for i, engine := range engines {
		g.Go(func() error {
			_, err := s.lookPath(engine.ToolName())
			results[i] = err == nil
			return nil
		})
	}
	// Probes never return errors; Wait only synchronizes.
	_ = g.Wait()

	available := make(map[domain.EngineID]bool, len(engines))
	for i, engine := range engines {
		available[engine] = results[i]
	}
	return available
}
