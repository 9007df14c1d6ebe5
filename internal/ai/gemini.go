package ai

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
)

// GeminiRunner implements Runner for Gemini CLI invocation.
// This is the secondary conversational backend, preferred for the Creator
// when no custom command is configured. It runs on a shorter default
// timeout than the high-effort backend.
type GeminiRunner struct {
	base  baseRunner
	model string
}

// NewGeminiRunner creates a new GeminiRunner with the given configuration.
// If executor is nil, a DefaultExecutor is used for production subprocess execution.
func NewGeminiRunner(cfg config.BackendConfig, executor CommandExecutor, logger zerolog.Logger) *GeminiRunner {
	if executor == nil {
		executor = &DefaultExecutor{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultGeminiTimeout
	}
	return &GeminiRunner{
		base: baseRunner{
			executor:       executor,
			defaultTimeout: timeout,
			logger:         logger,
		},
		model: cfg.Model,
	}
}

// Run executes a backend request using the Gemini CLI.
func (r *GeminiRunner) Run(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	return r.base.runWithTimeout(ctx, req, r.execute)
}

// execute performs a single invocation.
func (r *GeminiRunner) execute(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	var args []string
	if r.model != "" {
		args = append(args, "-m", r.model)
	}
	cmd := exec.CommandContext(ctx, domain.EngineGemini.ToolName(), args...)
	cmd.Stdin = strings.NewReader(req.Prompt)

	stdout, stderr, err := r.base.executor.Execute(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, wrapExecError(domain.EngineGemini, err, stderr)
	}

	return &domain.BackendResult{Output: string(stdout)}, nil
}

// Compile-time check that GeminiRunner implements Runner.
var _ Runner = (*GeminiRunner)(nil)
