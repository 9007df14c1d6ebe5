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

// ClaudeRunner implements Runner for Claude Code CLI invocation.
// This is the primary high-effort backend; the Critic role is always
// bound to it.
type ClaudeRunner struct {
	base  baseRunner
	model string
}

// NewClaudeRunner creates a new ClaudeRunner with the given configuration.
// If executor is nil, a DefaultExecutor is used for production subprocess execution.
func NewClaudeRunner(cfg config.BackendConfig, executor CommandExecutor, logger zerolog.Logger) *ClaudeRunner {
	if executor == nil {
		executor = &DefaultExecutor{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultClaudeTimeout
	}
	return &ClaudeRunner{
		base: baseRunner{
			executor:       executor,
			defaultTimeout: timeout,
			logger:         logger,
		},
		model: cfg.Model,
	}
}

// Run executes a backend request using the Claude Code CLI.
func (r *ClaudeRunner) Run(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	return r.base.runWithTimeout(ctx, req, r.execute)
}

// execute performs a single invocation.
func (r *ClaudeRunner) execute(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	cmd := r.buildCommand(ctx)

	// Pass prompt via stdin for large prompts
	cmd.Stdin = strings.NewReader(req.Prompt)

	stdout, stderr, err := r.base.executor.Execute(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, wrapExecError(domain.EngineClaude, err, stderr)
	}

	return &domain.BackendResult{Output: string(stdout)}, nil
}

// buildCommand constructs the claude CLI command with appropriate flags.
func (r *ClaudeRunner) buildCommand(ctx context.Context) *exec.Cmd {
	args := []string{
		"-p", // Print mode (non-interactive)
	}
	if r.model != "" {
		args = append(args, "--model", r.model)
	}
	return exec.CommandContext(ctx, domain.EngineClaude.ToolName(), args...)
}

// Compile-time check that ClaudeRunner implements Runner.
var _ Runner = (*ClaudeRunner)(nil)
