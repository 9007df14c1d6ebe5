package ai

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// CustomRunner implements Runner for a user-configured command line.
// The command is split on whitespace; the prompt is passed via stdin.
// When a custom command is configured it takes top priority for the
// Creator's engine selection.
type CustomRunner struct {
	base    baseRunner
	command []string
}

// NewCustomRunner creates a new CustomRunner for the configured command.
// If executor is nil, a DefaultExecutor is used for production subprocess execution.
func NewCustomRunner(cfg config.CustomBackendConfig, executor CommandExecutor, logger zerolog.Logger) *CustomRunner {
	if executor == nil {
		executor = &DefaultExecutor{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultCustomTimeout
	}
	return &CustomRunner{
		base: baseRunner{
			executor:       executor,
			defaultTimeout: timeout,
			logger:         logger,
		},
		command: strings.Fields(cfg.Command),
	}
}

// Executable returns the command's argv[0], or empty when unconfigured.
func (r *CustomRunner) Executable() string {
	if len(r.command) == 0 {
		return ""
	}
	return r.command[0]
}

// Run executes a backend request using the configured command.
func (r *CustomRunner) Run(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	if len(r.command) == 0 {
		return nil, fmt.Errorf("%w: custom command", rberrors.ErrEmptyValue)
	}
	return r.base.runWithTimeout(ctx, req, r.execute)
}

// execute performs a single invocation.
func (r *CustomRunner) execute(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error) {
	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...) //#nosec G204 -- command is explicitly user-configured
	cmd.Stdin = strings.NewReader(req.Prompt)

	stdout, stderr, err := r.base.executor.Execute(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, wrapExecError(domain.EngineCustom, err, stderr)
	}

	return &domain.BackendResult{Output: string(stdout)}, nil
}

// Compile-time check that CustomRunner implements Runner.
var _ Runner = (*CustomRunner)(nil)
