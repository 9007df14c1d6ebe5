package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// CommandExecutor abstracts command execution for testing.
// The production implementation uses exec.Cmd to run subprocesses,
// while tests can provide a mock implementation.
//
// The ctx parameter is included for interface consistency; the production
// implementation embeds context via exec.CommandContext(). Mock
// implementations may use ctx to simulate cancellation behavior.
type CommandExecutor interface {
	// Execute runs the command and returns stdout, stderr, and any error.
	Execute(ctx context.Context, cmd *exec.Cmd) (stdout, stderr []byte, err error)
}

// DefaultExecutor is the production implementation of CommandExecutor.
// It runs commands using the operating system's process execution.
type DefaultExecutor struct{}

// Execute runs the command and captures its output.
func (e *DefaultExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// executeFunc is the function signature for engine-specific command execution.
type executeFunc func(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error)

// baseRunner provides common functionality for runner implementations.
// Embed this in engine-specific runners to share timeout and context handling.
type baseRunner struct {
	executor       CommandExecutor
	defaultTimeout time.Duration
	logger         zerolog.Logger
}

// resolveTimeout determines the timeout to use for a request.
// Priority: request timeout > runner default.
func (b *baseRunner) resolveTimeout(req *domain.BackendRequest) time.Duration {
	if req.Timeout > 0 {
		return req.Timeout
	}
	return b.defaultTimeout
}

// runWithTimeout executes a backend request with proper timeout handling.
// There are no retries: a failed or expired invocation surfaces as an
// ordinary error identical to empty output, and the caller decides how to
// degrade.
func (b *baseRunner) runWithTimeout(ctx context.Context, req *domain.BackendRequest, execute executeFunc) (*domain.BackendResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	runCtx, cancel := context.WithTimeout(ctx, b.resolveTimeout(req))
	defer cancel()

	start := time.Now()
	result, err := execute(runCtx, req)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: timed out after %s", rberrors.ErrBackendInvocation, b.resolveTimeout(req))
		}
		return nil, err
	}

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// wrapExecError turns a subprocess failure into a backend invocation error,
// attaching the tail of stderr for diagnostics.
func wrapExecError(engine domain.EngineID, err error, stderr []byte) error {
	msg := string(bytes.TrimSpace(stderr))
	if len(msg) > 200 {
		msg = msg[len(msg)-200:]
	}
	if msg != "" {
		return fmt.Errorf("%w: %s: %w (stderr: %s)", rberrors.ErrBackendInvocation, engine, err, msg)
	}
	return fmt.Errorf("%w: %s: %w", rberrors.ErrBackendInvocation, engine, err)
}
