package ai

// This test suite uses MockExecutor to simulate backend CLI subprocess
// execution. Tests never run the real claude or gemini binaries; all
// responses are pre-configured mock data.

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

var errTestExitStatus1 = errors.New("exit status 1")

// MockExecutor is a test implementation of CommandExecutor that returns
// pre-configured responses without running a subprocess.
type MockExecutor struct {
	StdoutData []byte
	StderrData []byte
	Err        error
	// CapturedCmd stores the last executed command for verification.
	CapturedCmd *exec.Cmd
}

func (m *MockExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	m.CapturedCmd = cmd
	return m.StdoutData, m.StderrData, m.Err
}

func TestNewClaudeRunner(t *testing.T) {
	t.Run("uses provided executor", func(t *testing.T) {
		mockExec := &MockExecutor{}

		runner := NewClaudeRunner(config.BackendConfig{Model: "sonnet"}, mockExec, zerolog.Nop())

		require.NotNil(t, runner)
		assert.Equal(t, mockExec, runner.base.executor)
	})

	t.Run("defaults executor and timeout when unset", func(t *testing.T) {
		runner := NewClaudeRunner(config.BackendConfig{}, nil, zerolog.Nop())

		require.NotNil(t, runner)
		assert.IsType(t, &DefaultExecutor{}, runner.base.executor)
		assert.Equal(t, constants.DefaultClaudeTimeout, runner.base.defaultTimeout)
	})
}

func TestClaudeRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stdout as output", func(t *testing.T) {
		mockExec := &MockExecutor{StdoutData: []byte("CREATOR: split the monolith")}
		runner := NewClaudeRunner(config.BackendConfig{}, mockExec, zerolog.Nop())

		result, err := runner.Run(ctx, &domain.BackendRequest{
			Engine: domain.EngineClaude,
			Role:   domain.RoleCreator,
			Prompt: "make your case",
		})
		require.NoError(t, err)

		assert.Equal(t, "CREATOR: split the monolith", result.Output)
		assert.GreaterOrEqual(t, result.DurationMs, int64(0))
	})

	t.Run("builds print mode command with model flag", func(t *testing.T) {
		mockExec := &MockExecutor{StdoutData: []byte("ok")}
		runner := NewClaudeRunner(config.BackendConfig{Model: "sonnet"}, mockExec, zerolog.Nop())

		_, err := runner.Run(ctx, &domain.BackendRequest{Prompt: "p"})
		require.NoError(t, err)

		require.NotNil(t, mockExec.CapturedCmd)
		args := mockExec.CapturedCmd.Args
		assert.Contains(t, args, "-p")
		assert.Contains(t, args, "--model")
		assert.Contains(t, args, "sonnet")
		assert.NotNil(t, mockExec.CapturedCmd.Stdin, "prompt goes in on stdin")
	})

	t.Run("omits model flag when not configured", func(t *testing.T) {
		mockExec := &MockExecutor{StdoutData: []byte("ok")}
		runner := NewClaudeRunner(config.BackendConfig{}, mockExec, zerolog.Nop())

		_, err := runner.Run(ctx, &domain.BackendRequest{Prompt: "p"})
		require.NoError(t, err)

		assert.NotContains(t, mockExec.CapturedCmd.Args, "--model")
	})

	t.Run("wraps subprocess failure with stderr tail", func(t *testing.T) {
		mockExec := &MockExecutor{
			Err:        errTestExitStatus1,
			StderrData: []byte("authentication failed"),
		}
		runner := NewClaudeRunner(config.BackendConfig{}, mockExec, zerolog.Nop())

		_, err := runner.Run(ctx, &domain.BackendRequest{Prompt: "p"})
		require.ErrorIs(t, err, rberrors.ErrBackendInvocation)
		assert.Contains(t, err.Error(), "authentication failed")
	})

	t.Run("canceled context short-circuits", func(t *testing.T) {
		mockExec := &MockExecutor{StdoutData: []byte("never")}
		runner := NewClaudeRunner(config.BackendConfig{}, mockExec, zerolog.Nop())

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := runner.Run(canceled, &domain.BackendRequest{Prompt: "p"})
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, mockExec.CapturedCmd)
	})

	t.Run("request timeout overrides the default", func(t *testing.T) {
		runner := NewClaudeRunner(config.BackendConfig{Timeout: time.Minute}, &MockExecutor{}, zerolog.Nop())

		got := runner.base.resolveTimeout(&domain.BackendRequest{Timeout: 5 * time.Second})
		assert.Equal(t, 5*time.Second, got)

		got = runner.base.resolveTimeout(&domain.BackendRequest{})
		assert.Equal(t, time.Minute, got)
	})
}
