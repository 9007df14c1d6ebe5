// Package ai provides reasoning backend execution for Rebuttal.
//
// This package defines the Runner interface for invoking backend CLIs
// (Claude Code, Gemini, or a user-configured command) and the Selector,
// which freezes the Creator's engine choice per session and routes
// invocations with per-engine timeouts.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, and internal/domain. It MUST NOT import internal/debate,
// internal/session, or internal/cli.
package ai

import (
	"context"

	"github.com/mrz1836/rebuttal/internal/domain"
)

// Runner defines the interface for backend execution.
// Implementations handle the actual invocation of a reasoning backend CLI
// and return its raw output.
//
// Context should be used to control timeouts and cancellation.
type Runner interface {
	// Run executes a backend request and returns the result.
	// The context controls timeout and cancellation.
	// Returns an error wrapped with errors.ErrBackendInvocation on failure.
	Run(ctx context.Context, req *domain.BackendRequest) (*domain.BackendResult, error)
}
