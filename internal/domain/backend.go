// Package domain provides shared domain types for the Rebuttal debate engine.
package domain

import "time"

// BackendRequest contains the parameters for one reasoning backend invocation.
// Requests are ephemeral: they are never persisted.
type BackendRequest struct {
	// Engine specifies which backend CLI to use.
	Engine EngineID `json:"engine"`

	// Role is the debate role this invocation speaks for. Informational;
	// used for logging and diagnostics only.
	Role Role `json:"role,omitempty"`

	// Prompt is the full instruction block passed to the backend via stdin.
	Prompt string `json:"prompt"`

	// Timeout is the maximum duration for the invocation.
	// Zero means use the engine's configured default.
	Timeout time.Duration `json:"timeout"`
}

// BackendResult captures the outcome of a backend invocation.
type BackendResult struct {
	// Output is the backend's raw text output.
	Output string `json:"output"`

	// DurationMs is how long the invocation took in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}
