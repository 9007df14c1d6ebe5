// Package errors provides centralized error handling for Rebuttal.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrBackendInvocation indicates that a reasoning backend CLI failed to
	// execute, timed out, or returned a non-zero exit code.
	ErrBackendInvocation = errors.New("backend invocation failed")

	// ErrBackendNotFound indicates that no runner is registered for the
	// requested engine.
	ErrBackendNotFound = errors.New("backend not found")

	// ErrNoBackendAvailable indicates that none of the candidate backend
	// executables could be located on the system.
	ErrNoBackendAvailable = errors.New("no usable backend available")

	// ErrEmptyBackendOutput indicates that a backend completed but produced
	// no usable text.
	ErrEmptyBackendOutput = errors.New("backend produced empty output")

	// ErrStrictBackendFailure indicates a backend failure while strict mode
	// is active. This is the only error class that terminates the process
	// with exit code 2.
	ErrStrictBackendFailure = errors.New("strict mode: backend failure is fatal")

	// ErrInvalidTransition indicates an attempt to perform a disallowed
	// session state transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrSessionNotFound indicates the requested debate session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionCorrupted indicates the persisted session file could not be
	// parsed. The store recovers from this by reinitializing; the sentinel
	// exists for logging and tests.
	ErrSessionCorrupted = errors.New("session state corrupted")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrInvalidEngine indicates an unrecognized engine identifier.
	ErrInvalidEngine = errors.New("invalid engine")

	// ErrMissingTopic indicates the required topic argument was not provided.
	ErrMissingTopic = errors.New("topic is required")
)
