// Package constants provides centralized constant values used throughout Rebuttal.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by Rebuttal for organizing data.
const (
	// RebuttalHome is the hidden directory name where Rebuttal stores all its data.
	// This directory is created in the user's home directory.
	RebuttalHome = ".rebuttal"

	// SessionsDir is the directory name where debate session state is stored.
	SessionsDir = "sessions"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "rebuttal.log"
)

// RebuttalHomeEnv is the environment variable that overrides the home directory.
const RebuttalHomeEnv = "REBUTTAL_HOME"

// Debate protocol limits.
const (
	// MinRounds is the minimum number of debate rounds per session.
	MinRounds = 2

	// MaxRounds is the maximum number of debate rounds per session.
	MaxRounds = 50

	// DefaultRounds is the number of rounds used when none is requested.
	DefaultRounds = 3

	// MaxTurnLines is the maximum number of non-empty lines a single turn
	// may contain after sanitization.
	MaxTurnLines = 10

	// MaxSlugLength is the maximum length of a topic slug.
	MaxSlugLength = 40

	// DefaultSlug is the slug used when a topic reduces to nothing.
	DefaultSlug = "debate"

	// SynthesisTailTurns is the maximum number of trailing transcript turns
	// fed into the synthesis prompt.
	SynthesisTailTurns = 6
)

// Timeout configurations for backend invocations. The high-effort backend
// gets a longer budget than the conversational one.
const (
	// DefaultClaudeTimeout is the default budget for the primary high-effort backend.
	DefaultClaudeTimeout = 120 * time.Second

	// DefaultGeminiTimeout is the default budget for the secondary conversational backend.
	DefaultGeminiTimeout = 45 * time.Second

	// DefaultCustomTimeout is the default budget for a user-configured command.
	DefaultCustomTimeout = 60 * time.Second
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of retained files.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)

// SessionSchemaVersion is the current version of the session JSON schema.
// This enables forward-compatible schema migrations.
const SessionSchemaVersion = "1.0"
