// Package domain provides shared domain types for the Rebuttal debate engine.
package domain

// EngineID identifies a reasoning backend. This determines which CLI tool
// is used to execute backend requests.
type EngineID string

// EngineID constants define the supported reasoning backends.
const (
	// EngineClaude is the primary high-effort backend (Claude Code CLI).
	// The Critic role is always bound to this engine.
	EngineClaude EngineID = "claude"

	// EngineGemini is the secondary conversational backend (Gemini CLI).
	EngineGemini EngineID = "gemini"

	// EngineCustom is a user-configured command line.
	EngineCustom EngineID = "custom"

	// EngineFallback means no backend was detectable when the Creator's
	// engine was frozen; the selector re-probes at invoke time and uses the
	// first backend found.
	EngineFallback EngineID = "fallback"
)

// String returns the string representation of the EngineID.
// This implements fmt.Stringer for convenient logging and debugging.
func (e EngineID) String() string {
	return string(e)
}

// IsValid checks if the engine is a recognized type.
func (e EngineID) IsValid() bool {
	switch e {
	case EngineClaude, EngineGemini, EngineCustom, EngineFallback:
		return true
	}
	return false
}

// ToolName returns the CLI command name for this engine.
// The custom engine's command comes from configuration, so it has no
// fixed tool name here.
func (e EngineID) ToolName() string {
	switch e {
	case EngineClaude:
		return "claude"
	case EngineGemini:
		return "gemini"
	default:
		return ""
	}
}

// InstallHint returns the installation instructions for this engine's CLI.
func (e EngineID) InstallHint() string {
	switch e {
	case EngineClaude:
		return "Install Claude CLI: npm install -g @anthropic-ai/claude-code"
	case EngineGemini:
		return "Install Gemini CLI: npm install -g @google/gemini-cli"
	case EngineCustom:
		return "Configure backends.custom.command in ~/.rebuttal/config.yaml"
	default:
		return "Unknown engine"
	}
}
