// Package domain provides shared domain types for the Rebuttal debate engine.
package domain

import (
	"strings"
	"time"
)

// DebateStatus describes the lifecycle state of a debate session.
type DebateStatus string

const (
	// StatusNew means no session has been persisted for the slug yet.
	StatusNew DebateStatus = "new"

	// StatusInProgress means at least one round remains to be played.
	StatusInProgress DebateStatus = "in_progress"

	// StatusCompleted means all rounds and the synthesis have executed.
	StatusCompleted DebateStatus = "completed"
)

// TurnRecord is one role's sanitized contribution to a round.
// The text always satisfies the turn contract: non-empty, at most ten
// non-empty lines, first line prefixed with the role's marker, and no
// occurrence of the opposing role's marker.
type TurnRecord struct {
	// Role is the speaking role.
	Role Role `json:"role"`

	// Round is the 1-based round index this turn belongs to.
	Round int `json:"round"`

	// Text is the sanitized turn text, including the role marker prefix.
	Text string `json:"text"`

	// Filler is true when the sanitizer substituted filler text because the
	// backend produced nothing usable. Tracked so that filler substitution
	// is observable rather than silent.
	Filler bool `json:"filler,omitempty"`
}

// DebateSession is the persisted state of one debate, keyed by topic slug.
//
// Example JSON representation:
//
//	{
//	    "schema_version": "1.0",
//	    "session_id": "6b3f…",
//	    "topic": "Should we adopt microservices?",
//	    "total_rounds": 3,
//	    "current_round": 1,
//	    "creator_engine": "gemini",
//	    "transcript": ["CREATOR: …", "CRITIC: …"],
//	    "completed": false,
//	    "filler_turns": 0
//	}
type DebateSession struct {
	// SchemaVersion is the session JSON schema version.
	SchemaVersion string `json:"schema_version"`

	// SessionID is a stable identifier for log correlation across invocations.
	SessionID string `json:"session_id"`

	// Topic is the raw user topic. Immutable once the session exists.
	Topic string `json:"topic"`

	// Slug is the derived filesystem-safe key. Not authoritative (the file
	// name is), but kept for display convenience.
	Slug string `json:"slug"`

	// TotalRounds is the configured number of rounds, in [2, 50].
	TotalRounds int `json:"total_rounds"`

	// CurrentRound counts fully completed rounds, in [0, TotalRounds].
	CurrentRound int `json:"current_round"`

	// CreatorEngine is the engine frozen for the Creator at the first round.
	// Empty until the session leaves the new state; never changes afterward.
	CreatorEngine EngineID `json:"creator_engine,omitempty"`

	// Transcript holds one entry per completed turn, in protocol order:
	// Creator then Critic for each round. Each entry carries its role marker.
	Transcript []string `json:"transcript"`

	// Completed is true once all rounds have run and synthesis executed.
	Completed bool `json:"completed"`

	// Synthesis is the final recommendation text, set on completion.
	Synthesis string `json:"synthesis,omitempty"`

	// FillerTurns counts turns where the sanitizer substituted filler text.
	FillerTurns int `json:"filler_turns"`

	// CreatedAt is when the session was first persisted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the session was last persisted.
	UpdatedAt time.Time `json:"updated_at"`
}

// Status derives the lifecycle state from the session fields.
func (s *DebateSession) Status() DebateStatus {
	switch {
	case s.Completed:
		return StatusCompleted
	case s.CurrentRound > 0 || len(s.Transcript) > 0 || s.CreatorEngine != "":
		return StatusInProgress
	default:
		return StatusNew
	}
}

// AppendTurn records a sanitized turn in the transcript and updates the
// filler counter. The caller is responsible for persisting the session.
func (s *DebateSession) AppendTurn(rec TurnRecord) {
	s.Transcript = append(s.Transcript, rec.Text)
	if rec.Filler {
		s.FillerTurns++
	}
}

// TailTurns returns up to n trailing transcript entries, preserving order.
func (s *DebateSession) TailTurns(n int) []string {
	if n <= 0 || len(s.Transcript) == 0 {
		return nil
	}
	if n >= len(s.Transcript) {
		return s.Transcript
	}
	return s.Transcript[len(s.Transcript)-n:]
}

// LastTurnFor returns the most recent transcript entry spoken by the given
// role, or empty string if that role has not spoken yet.
func (s *DebateSession) LastTurnFor(role Role) string {
	marker := role.Marker()
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.ToUpper(s.Transcript[i]), marker) {
			return s.Transcript[i]
		}
	}
	return ""
}
