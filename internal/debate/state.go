// This file implements the session state machine, which enforces valid
// lifecycle transitions: new -> in_progress(k) -> completed. The completed
// state is absorbing.
package debate

import (
	"fmt"

	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// ValidTransitions defines all allowed lifecycle transitions.
// Format: from_status -> []to_statuses
//
// The state machine follows this flow:
//
//	New → InProgress
//	InProgress → InProgress (next round), Completed
//
// Completed is terminal: any further invocation is a no-op.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[domain.DebateStatus][]domain.DebateStatus{
	domain.StatusNew:        {domain.StatusInProgress},
	domain.StatusInProgress: {domain.StatusInProgress, domain.StatusCompleted},
}

// IsValidTransition checks if a transition from one status to another is allowed.
func IsValidTransition(from, to domain.DebateStatus) bool {
	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus returns true for states where no further transitions are allowed.
func IsTerminalStatus(status domain.DebateStatus) bool {
	_, exists := ValidTransitions[status]
	return !exists
}

// advanceRound records the completion of one round: both turns appended to
// the transcript and the round counter incremented. The caller is
// responsible for persisting the updated session.
//
// Returns a wrapped ErrInvalidTransition when the session is already
// completed, out of rounds, or its transcript length does not match the
// round counter (which would indicate a half-written round).
func advanceRound(sess *domain.DebateSession, creator, critic domain.TurnRecord) error {
	if !IsValidTransition(sess.Status(), domain.StatusInProgress) {
		return fmt.Errorf("%w: %s -> %s", rberrors.ErrInvalidTransition, sess.Status(), domain.StatusInProgress)
	}
	if sess.CurrentRound >= sess.TotalRounds {
		return fmt.Errorf("%w: round %d of %d", rberrors.ErrInvalidTransition, sess.CurrentRound+1, sess.TotalRounds)
	}
	if len(sess.Transcript) != 2*sess.CurrentRound {
		return fmt.Errorf("%w: transcript has %d turns for %d completed rounds",
			rberrors.ErrInvalidTransition, len(sess.Transcript), sess.CurrentRound)
	}

	sess.AppendTurn(creator)
	sess.AppendTurn(critic)
	sess.CurrentRound++
	return nil
}

// complete marks the session completed after its final round and synthesis.
func complete(sess *domain.DebateSession, synthesis string) error {
	if !IsValidTransition(sess.Status(), domain.StatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", rberrors.ErrInvalidTransition, sess.Status(), domain.StatusCompleted)
	}
	if sess.CurrentRound != sess.TotalRounds {
		return fmt.Errorf("%w: cannot complete at round %d of %d",
			rberrors.ErrInvalidTransition, sess.CurrentRound, sess.TotalRounds)
	}
	sess.Synthesis = synthesis
	sess.Completed = true
	return nil
}
