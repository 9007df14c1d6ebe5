package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  domain.DebateStatus
		to    domain.DebateStatus
		valid bool
	}{
		{"new to in_progress", domain.StatusNew, domain.StatusInProgress, true},
		{"in_progress to in_progress", domain.StatusInProgress, domain.StatusInProgress, true},
		{"in_progress to completed", domain.StatusInProgress, domain.StatusCompleted, true},
		{"new to completed skips rounds", domain.StatusNew, domain.StatusCompleted, false},
		{"completed is absorbing", domain.StatusCompleted, domain.StatusInProgress, false},
		{"completed to new", domain.StatusCompleted, domain.StatusNew, false},
		{"in_progress back to new", domain.StatusInProgress, domain.StatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, IsTerminalStatus(domain.StatusNew))
	assert.False(t, IsTerminalStatus(domain.StatusInProgress))
	assert.True(t, IsTerminalStatus(domain.StatusCompleted))
}

func TestAdvanceRound(t *testing.T) {
	creator := domain.TurnRecord{Role: domain.RoleCreator, Round: 1, Text: "CREATOR: go"}
	critic := domain.TurnRecord{Role: domain.RoleCritic, Round: 1, Text: "CRITIC: no"}

	t.Run("appends both turns and increments round", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 2}

		require.NoError(t, advanceRound(sess, creator, critic))

		assert.Equal(t, 1, sess.CurrentRound)
		assert.Equal(t, []string{"CREATOR: go", "CRITIC: no"}, sess.Transcript)
	})

	t.Run("counts filler turns", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 2}
		filler := critic
		filler.Filler = true

		require.NoError(t, advanceRound(sess, creator, filler))

		assert.Equal(t, 1, sess.FillerTurns)
	})

	t.Run("rejects completed session", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 2, CurrentRound: 2, Completed: true}

		err := advanceRound(sess, creator, critic)
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
	})

	t.Run("rejects when out of rounds", func(t *testing.T) {
		sess := &domain.DebateSession{
			TotalRounds:  2,
			CurrentRound: 2,
			Transcript:   []string{"a", "b", "c", "d"},
		}

		err := advanceRound(sess, creator, critic)
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
	})

	t.Run("rejects transcript and round counter mismatch", func(t *testing.T) {
		sess := &domain.DebateSession{
			TotalRounds:  3,
			CurrentRound: 1,
			Transcript:   []string{"only one turn"},
		}

		err := advanceRound(sess, creator, critic)
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	t.Run("marks session done with synthesis", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 2, CurrentRound: 2}

		require.NoError(t, complete(sess, "1. Ship it."))

		assert.True(t, sess.Completed)
		assert.Equal(t, "1. Ship it.", sess.Synthesis)
	})

	t.Run("rejects completion before the final round", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 3, CurrentRound: 2}

		err := complete(sess, "too early")
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
		assert.False(t, sess.Completed)
	})

	t.Run("rejects new session skipping straight to completed", func(t *testing.T) {
		sess := &domain.DebateSession{}

		err := complete(sess, "nothing happened")
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
		assert.False(t, sess.Completed)
	})

	t.Run("rejects re-completing a completed session", func(t *testing.T) {
		sess := &domain.DebateSession{TotalRounds: 2, CurrentRound: 2, Completed: true, Synthesis: "1. Done."}

		err := complete(sess, "again")
		require.ErrorIs(t, err, rberrors.ErrInvalidTransition)
		assert.Equal(t, "1. Done.", sess.Synthesis)
	})
}
