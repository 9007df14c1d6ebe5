package debate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
	"github.com/mrz1836/rebuttal/internal/session"
)

// Selector is the engine-selection and invocation surface the scheduler
// depends on. It is satisfied by ai.Selector; tests provide stubs.
type Selector interface {
	SelectCreatorEngine(ctx context.Context) domain.EngineID
	CriticEngine() domain.EngineID
}

// Options configures one scheduler invocation.
type Options struct {
	// Rounds is the requested number of rounds for a new session.
	// Ignored when resuming: the persisted session's configuration wins.
	Rounds int

	// Step runs exactly one round and returns, persisting progress so a
	// later independent invocation can continue. When false, the scheduler
	// loops until the session completes (batch mode).
	Step bool

	// Strict promotes any failed or empty backend invocation to a fatal
	// error before the failing round's progress is persisted.
	Strict bool
}

// Result reports what one scheduler invocation did.
type Result struct {
	// Session is the session state after the invocation.
	Session *domain.DebateSession

	// AlreadyCompleted is true when the session was completed before this
	// invocation; in that case zero backend calls were made.
	AlreadyCompleted bool

	// RoundsRun is the number of rounds executed by this invocation.
	RoundsRun int

	// TranscriptPath is the markdown artifact path, set on completion.
	TranscriptPath string
}

// Engine is the round scheduler. It drives the session state machine,
// running one round (step mode) or all remaining rounds (batch mode) per
// invocation, persisting after every round, and triggering the synthesis
// stage after the final round.
//
// Execution is fully synchronous: the Creator always completes before the
// Critic is invoked, because the Critic's prompt requires the Creator's
// latest text. Ordering is part of the protocol, not an optimization.
type Engine struct {
	store    *session.Store
	selector Selector
	turns    *TurnExecutor
	synth    *SynthesisStage
	logger   zerolog.Logger
}

// NewEngine creates a scheduler over the given collaborators.
func NewEngine(store *session.Store, selector Selector, turns *TurnExecutor, synth *SynthesisStage, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		selector: selector,
		turns:    turns,
		synth:    synth,
		logger:   logger,
	}
}

// Run executes the scheduler for a topic.
//
// A new session is created when none is persisted; an existing one is
// resumed exactly where it left off. A completed session is a no-op that
// performs zero backend invocations.
func (e *Engine) Run(ctx context.Context, topic string, opts Options) (*Result, error) {
	if topic == "" {
		return nil, rberrors.ErrMissingTopic
	}
	if opts.Rounds == 0 {
		opts.Rounds = constants.DefaultRounds
	}
	if opts.Rounds < constants.MinRounds || opts.Rounds > constants.MaxRounds {
		return nil, fmt.Errorf("%w: rounds must be in [%d, %d], got %d",
			rberrors.ErrValueOutOfRange, constants.MinRounds, constants.MaxRounds, opts.Rounds)
	}

	sess, existed, err := e.store.Load(ctx, topic, opts.Rounds)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With().
		Str("session_id", sess.SessionID).
		Str("slug", sess.Slug).
		Logger()

	if sess.Completed {
		logger.Info().Msg("debate already completed")
		return &Result{Session: sess, AlreadyCompleted: true}, nil
	}

	if existed {
		logger.Info().
			Int("current_round", sess.CurrentRound).
			Int("total_rounds", sess.TotalRounds).
			Msg("resuming debate session")
	}

	// First transition out of the new state freezes the Creator's engine.
	// Subsequent rounds reuse the frozen value so the Creator keeps one
	// consistent voice across the whole session.
	if sess.CreatorEngine == "" {
		sess.CreatorEngine = e.selector.SelectCreatorEngine(ctx)
		logger.Info().Str("engine", sess.CreatorEngine.String()).Msg("creator engine selected")
	}

	result := &Result{Session: sess}

	for sess.CurrentRound < sess.TotalRounds {
		if err := e.runRound(ctx, sess, opts.Strict, logger); err != nil {
			return nil, err
		}
		result.RoundsRun++

		if err := e.store.Save(ctx, sess); err != nil {
			return nil, err
		}

		if opts.Step {
			break
		}
	}

	if sess.CurrentRound == sess.TotalRounds && !sess.Completed {
		path, err := e.finish(ctx, sess, opts.Strict, logger)
		if err != nil {
			return nil, err
		}
		result.TranscriptPath = path
	}

	return result, nil
}

// runRound executes round CurrentRound+1: the Creator's turn, then the
// Critic's, strictly ordered. In strict mode a backend failure aborts
// before any of the round's progress is recorded, so the persisted
// current_round is unchanged and a later retry resumes at the same point.
func (e *Engine) runRound(ctx context.Context, sess *domain.DebateSession, strict bool, logger zerolog.Logger) error {
	round := sess.CurrentRound + 1
	logger.Info().Int("round", round).Int("total_rounds", sess.TotalRounds).Msg("running round")

	creatorRec, err := e.turns.ExecuteTurn(ctx, sess.CreatorEngine, domain.RoleCreator,
		round, sess.TotalRounds, sess.Topic, sess.LastTurnFor(domain.RoleCritic))
	if err != nil {
		if strict {
			return fmt.Errorf("%w: creator round %d: %w", rberrors.ErrStrictBackendFailure, round, err)
		}
		// Filler only papers over a failing backend. When no backend exists
		// at all the debate cannot produce anything real, so abort before
		// any of the round's progress is recorded.
		if errors.Is(err, rberrors.ErrNoBackendAvailable) {
			return fmt.Errorf("creator round %d: %w", round, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	criticRec, err := e.turns.ExecuteTurn(ctx, e.selector.CriticEngine(), domain.RoleCritic,
		round, sess.TotalRounds, sess.Topic, creatorRec.Text)
	if err != nil {
		if strict {
			return fmt.Errorf("%w: critic round %d: %w", rberrors.ErrStrictBackendFailure, round, err)
		}
		if errors.Is(err, rberrors.ErrNoBackendAvailable) {
			return fmt.Errorf("critic round %d: %w", round, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return advanceRound(sess, creatorRec, criticRec)
}

// finish runs the synthesis stage, marks the session completed, persists
// it, and writes the markdown transcript artifact. Synthesis failures
// soft-fail with a warning unless strict mode is active.
func (e *Engine) finish(ctx context.Context, sess *domain.DebateSession, strict bool, logger zerolog.Logger) (string, error) {
	synthesis, err := e.synth.Run(ctx, sess)
	if err != nil {
		if strict {
			return "", fmt.Errorf("%w: synthesis: %w", rberrors.ErrStrictBackendFailure, err)
		}
		logger.Warn().Err(err).Msg("synthesis failed, completing without recommendation")
		synthesis = ""
	}

	if err := complete(sess, synthesis); err != nil {
		return "", err
	}
	if err := e.store.Save(ctx, sess); err != nil {
		return "", err
	}

	path, err := e.store.WriteTranscript(ctx, sess)
	if err != nil {
		// The session state is already durable; a failed artifact write
		// should not undo completion.
		logger.Warn().Err(err).Msg("failed to write transcript artifact")
		return "", nil
	}

	logger.Info().Int("filler_turns", sess.FillerTurns).Msg("debate completed")
	return path, nil
}
