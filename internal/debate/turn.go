package debate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/ai"
	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
)

// initialFraming replaces the opposing text on the Creator's very first
// turn, when there is nothing to respond to yet.
const initialFraming = "This is the opening turn. State a concrete stance on the topic and propose 2-3 actionable first steps."

// TurnExecutor builds role-scoped prompts, invokes the selected backend,
// and sanitizes the result into a TurnRecord. It performs no persistence;
// that is the scheduler's responsibility.
type TurnExecutor struct {
	selector *ai.Selector
	logger   zerolog.Logger
}

// NewTurnExecutor creates a TurnExecutor over the given selector.
func NewTurnExecutor(selector *ai.Selector, logger zerolog.Logger) *TurnExecutor {
	return &TurnExecutor{selector: selector, logger: logger}
}

// ExecuteTurn runs one role's turn for a round.
//
// The returned TurnRecord is always valid: on backend failure or empty
// output it carries filler text with Filler=true, and the failure is
// returned alongside so the caller can promote it to a fatal error in
// strict mode. opposing is the other role's most recent turn; on the
// Creator's first turn it is ignored in favor of the initial framing
// instruction.
func (t *TurnExecutor) ExecuteTurn(
	ctx context.Context,
	engine domain.EngineID,
	role domain.Role,
	round, totalRounds int,
	topic, opposing string,
) (domain.TurnRecord, error) {
	prompt := buildTurnPrompt(role, round, totalRounds, topic, opposing)

	raw, err := t.selector.Invoke(ctx, engine, role, prompt)
	if err != nil {
		t.logger.Warn().
			Err(err).
			Str("role", role.String()).
			Int("round", round).
			Msg("backend invocation failed, sanitizer will substitute filler")
		raw = ""
	}

	rec := SanitizeTurn(role, round, raw)
	if rec.Filler {
		t.logger.Warn().
			Str("role", role.String()).
			Int("round", round).
			Msg("turn was empty after sanitization, filler substituted")
	}
	return rec, err
}

// buildTurnPrompt assembles the role-scoped instruction block. The five
// hard constraints mirror the turn contract the sanitizer enforces, so a
// cooperative backend needs no sanitization at all.
func buildTurnPrompt(role domain.Role, round, totalRounds int, topic, opposing string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the %s in a structured two-role debate.\n", strings.ToUpper(role.Label()))
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Round %d of %d.\n\n", round, totalRounds)

	switch {
	case role == domain.RoleCreator && round == 1:
		b.WriteString(initialFraming)
	case opposing != "":
		fmt.Fprintf(&b, "The %s's latest turn was:\n%s\n\nRespond to it directly.", role.Opponent().Label(), opposing)
	default:
		fmt.Fprintf(&b, "The %s has not spoken yet. Make your strongest case.", role.Opponent().Label())
	}

	b.WriteString("\n\nHard rules:\n")
	fmt.Fprintf(&b, "1. Output only the %s's turn for this round.\n", strings.ToUpper(role.Label()))
	fmt.Fprintf(&b, "2. Never simulate, quote, or speak for the %s.\n", strings.ToUpper(role.Opponent().Label()))
	b.WriteString("3. Do not summarize the debate or draw final conclusions.\n")
	fmt.Fprintf(&b, "4. Use at most %d non-empty lines.\n", constants.MaxTurnLines)
	fmt.Fprintf(&b, "5. The first line must start with \"%s \".\n", role.Marker())

	return b.String()
}
