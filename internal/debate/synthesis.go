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

// SynthesisStage condenses the tail of a completed debate into one
// actionable recommendation with a single backend call.
type SynthesisStage struct {
	selector *ai.Selector
	logger   zerolog.Logger
}

// NewSynthesisStage creates a SynthesisStage over the given selector.
func NewSynthesisStage(selector *ai.Selector, logger zerolog.Logger) *SynthesisStage {
	return &SynthesisStage{selector: selector, logger: logger}
}

// Run executes the synthesis call over the last min(6, 2*total_rounds)
// turns and returns the recommendation text. Failures surface as ordinary
// errors; the scheduler decides whether to soft-fail or abort.
func (s *SynthesisStage) Run(ctx context.Context, sess *domain.DebateSession) (string, error) {
	n := constants.SynthesisTailTurns
	if limit := 2 * sess.TotalRounds; limit < n {
		n = limit
	}
	tail := sess.TailTurns(n)

	prompt := buildSynthesisPrompt(sess.Topic, tail)
	engine := s.selector.SynthesisEngine()

	s.logger.Debug().
		Str("engine", engine.String()).
		Int("tail_turns", len(tail)).
		Msg("running synthesis")

	out, err := s.selector.Invoke(ctx, engine, domain.RoleCritic, prompt)
	if err != nil {
		return "", err
	}
	return out, nil
}

// buildSynthesisPrompt assembles the final recommendation request.
func buildSynthesisPrompt(topic string, tail []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A structured debate was held on the topic: %s\n\n", topic)
	b.WriteString("Here are the final turns of the debate:\n\n")
	for _, turn := range tail {
		b.WriteString(turn)
		b.WriteString("\n\n")
	}
	b.WriteString("Synthesize the debate into a concise, actionable recommendation ")
	b.WriteString("as exactly 5 numbered steps. Do not continue the debate or take a side; ")
	b.WriteString("weigh both positions and recommend what to actually do.\n")

	return b.String()
}
