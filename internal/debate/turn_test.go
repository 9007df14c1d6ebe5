package debate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/rebuttal/internal/domain"
)

func TestBuildTurnPrompt(t *testing.T) {
	t.Run("creator first turn gets initial framing", func(t *testing.T) {
		prompt := buildTurnPrompt(domain.RoleCreator, 1, 3, "adopt microservices", "")

		assert.Contains(t, prompt, "You are the CREATOR")
		assert.Contains(t, prompt, "Topic: adopt microservices")
		assert.Contains(t, prompt, "Round 1 of 3.")
		assert.Contains(t, prompt, initialFraming)
		assert.NotContains(t, prompt, "latest turn was")
	})

	t.Run("creator later turns quote the critic", func(t *testing.T) {
		prompt := buildTurnPrompt(domain.RoleCreator, 2, 3, "adopt microservices", "CRITIC: too risky")

		assert.Contains(t, prompt, "The Critic's latest turn was:")
		assert.Contains(t, prompt, "CRITIC: too risky")
		assert.NotContains(t, prompt, initialFraming)
	})

	t.Run("critic always responds to the creator", func(t *testing.T) {
		prompt := buildTurnPrompt(domain.RoleCritic, 1, 3, "adopt microservices", "CREATOR: split it up")

		assert.Contains(t, prompt, "You are the CRITIC")
		assert.Contains(t, prompt, "CREATOR: split it up")
		assert.NotContains(t, prompt, initialFraming)
	})

	t.Run("hard rules cover the turn contract", func(t *testing.T) {
		prompt := buildTurnPrompt(domain.RoleCreator, 2, 3, "topic", "CRITIC: x")

		assert.Contains(t, prompt, "Hard rules:")
		assert.Contains(t, prompt, "Never simulate, quote, or speak for the CRITIC")
		assert.Contains(t, prompt, "Do not summarize the debate")
		assert.Contains(t, prompt, "at most 10 non-empty lines")
		assert.Contains(t, prompt, `must start with "CREATOR: "`)
	})

	t.Run("exactly five rules", func(t *testing.T) {
		prompt := buildTurnPrompt(domain.RoleCritic, 1, 2, "topic", "CREATOR: y")

		_, rules, found := strings.Cut(prompt, "Hard rules:\n")
		assert.True(t, found)
		assert.Len(t, strings.Split(strings.TrimSpace(rules), "\n"), 5)
	})
}
