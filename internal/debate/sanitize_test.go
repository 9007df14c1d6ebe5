package debate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
)

func TestSanitizeTurnMarkerExtraction(t *testing.T) {
	t.Run("well formed output passes through", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCreator, 1, "CREATOR: we should split the monolith")

		assert.Equal(t, "CREATOR: we should split the monolith", rec.Text)
		assert.False(t, rec.Filler)
		assert.Equal(t, domain.RoleCreator, rec.Role)
		assert.Equal(t, 1, rec.Round)
	})

	t.Run("last marker occurrence wins", func(t *testing.T) {
		raw := "CREATOR: draft one\nsome thinking\nCREATOR: the final answer"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Contains(t, rec.Text, "the final answer")
		assert.NotContains(t, rec.Text, "draft one")
	})

	t.Run("marker match is case insensitive", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCritic, 2, "critic: lowered marker still counts")

		assert.True(t, strings.HasPrefix(rec.Text, "CRITIC:"))
		assert.Contains(t, rec.Text, "lowered marker still counts")
		assert.False(t, rec.Filler)
	})

	t.Run("marker offset survives case folding of earlier runes", func(t *testing.T) {
		// Dotless ı uppercases to a shorter byte sequence, so any index
		// computed on a folded copy of the input would misalign here.
		rec := SanitizeTurn(domain.RoleCreator, 1, "ııı\nCREATOR: hello world")

		assert.Equal(t, "CREATOR: hello world", rec.Text)
		assert.True(t, utf8.ValidString(rec.Text))
		assert.False(t, rec.Filler)
	})

	t.Run("missing marker is re-prefixed", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCritic, 1, "this plan has no rollback story")

		assert.True(t, strings.HasPrefix(rec.Text, "CRITIC: "))
		assert.Contains(t, rec.Text, "no rollback story")
	})
}

func TestSanitizeTurnFallbackScrape(t *testing.T) {
	t.Run("banner lines before content are skipped", func(t *testing.T) {
		raw := "Loaded cached credentials.\nUsing model gemini-pro\n\nthe actual argument starts here\nand continues"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Contains(t, rec.Text, "the actual argument starts here")
		assert.Contains(t, rec.Text, "and continues")
		assert.NotContains(t, rec.Text, "credentials")
		assert.False(t, rec.Filler)
	})

	t.Run("scrape stops at first blank after content", func(t *testing.T) {
		raw := "first block line\n\nsecond block that should be dropped"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Contains(t, rec.Text, "first block line")
		assert.NotContains(t, rec.Text, "second block")
	})
}

func TestSanitizeTurnCleaning(t *testing.T) {
	t.Run("code fences are stripped with their content", func(t *testing.T) {
		raw := "CREATOR: here is the approach\n```go\nfunc main() {}\n```\nand the reasoning"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.NotContains(t, rec.Text, "```")
		assert.NotContains(t, rec.Text, "func main")
		assert.Contains(t, rec.Text, "and the reasoning")
	})

	t.Run("markdown headings are dropped", func(t *testing.T) {
		raw := "CREATOR: my position\n# Big Heading\n## Smaller\nactual content"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.NotContains(t, rec.Text, "Heading")
		assert.Contains(t, rec.Text, "actual content")
	})

	t.Run("blank lines are removed", func(t *testing.T) {
		raw := "CREATOR: one\n\n\ntwo\n\nthree"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.NotContains(t, rec.Text, "\n\n")
	})

	t.Run("output is capped at the line limit", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("CREATOR: opener\n")
		for i := 0; i < 30; i++ {
			b.WriteString("argument line\n")
		}

		rec := SanitizeTurn(domain.RoleCreator, 1, b.String())

		lines := strings.Split(rec.Text, "\n")
		assert.LessOrEqual(t, len(lines), constants.MaxTurnLines)
	})
}

func TestSanitizeTurnImpersonation(t *testing.T) {
	t.Run("opposing marker at line start truncates", func(t *testing.T) {
		raw := "CREATOR: my real turn\nmore of my turn\nCRITIC: fake rebuttal I wrote myself\nmore fakery"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Contains(t, rec.Text, "my real turn")
		assert.Contains(t, rec.Text, "more of my turn")
		assert.NotContains(t, rec.Text, "fake rebuttal")
		assert.NotContains(t, rec.Text, "CRITIC:")
	})

	t.Run("opposing marker mid-line keeps the prefix", func(t *testing.T) {
		raw := "CREATOR: I believe this, and CRITIC: would say otherwise\nnever seen"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Contains(t, rec.Text, "I believe this")
		assert.NotContains(t, rec.Text, "CRITIC:")
		assert.NotContains(t, rec.Text, "never seen")
	})

	t.Run("truncation point survives case folding of earlier runes", func(t *testing.T) {
		raw := "CREATOR: ııı before CRITIC: fake rebuttal"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.Equal(t, "CREATOR: ııı before", rec.Text)
		assert.True(t, utf8.ValidString(rec.Text))
		assert.NotContains(t, rec.Text, "CRITIC:")
	})

	t.Run("impersonation from the first line yields filler", func(t *testing.T) {
		raw := "CRITIC: entirely the wrong role"

		rec := SanitizeTurn(domain.RoleCreator, 1, raw)

		assert.True(t, rec.Filler)
		assert.True(t, strings.HasPrefix(rec.Text, "CREATOR: "))
		assert.NotContains(t, rec.Text, "CRITIC:")
	})
}

func TestSanitizeTurnFiller(t *testing.T) {
	t.Run("empty raw output yields role filler", func(t *testing.T) {
		creator := SanitizeTurn(domain.RoleCreator, 1, "")
		critic := SanitizeTurn(domain.RoleCritic, 1, "")

		require.True(t, creator.Filler)
		require.True(t, critic.Filler)
		assert.True(t, strings.HasPrefix(creator.Text, "CREATOR: "))
		assert.True(t, strings.HasPrefix(critic.Text, "CRITIC: "))
		assert.NotEqual(t, creator.Text, critic.Text)
	})

	t.Run("marker with nothing after it yields filler", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCreator, 3, "CREATOR:")

		assert.True(t, rec.Filler)
		assert.Equal(t, 3, rec.Round)
	})

	t.Run("whitespace only output yields filler", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCritic, 1, "   \n\t\n  ")

		assert.True(t, rec.Filler)
	})

	t.Run("fences only output yields filler", func(t *testing.T) {
		rec := SanitizeTurn(domain.RoleCreator, 1, "```\ncode only\n```")

		assert.True(t, rec.Filler)
	})
}
