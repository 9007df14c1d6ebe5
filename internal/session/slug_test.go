package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Run("lowercase ascii passes through", func(t *testing.T) {
		assert.Equal(t, "microservices", Slug("microservices"))
	})

	t.Run("case is preserved", func(t *testing.T) {
		assert.Equal(t, "Adopt-Microservices", Slug("Adopt Microservices"))
	})

	t.Run("runs of separators collapse to one dash", func(t *testing.T) {
		assert.Equal(t, "should-we-adopt-microservices", Slug("should we -- adopt?? microservices"))
	})

	t.Run("punctuation only topic falls back to default", func(t *testing.T) {
		assert.Equal(t, "debate", Slug("?!... ---"))
	})

	t.Run("empty topic falls back to default", func(t *testing.T) {
		assert.Equal(t, "debate", Slug(""))
	})

	t.Run("hangul is preserved", func(t *testing.T) {
		assert.Equal(t, "마이크로서비스-도입", Slug("마이크로서비스 도입?"))
	})

	t.Run("non hangul unicode collapses to dashes", func(t *testing.T) {
		assert.Equal(t, "caf-strat-gie", Slug("café stratégie"))
	})

	t.Run("truncates to max length", func(t *testing.T) {
		long := strings.Repeat("a", 100)
		got := Slug(long)
		assert.Len(t, []rune(got), 40)
	})

	t.Run("truncation retrims trailing dash", func(t *testing.T) {
		topic := strings.Repeat("a", 39) + " " + strings.Repeat("b", 20)
		got := Slug(topic)
		assert.Equal(t, strings.Repeat("a", 39), got)
		assert.False(t, strings.HasSuffix(got, "-"))
	})

	t.Run("leading and trailing separators are trimmed", func(t *testing.T) {
		assert.Equal(t, "topic", Slug("  topic!  "))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		topic := "Should we rewrite the importer? (v2)"
		first := Slug(topic)
		for range 10 {
			assert.Equal(t, first, Slug(topic))
		}
	})
}
