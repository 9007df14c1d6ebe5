// Package session provides debate session persistence for Rebuttal.
// This file implements deterministic slug derivation from free-text topics.
package session

import (
	"strings"
	"unicode"

	"github.com/mrz1836/rebuttal/internal/constants"
)

// Slug derives a deterministic, filesystem-safe key from a topic string.
//
// Runs of characters that are not ASCII letters, digits, or Hangul collapse
// to a single '-'; leading and trailing dashes are trimmed; the result is
// truncated to 40 characters and re-trimmed. An empty result becomes
// "debate". The function is pure and never fails: repeated calls and
// separate process invocations yield the identical value for the same topic.
func Slug(topic string) string {
	var b strings.Builder
	b.Grow(len(topic))

	lastDash := false
	for _, r := range topic {
		if isSlugRune(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")

	if runes := []rune(slug); len(runes) > constants.MaxSlugLength {
		slug = strings.Trim(string(runes[:constants.MaxSlugLength]), "-")
	}

	if slug == "" {
		return constants.DefaultSlug
	}
	return slug
}

// isSlugRune reports whether r survives slug derivation unchanged.
func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return unicode.Is(unicode.Hangul, r)
	}
}
