// Package debate implements the debate orchestration engine for Rebuttal:
// the per-turn output sanitizer, the turn executor, the round scheduler
// state machine, and the final synthesis stage.
//
// IMPORTANT: This package may import internal/ai, internal/session,
// internal/config, internal/constants, internal/domain, and internal/errors.
// It MUST NOT import internal/cli.
package debate

import (
	"strings"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
)

// noisePrefixes are line prefixes emitted by backend CLIs around the actual
// response: credential banners, model announcements, spinner fragments, and
// log lines. The fallback scraper skips past them.
var noisePrefixes = []string{
	"loaded cached credentials",
	"data collection is",
	"using model",
	"warning:",
	"error:",
	"info:",
	"debug:",
	"[",
	"$",
	">",
}

// fillerText is the role-appropriate substitute used when sanitization
// leaves nothing. Substituting rather than persisting an empty turn keeps
// the debate moving; the substitution is recorded on the TurnRecord so it
// is observable, never silent.
var fillerText = map[domain.Role]string{
	domain.RoleCreator: "I maintain my current position and propose we proceed with the next concrete step of the plan.",
	domain.RoleCritic:  "I remain unconvinced; the latest proposal still lacks concrete evidence and needs a stronger justification.",
}

// SanitizeTurn extracts a single role's bounded message from raw backend
// output. It is a two-stage heuristic: a strict marker match first, then a
// fallback scrape of the first plausible text block.
//
// The returned TurnRecord always satisfies the turn contract: at most ten
// non-empty lines, a first line prefixed with the role's marker, and no line
// containing the opposing role's marker.
func SanitizeTurn(role domain.Role, round int, raw string) domain.TurnRecord {
	body, found := extractAfterLastMarker(role, raw)
	if !found {
		body = scrapeFallbackBlock(raw)
	}

	lines := cleanLines(body)
	lines = truncateAtOpponent(role, lines)

	if len(lines) > constants.MaxTurnLines {
		lines = lines[:constants.MaxTurnLines]
	}

	text := strings.Join(lines, "\n")
	filler := false
	if strings.TrimSpace(stripMarker(role, text)) == "" {
		text = fillerText[role]
		filler = true
	}

	if !hasPrefixFold(text, role.Marker()) {
		text = role.Marker() + " " + text
	}

	return domain.TurnRecord{
		Role:   role,
		Round:  round,
		Text:   text,
		Filler: filler,
	}
}

// extractAfterLastMarker returns everything after the last case-insensitive
// occurrence of the role's marker. The last occurrence wins because some
// backends stream multiple progressively refined drafts; the final draft is
// the one that counts.
func extractAfterLastMarker(role domain.Role, raw string) (string, bool) {
	idx := lastIndexFold(raw, role.Marker())
	if idx < 0 {
		return "", false
	}
	return strings.TrimLeft(raw[idx+len(role.Marker()):], " \t"), true
}

// indexFold returns the byte index of the first case-insensitive occurrence
// of marker in s, or -1. Markers are pure ASCII, so a match occupies exactly
// len(marker) bytes of s and the returned index is valid for slicing s
// directly. Folding a copy of s would not be: case mapping can change byte
// length (dotless ı uppercases to a 1-byte I), shifting every index after it.
func indexFold(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

// lastIndexFold is indexFold scanning from the end.
func lastIndexFold(s, marker string) int {
	for i := len(s) - len(marker); i >= 0; i-- {
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

// scrapeFallbackBlock finds the first block of consecutive non-empty,
// non-banner lines in the raw output. This is the recovery path for
// backends that ignore the marker instruction entirely.
func scrapeFallbackBlock(raw string) string {
	var block []string
	started := false

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if started {
				break
			}
			continue
		}
		if !started && isNoiseLine(trimmed) {
			continue
		}
		started = true
		block = append(block, line)
	}

	return strings.Join(block, "\n")
}

// isNoiseLine reports whether a line looks like CLI noise rather than content.
func isNoiseLine(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// cleanLines strips code fences and markdown headings, drops blank lines,
// and right-trims the survivors.
func cleanLines(body string) []string {
	var lines []string
	inFence := false

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}
	return lines
}

// truncateAtOpponent cuts the text at the first occurrence of the opposing
// role's marker, so a backend that starts impersonating the other side
// loses everything from that point on.
func truncateAtOpponent(role domain.Role, lines []string) []string {
	marker := role.Opponent().Marker()
	for i, line := range lines {
		idx := indexFold(line, marker)
		if idx < 0 {
			continue
		}
		if idx == 0 {
			return lines[:i]
		}
		kept := strings.TrimRight(line[:idx], " \t")
		out := append([]string{}, lines[:i]...)
		if strings.TrimSpace(kept) != "" {
			out = append(out, kept)
		}
		return out
	}
	return lines
}

// hasPrefixFold reports whether s starts with the ASCII marker,
// case-insensitively.
func hasPrefixFold(s, marker string) bool {
	return len(s) >= len(marker) && strings.EqualFold(s[:len(marker)], marker)
}

// stripMarker removes a leading role marker for emptiness checks, so that
// output consisting of nothing but the marker still counts as empty.
func stripMarker(role domain.Role, text string) string {
	trimmed := strings.TrimSpace(text)
	if hasPrefixFold(trimmed, role.Marker()) {
		return trimmed[len(role.Marker()):]
	}
	return trimmed
}
