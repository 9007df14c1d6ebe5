package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// RenderTranscript produces the markdown transcript document for a session:
// a header with topic, rounds, and timestamp, the turn-labeled transcript
// blocks in order, and the final synthesis.
func RenderTranscript(sess *domain.DebateSession, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debate: %s\n\n", sess.Topic)
	fmt.Fprintf(&b, "- Rounds: %d\n", sess.TotalRounds)
	fmt.Fprintf(&b, "- Creator engine: %s\n", sess.CreatorEngine)
	fmt.Fprintf(&b, "- Completed: %s\n", now.UTC().Format(time.RFC3339))
	if sess.FillerTurns > 0 {
		fmt.Fprintf(&b, "- Filler turns: %d\n", sess.FillerTurns)
	}
	b.WriteString("\n## Transcript\n\n")

	for i, turn := range sess.Transcript {
		round := i/2 + 1
		role := domain.RoleCreator
		if i%2 == 1 {
			role = domain.RoleCritic
		}
		fmt.Fprintf(&b, "### Round %d: %s\n\n%s\n\n", round, role.Label(), turn)
	}

	b.WriteString("## Final Synthesis\n\n")
	if sess.Synthesis != "" {
		b.WriteString(sess.Synthesis)
		b.WriteString("\n")
	} else {
		b.WriteString("_No synthesis was produced._\n")
	}

	return b.String()
}

// WriteTranscript writes the markdown transcript artifact for a completed
// session and returns its path. The artifact is written once, on completion.
func (s *Store) WriteTranscript(ctx context.Context, sess *domain.DebateSession) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if sess == nil || sess.Slug == "" {
		return "", fmt.Errorf("failed to write transcript: session %w", rberrors.ErrEmptyValue)
	}

	doc := RenderTranscript(sess, time.Now())
	path := s.transcriptPath(sess.Slug)
	if err := atomicWrite(path, []byte(doc)); err != nil {
		return "", rberrors.Wrapf(err, "failed to write transcript '%s'", sess.Slug)
	}

	s.logger.Info().Str("path", path).Msg("transcript artifact written")
	return path, nil
}
