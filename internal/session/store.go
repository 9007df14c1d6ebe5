// Package session provides debate session persistence for Rebuttal.
// This package implements the storage layer for session state files,
// with atomic writes for data integrity. State files are read once and
// written once per completed round; there is no cross-process locking, so
// two processes racing on the same topic slug are a documented limitation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/rebuttal/internal/constants"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// Store persists debate sessions as JSON documents keyed by topic slug.
type Store struct {
	homeDir string // Usually ~/.rebuttal
	logger  zerolog.Logger
}

// NewStore creates a Store rooted at the given home directory.
// If homeDir is empty, the REBUTTAL_HOME environment variable is consulted,
// then the default ~/.rebuttal directory.
func NewStore(homeDir string, logger zerolog.Logger) (*Store, error) {
	if homeDir == "" {
		homeDir = os.Getenv(constants.RebuttalHomeEnv)
	}
	if homeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, rberrors.Wrap(err, "failed to get user home directory")
		}
		homeDir = filepath.Join(home, constants.RebuttalHome)
	}
	return &Store{homeDir: homeDir, logger: logger}, nil
}

// NewSession constructs a fresh session for a topic with zero progress.
func NewSession(topic, slug string, totalRounds int) *domain.DebateSession {
	now := time.Now().UTC()
	return &domain.DebateSession{
		SchemaVersion: constants.SessionSchemaVersion,
		SessionID:     uuid.NewString(),
		Topic:         topic,
		Slug:          slug,
		TotalRounds:   totalRounds,
		CurrentRound:  0,
		Transcript:    []string{},
		Completed:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Load retrieves the session for a slug.
//
// The second return value reports whether a persisted session existed.
// A missing file yields a fresh session with the requested round count.
// A malformed file is recovered the same way with a logged warning;
// corruption never blocks progress and never propagates to the caller.
func (s *Store) Load(ctx context.Context, topic string, requestedRounds int) (*domain.DebateSession, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	slug := Slug(topic)
	path := s.sessionPath(slug)

	data, err := os.ReadFile(path) //#nosec G304 -- path is constructed from a sanitized slug
	if err != nil {
		if os.IsNotExist(err) {
			return NewSession(topic, slug, requestedRounds), false, nil
		}
		return nil, false, rberrors.Wrapf(err, "failed to read session '%s'", slug)
	}

	var sess domain.DebateSession
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn().
			Str("slug", slug).
			Err(fmt.Errorf("%w: %w", rberrors.ErrSessionCorrupted, err)).
			Msg("session file malformed, reinitializing")
		return NewSession(topic, slug, requestedRounds), false, nil
	}

	if err := checkSessionInvariants(&sess); err != nil {
		s.logger.Warn().
			Str("slug", slug).
			Err(fmt.Errorf("%w: %w", rberrors.ErrSessionCorrupted, err)).
			Msg("session file violates invariants, reinitializing")
		return NewSession(topic, slug, requestedRounds), false, nil
	}

	if sess.Slug == "" {
		sess.Slug = slug
	}
	return &sess, true, nil
}

// checkSessionInvariants verifies the structural invariants a persisted
// session must satisfy before it can be resumed. A parseable document that
// fails these is treated exactly like malformed JSON: the debate cannot
// safely continue from it.
func checkSessionInvariants(sess *domain.DebateSession) error {
	if sess.TotalRounds < constants.MinRounds || sess.TotalRounds > constants.MaxRounds {
		return fmt.Errorf("%w: total_rounds %d outside [%d, %d]",
			rberrors.ErrValueOutOfRange, sess.TotalRounds, constants.MinRounds, constants.MaxRounds)
	}
	if sess.CurrentRound < 0 || sess.CurrentRound > sess.TotalRounds {
		return fmt.Errorf("%w: current_round %d of %d",
			rberrors.ErrValueOutOfRange, sess.CurrentRound, sess.TotalRounds)
	}
	if len(sess.Transcript) != 2*sess.CurrentRound {
		return fmt.Errorf("%w: transcript has %d turns for %d completed rounds",
			rberrors.ErrValueOutOfRange, len(sess.Transcript), sess.CurrentRound)
	}
	if sess.Completed && sess.CurrentRound != sess.TotalRounds {
		return fmt.Errorf("%w: completed at round %d of %d",
			rberrors.ErrValueOutOfRange, sess.CurrentRound, sess.TotalRounds)
	}
	return nil
}

// Save persists the session atomically (write-then-rename). Any process
// that loads the same slug afterwards observes exactly this state, which is
// what allows a later independent invocation to continue the debate.
func (s *Store) Save(ctx context.Context, sess *domain.DebateSession) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if sess == nil {
		return fmt.Errorf("failed to save session: session %w", rberrors.ErrEmptyValue)
	}
	if sess.Slug == "" {
		return fmt.Errorf("failed to save session: slug %w", rberrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(s.sessionsDir(), dirPerm); err != nil {
		return rberrors.Wrap(err, "failed to create sessions directory")
	}

	sess.SchemaVersion = constants.SessionSchemaVersion
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return rberrors.Wrapf(err, "failed to marshal session '%s'", sess.Slug)
	}

	if err := atomicWrite(s.sessionPath(sess.Slug), data); err != nil {
		return rberrors.Wrapf(err, "failed to save session '%s'", sess.Slug)
	}
	return nil
}

// List returns all persisted sessions, newest first.
// Malformed entries are skipped with a logged warning.
func (s *Store) List(ctx context.Context) ([]*domain.DebateSession, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dir := s.sessionsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.DebateSession{}, nil
		}
		return nil, rberrors.Wrap(err, "failed to list sessions")
	}

	sessions := make([]*domain.DebateSession, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) //#nosec G304 -- path is constructed from a directory listing
		if err != nil {
			continue
		}

		var sess domain.DebateSession
		if err := json.Unmarshal(data, &sess); err != nil {
			s.logger.Warn().Str("file", entry.Name()).Msg("skipping malformed session file")
			continue
		}
		sessions = append(sessions, &sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session's state file and transcript artifact.
func (s *Store) Delete(ctx context.Context, slug string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if slug == "" {
		return fmt.Errorf("failed to delete session: slug %w", rberrors.ErrEmptyValue)
	}

	path := s.sessionPath(slug)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session '%s': %w", slug, rberrors.ErrSessionNotFound)
	}
	if err := os.Remove(path); err != nil {
		return rberrors.Wrapf(err, "failed to delete session '%s'", slug)
	}

	// Transcript artifact may not exist yet.
	_ = os.Remove(s.transcriptPath(slug))
	return nil
}

// TranscriptPath returns the path of the markdown transcript artifact.
func (s *Store) TranscriptPath(slug string) string {
	return s.transcriptPath(slug)
}

// Helper methods for path construction

// sessionsDir returns the path to the sessions directory.
func (s *Store) sessionsDir() string {
	return filepath.Join(s.homeDir, constants.SessionsDir)
}

// sessionPath returns the path to a session's JSON file.
func (s *Store) sessionPath(slug string) string {
	return filepath.Join(s.sessionsDir(), slug+".json")
}

// transcriptPath returns the path to a session's markdown artifact.
func (s *Store) transcriptPath(slug string) string {
	return filepath.Join(s.sessionsDir(), slug+".md")
}

// atomicWrite writes data to a file atomically using write-then-rename.
// Uses filePerm (0o600) for secure file permissions.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Ensure data is persisted before rename
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
