// Package session provides the readiness/validity gate that every network
// operation consults, plus a SQLite-backed token store implementing it.
package session

import (
	"database/sql"
	"fmt"
	"time"

	"chartctl/internal/shared"
)

// Gate is the session contract consumed by the controller and services.
//
// Operations short-circuit silently while Ready is false. When Ready is true
// but Valid is false the caller invalidates and returns without surfacing an
// error; that is an expected, recoverable state.
type Gate interface {
	// Ready reports whether session evaluation has completed.
	Ready() bool

	// Valid reports whether a session exists and has not expired.
	Valid() bool

	// Token returns the opaque session token, or "" when absent.
	Token() string

	// Invalidate clears the stored token after the remote reports the
	// session unauthorized.
	Invalidate()
}

// Store persists a single session token with its expiry in SQLite and
// implements [Gate]. Ready flips true after Load has run, whether or not a
// session row exists.
type Store struct {
	db        *sql.DB
	loaded    bool
	token     string
	expiresAt time.Time
	now       func() time.Time
}

var _ Gate = (*Store)(nil)

// NewStore creates a session store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Load reads the most recent session row into memory. A missing row is not an
// error; the store simply holds no token.
func (s *Store) Load() error {
	var token string
	var expiresAt time.Time

	err := s.db.QueryRow(`
		SELECT token, expires_at FROM sessions ORDER BY created_at DESC LIMIT 1
	`).Scan(&token, &expiresAt)
	if err == sql.ErrNoRows {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.token = token
	s.expiresAt = expiresAt
	s.loaded = true
	return nil
}

// Save replaces any stored session with the given token and expiry.
func (s *Store) Save(token string, expiresAt time.Time) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidArgument)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO sessions (id, token, expires_at) VALUES (?, ?, ?)",
		shared.GenerateID(), token, expiresAt,
	); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	s.token = token
	s.expiresAt = expiresAt
	s.loaded = true
	return nil
}

// Ready reports whether Load has completed.
func (s *Store) Ready() bool { return s.loaded }

// Valid reports whether a token is present and unexpired.
func (s *Store) Valid() bool {
	return s.token != "" && s.now().Before(s.expiresAt)
}

// Token returns the stored token, or "" when absent.
func (s *Store) Token() string { return s.token }

// ExpiresAt returns the stored expiry; zero when no session is held.
func (s *Store) ExpiresAt() time.Time { return s.expiresAt }

// Invalidate clears the token in memory and best-effort deletes the stored
// rows. Deletion failures are swallowed: an invalidated gate must read as
// invalid regardless.
func (s *Store) Invalidate() {
	s.token = ""
	s.expiresAt = time.Time{}
	if s.db != nil {
		s.db.Exec("DELETE FROM sessions")
	}
}
