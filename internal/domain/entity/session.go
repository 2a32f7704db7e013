// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a long-lived, authorized login on a single device. It binds
// an opaque refresh token to its owning user; a user may hold many sessions.
// The raw token is a bearer secret and is never persisted, only its SHA-256 hash.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token, unique per session.
	ExpiresAt time.Time // The exact time when this session becomes invalid.
	CreatedAt time.Time // When the session was created (i.e., when the user logged in).
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
