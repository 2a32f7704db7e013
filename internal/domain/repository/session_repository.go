// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when no session matches the given token.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository defines the operations for refresh-token session persistence.
// A session's validity is determined solely by the presence of an unexpired row;
// expiry checks belong to the caller so stale rows can be cleaned up explicitly.
type SessionRepository interface {
	// Create persists a new session, representing an issued refresh token.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by the hash of its refresh token,
	// whether or not it has expired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash deletes the session holding the given token hash.
	// Deleting a non-existent session is not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes all sessions for a user, logging them out everywhere.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all sessions past their expiry and reports how many
	// were deleted. Intended for periodic cleanup.
	DeleteExpired(ctx context.Context) (int64, error)
}
