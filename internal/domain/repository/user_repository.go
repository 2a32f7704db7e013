// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows and pages user listings.
type UserFilter struct {
	Search string      // Matches name or email, case-insensitive substring.
	Role   entity.Role // Zero value means any role.
	Limit  int
	Offset int
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByGoogleID retrieves a single user by their linked Google account ID.
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)

	// FindByResetTokenHash retrieves the user holding the given reset token hash.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user; owned sessions, comments and bookmarks cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves users matching the filter, together with the total count
	// before pagination.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int64, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
