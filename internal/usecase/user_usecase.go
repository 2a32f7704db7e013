package usecase

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// --- Input DTOs ---

// UpdateProfileInput carries the mutable profile fields. Nil pointers leave
// the corresponding field unchanged.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	Name        *string
	AvatarURL   *string
	Preferences *entity.Preferences
}

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UserUsecase defines the interface for profile self-service operations.
type UserUsecase interface {
	// GetProfile retrieves the user's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile modifies display name, avatar and reader preferences.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// ChangePassword verifies the current password, stores a new hash and
	// revokes every active session of the account.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// DeleteAccount removes the user along with owned sessions, comments and
	// bookmarks.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
