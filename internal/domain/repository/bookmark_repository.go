// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookmarkExists is returned when the (user, article) pair is already
// bookmarked; callers treat it as a benign outcome.
var ErrBookmarkExists = errors.New("article already bookmarked")

// BookmarkRepository defines the operations for bookmark persistence.
type BookmarkRepository interface {
	// Create persists a new bookmark. Returns ErrBookmarkExists when the store
	// reports a unique-constraint violation for the pair.
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	// Delete removes a bookmark. Deleting a non-existent bookmark is not an error.
	Delete(ctx context.Context, userID, articleID uuid.UUID) error

	// Exists reports whether the user has bookmarked the article.
	Exists(ctx context.Context, userID, articleID uuid.UUID) (bool, error)

	// ListByUser retrieves a user's bookmarks newest first, with articles
	// populated, together with the total count before pagination.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Bookmark, int64, error)
}
