package usecase

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// BookmarkListOutput returns one page of a user's bookmarks.
type BookmarkListOutput struct {
	Bookmarks []*entity.Bookmark
	Total     int64
	Page      int
	PerPage   int
}

// BookmarkUsecase defines the interface for bookmark business operations.
type BookmarkUsecase interface {
	// Add bookmarks an article for the user. Bookmarking twice is a no-op.
	Add(ctx context.Context, userID, articleID uuid.UUID) error

	// Remove deletes a bookmark. Removing a non-existent bookmark is a no-op.
	Remove(ctx context.Context, userID, articleID uuid.UUID) error

	// List retrieves the user's bookmarks newest first, with articles populated.
	List(ctx context.Context, userID uuid.UUID, page, perPage int) (*BookmarkListOutput, error)
}
