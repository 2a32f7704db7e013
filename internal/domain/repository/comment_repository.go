// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the operations for comment persistence.
type CommentRepository interface {
	// FindByID retrieves a single comment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)

	// ListTopLevel retrieves visible top-level comments of an article, oldest
	// first, paginated, together with the total count before pagination.
	ListTopLevel(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*entity.Comment, int64, error)

	// ListByArticle retrieves every visible comment of an article, oldest first,
	// with commenting users populated. Threading is the caller's concern.
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*entity.Comment, error)

	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// Update modifies an existing comment's content.
	Update(ctx context.Context, comment *entity.Comment) error

	// UpdateStatus changes a comment's moderation status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CommentStatus) error

	// Delete removes a comment.
	Delete(ctx context.Context, id uuid.UUID) error
}
