package usecase

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// --- Input DTOs ---

// ListCommentsInput pages the top-level comments of an article. Replies are
// always resolved in full, threaded to the depth limit.
type ListCommentsInput struct {
	ArticleID uuid.UUID
	Page      int
	PerPage   int
}

// CreateCommentInput defines the data required to post a comment.
type CreateCommentInput struct {
	ArticleID uuid.UUID
	UserID    uuid.UUID
	ParentID  *uuid.UUID
	Content   string
}

// UpdateCommentInput carries a comment's replacement content.
type UpdateCommentInput struct {
	ID      uuid.UUID
	UserID  uuid.UUID // Must be the comment's author.
	Content string
}

// ModerateCommentInput changes a comment's moderation status.
type ModerateCommentInput struct {
	ID     uuid.UUID
	Status entity.CommentStatus
}

// --- Output DTOs ---

// CommentListOutput returns one page of threaded comments with the total
// top-level count.
type CommentListOutput struct {
	Comments []*entity.CommentNode
	Total    int64
	Page     int
	PerPage  int
}

// CommentUsecase defines the interface for comment business operations.
type CommentUsecase interface {
	// List retrieves a page of an article's comments threaded into reply trees.
	List(ctx context.Context, input *ListCommentsInput) (*CommentListOutput, error)

	// Create posts a comment or reply. Replies deeper than the thread limit
	// are attached to the deepest allowed ancestor.
	Create(ctx context.Context, input *CreateCommentInput) (*entity.Comment, error)

	// Update edits a comment's content. Only the author may edit.
	Update(ctx context.Context, input *UpdateCommentInput) (*entity.Comment, error)

	// Flag marks a comment for moderator review. Flagged comments leave the
	// public listings until a moderator settles their status.
	Flag(ctx context.Context, id uuid.UUID) error

	// Moderate changes a comment's visibility status.
	Moderate(ctx context.Context, input *ModerateCommentInput) error

	// Delete removes a comment and its replies. The author or an admin may delete.
	Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error
}
