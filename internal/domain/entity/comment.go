// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	// CommentStatusVisible marks a publicly visible comment.
	CommentStatusVisible CommentStatus = "visible"
	// CommentStatusHidden marks a comment removed from public view by a moderator.
	CommentStatusHidden CommentStatus = "hidden"
	// CommentStatusFlagged marks a comment reported for review.
	CommentStatusFlagged CommentStatus = "flagged"
)

// MaxCommentDepth bounds how many reply levels are resolved when threading.
const MaxCommentDepth = 3

// Comment is a reader comment on an article, optionally replying to another comment.
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	UserID    uuid.UUID
	ParentID  *uuid.UUID // nil for top-level comments.
	Content   string
	Status    CommentStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User // Populated on reads for display.
}

// CommentNode is a comment with its resolved replies, threaded to MaxCommentDepth.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}
