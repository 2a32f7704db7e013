// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark marks an article saved by a user. The (UserID, ArticleID) pair is
// unique; re-bookmarking an article is a benign no-op.
type Bookmark struct {
	UserID    uuid.UUID
	ArticleID uuid.UUID
	CreatedAt time.Time

	Article *Article // Populated on reads for display.
}
