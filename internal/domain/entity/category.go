// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the article category hierarchy. The parent relation
// forms a forest: no cycles, no self-reference; both are enforced on update.
type Category struct {
	ID           uuid.UUID  // The unique identifier for the category.
	Name         string     // Human-readable category name.
	Slug         string     // URL-safe unique identifier derived from the name.
	Description  string     // Optional description shown on category pages.
	ParentID     *uuid.UUID // Parent category, nil for roots.
	SortOrder    int        // Position among siblings, ascending.
	ArticleCount int64      // Number of articles in this category, derived at read time.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryNode is a category together with its resolved children, used when the
// hierarchy is returned as a forest.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// ArticleAction selects what happens to a deleted category's articles.
type ArticleAction string

const (
	// ArticleActionMoveToParent reassigns articles to the parent category, or to
	// the "uncategorized" category when the deleted category is a root.
	ArticleActionMoveToParent ArticleAction = "move_to_parent"
	// ArticleActionMoveToUncategorized reassigns articles to the lazily created
	// "uncategorized" category.
	ArticleActionMoveToUncategorized ArticleAction = "move_to_uncategorized"
	// ArticleActionDelete removes the articles outright.
	ArticleActionDelete ArticleAction = "delete"
)

// IsValid checks if the ArticleAction is a valid value.
func (a ArticleAction) IsValid() bool {
	switch a {
	case ArticleActionMoveToParent, ArticleActionMoveToUncategorized, ArticleActionDelete:
		return true
	default:
		return false
	}
}

// UncategorizedSlug keys the singleton fallback category for orphaned articles.
const UncategorizedSlug = "uncategorized"
