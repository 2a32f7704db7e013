// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrArticleNotFound is returned when an article is not found.
var ErrArticleNotFound = errors.New("article not found")

// ArticleFilter narrows and pages article listings.
type ArticleFilter struct {
	Status     entity.ArticleStatus // Zero value means any status.
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Search     string // Matches title or excerpt, case-insensitive substring.
	Sort       string // One of "publish_date", "view_count", "title".
	Ascending  bool
	Limit      int
	Offset     int
}

// ArticleRepository defines the operations for article persistence, including
// revision snapshots which share the article's transaction boundary.
type ArticleRepository interface {
	// FindByID retrieves a single article by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)

	// FindBySlug retrieves a single article by its slug, with author and
	// category populated.
	FindBySlug(ctx context.Context, slug string) (*entity.Article, error)

	// SlugExists reports whether any article already uses the given slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// List retrieves articles matching the filter with author and category
	// populated, together with the total count before pagination.
	List(ctx context.Context, filter ArticleFilter) ([]*entity.Article, int64, error)

	// ListRelated retrieves up to limit published articles sharing the category,
	// excluding the given article, newest first.
	ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]*entity.Article, error)

	// Create persists a new article.
	Create(ctx context.Context, article *entity.Article) error

	// Update modifies an existing article.
	Update(ctx context.Context, article *entity.Article) error

	// Delete removes an article; its comments, bookmarks and revisions cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount bumps an article's view counter by one.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// CountByCategory returns the number of articles per category ID for the
	// given set of categories.
	CountByCategory(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// ReassignCategory moves every article of one category to another.
	ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uuid.UUID) error

	// DeleteByCategory removes every article of a category.
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error

	// CreateRevision persists a snapshot of an article prior to an update.
	CreateRevision(ctx context.Context, revision *entity.Revision) error

	// Count returns the total number of articles.
	Count(ctx context.Context) (int64, error)

	// SumViewCounts returns the total view count across all articles.
	SumViewCounts(ctx context.Context) (int64, error)
}
