package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// --- Input DTOs ---

// ListArticlesInput narrows and pages the article listing.
type ListArticlesInput struct {
	Status     entity.ArticleStatus // Empty means published only for public listings.
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Search     string
	Sort       string
	Ascending  bool
	Page       int
	PerPage    int
}

// GetArticleInput identifies an article by slug. ViewerID, when set, is used to
// resolve the viewer's bookmark state.
type GetArticleInput struct {
	Slug     string
	ViewerID *uuid.UUID
}

// CreateArticleInput defines the data required to create an article.
type CreateArticleInput struct {
	AuthorID         uuid.UUID
	Title            string
	Content          string
	Excerpt          string
	FeaturedImageURL string
	CategoryID       uuid.UUID
	Status           entity.ArticleStatus
	ScheduleDate     *time.Time
	StickToFrontPage bool
}

// UpdateArticleInput carries the mutable article fields. Nil pointers leave
// the corresponding field unchanged.
type UpdateArticleInput struct {
	ID               uuid.UUID
	EditorID         uuid.UUID // Recorded on the revision snapshot.
	EditorIsAdmin    bool      // Admins may edit articles they do not own.
	Title            *string
	Content          *string
	Excerpt          *string
	FeaturedImageURL *string
	CategoryID       *uuid.UUID
	Status           *entity.ArticleStatus
	ScheduleDate     *time.Time
	StickToFrontPage *bool
}

// --- Output DTOs ---

// ArticleListOutput returns one page of articles with the total match count.
type ArticleListOutput struct {
	Articles []*entity.Article
	Total    int64
	Page     int
	PerPage  int
}

// ArticleDetailOutput returns a single article with its related articles and
// the viewer's bookmark state.
type ArticleDetailOutput struct {
	Article    *entity.Article
	Related    []*entity.Article
	Bookmarked bool
}

// ArticleUsecase defines the interface for article business operations.
type ArticleUsecase interface {
	// List retrieves a page of articles matching the input.
	List(ctx context.Context, input *ListArticlesInput) (*ArticleListOutput, error)

	// GetBySlug retrieves an article, bumps its view counter and resolves up to
	// three related articles from the same category.
	GetBySlug(ctx context.Context, input *GetArticleInput) (*ArticleDetailOutput, error)

	// Create adds an article, deriving slug and read time from the content.
	Create(ctx context.Context, input *CreateArticleInput) (*entity.Article, error)

	// Update modifies an article, snapshotting the previous content as a
	// revision in the same transaction. Only the author or an admin may update.
	Update(ctx context.Context, input *UpdateArticleInput) (*entity.Article, error)

	// Delete removes an article along with its comments, bookmarks and
	// revisions. Only the author or an admin may delete.
	Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error
}
