// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	// ArticleStatusDraft marks an unpublished work in progress.
	ArticleStatusDraft ArticleStatus = "draft"
	// ArticleStatusPublished marks a publicly visible article.
	ArticleStatusPublished ArticleStatus = "published"
	// ArticleStatusScheduled marks an article queued for future publication.
	ArticleStatusScheduled ArticleStatus = "scheduled"
)

// IsValid checks if the ArticleStatus is a valid value.
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusScheduled:
		return true
	default:
		return false
	}
}

// Article is a published or draft piece of content belonging to one category.
type Article struct {
	ID               uuid.UUID
	Title            string
	Slug             string // Unique; collisions resolved with an epoch-millisecond suffix.
	Excerpt          string
	Content          string
	FeaturedImageURL string
	AuthorID         uuid.UUID
	CategoryID       uuid.UUID
	Status           ArticleStatus
	PublishDate      *time.Time
	ScheduleDate     *time.Time
	StickToFrontPage bool
	ReadTimeMinutes  int
	ViewCount        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Denormalized relations, populated on reads where the caller needs them.
	Author   *User
	Category *Category
}

// Revision is a point-in-time snapshot of an article's title and content, taken
// in the same transaction as the update that replaced it.
type Revision struct {
	ID              uuid.UUID
	ArticleID       uuid.UUID
	UserID          uuid.UUID
	Title           string
	ContentSnapshot string
	CreatedAt       time.Time
}
