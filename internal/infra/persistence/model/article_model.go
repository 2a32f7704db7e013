package model

import (
	"time"

	"github.com/google/uuid"
)

// ArticleModel mirrors the 'articles' table.
type ArticleModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title            string     `gorm:"type:varchar(255);not null"`
	Slug             string     `gorm:"type:varchar(300);unique;not null"`
	Content          string     `gorm:"type:text;not null"`
	Excerpt          string     `gorm:"type:text"`
	FeaturedImageURL string     `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(20);not null;default:draft;index"`
	AuthorID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	PublishDate      *time.Time `gorm:"index"`
	ScheduleDate     *time.Time
	StickToFrontPage bool  `gorm:"not null;default:false"`
	ReadTimeMinutes  int   `gorm:"not null;default:1"`
	ViewCount        int64 `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Author    *UserModel      `gorm:"foreignKey:AuthorID"`
	Category  *CategoryModel  `gorm:"foreignKey:CategoryID"`
	Revisions []RevisionModel `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ArticleModel) TableName() string {
	return "articles"
}

// RevisionModel mirrors the 'article_revisions' table. A row is a snapshot of
// an article's content taken just before an update overwrote it.
type RevisionModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ArticleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null"`
	Title           string    `gorm:"type:varchar(255);not null"`
	ContentSnapshot string    `gorm:"type:text;not null"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (RevisionModel) TableName() string {
	return "article_revisions"
}
