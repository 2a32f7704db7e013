package model

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkModel mirrors the 'bookmarks' table. The composite primary key makes
// a duplicate bookmark a unique constraint violation rather than a second row.
type BookmarkModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ArticleID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time

	Article *ArticleModel `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (BookmarkModel) TableName() string {
	return "bookmarks"
}
