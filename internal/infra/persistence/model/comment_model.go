package model

import (
	"time"

	"github.com/google/uuid"
)

// CommentModel mirrors the 'comments' table. Replies reference their parent
// comment and cascade on delete.
type CommentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ArticleID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Content   string     `gorm:"type:text;not null"`
	Status    string     `gorm:"type:varchar(20);not null;default:visible"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User    *UserModel     `gorm:"foreignKey:UserID"`
	Parent  *CommentModel  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Replies []CommentModel `gorm:"foreignKey:ParentID"`
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}
