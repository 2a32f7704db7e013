// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name              string             `gorm:"type:varchar(100);not null"`
	Email             string             `gorm:"type:varchar(255);unique;not null"`
	PasswordHash      string             `gorm:"type:varchar(255)"`
	AvatarURL         string             `gorm:"type:text"`
	Role              string             `gorm:"type:varchar(20);not null;default:reader"`
	GoogleID          *string            `gorm:"type:varchar(255);unique"`
	Preferences       entity.Preferences `gorm:"type:jsonb;serializer:json"`
	EmailVerified     bool               `gorm:"not null;default:false"`
	ResetTokenHash    *string            `gorm:"type:char(64);index"`
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Sessions []SessionModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
