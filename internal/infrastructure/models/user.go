package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email                   string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username                string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash            string     `gorm:"type:varchar(255);not null"`
	FullName                string     `gorm:"type:varchar(100)"`
	Bio                     string     `gorm:"type:text"`
	AvatarURL               string     `gorm:"type:varchar(500)"`
	IsActive                bool       `gorm:"not null;default:true"`
	IsVerified              bool       `gorm:"not null;default:false"`
	VerifiedAt              *time.Time `gorm:"type:timestamp"`
	LastPasswordResetSentAt *time.Time `gorm:"type:timestamp"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
