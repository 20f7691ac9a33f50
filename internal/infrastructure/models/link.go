package models

import (
	"time"

	"github.com/google/uuid"
)

type Link struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	LinkType       string    `gorm:"type:varchar(20);not null;default:'link'"`
	SocialPlatform string    `gorm:"type:varchar(50)"`
	Title          string    `gorm:"type:varchar(200);not null"`
	URL            string    `gorm:"type:varchar(2000);not null"`
	Description    string    `gorm:"type:text"`
	ThumbnailURL   string    `gorm:"type:varchar(500)"`
	Position       int       `gorm:"not null;default:0;index"`
	IsActive       bool      `gorm:"not null;default:true"`
	ClickCount     int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
