package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PageTitle       string    `gorm:"type:varchar(100)"`
	Theme           string    `gorm:"type:varchar(50);default:'light'"`
	BackgroundColor string    `gorm:"type:varchar(7);default:'#FFFFFF'"`
	TextColor       string    `gorm:"type:varchar(7);default:'#000000'"`
	ButtonStyle     string    `gorm:"type:varchar(50);default:'rounded'"`
	MetaDescription string    `gorm:"type:varchar(255)"`
	CustomDomain    *string   `gorm:"type:varchar(255);uniqueIndex"`
	IsPublic        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
