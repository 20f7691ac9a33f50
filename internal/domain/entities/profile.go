package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Profile represents the appearance settings of a user's public page
type Profile struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	PageTitle       string      `json:"page_title,omitempty"`
	Theme           string      `json:"theme"`
	BackgroundColor string      `json:"background_color"`
	TextColor       string      `json:"text_color"`
	ButtonStyle     string      `json:"button_style"`
	MetaDescription string      `json:"meta_description,omitempty"`
	CustomDomain    null.String `json:"custom_domain,omitempty"`
	IsPublic        bool        `json:"is_public"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Profile defaults applied on creation
const (
	DefaultTheme           = "light"
	DefaultBackgroundColor = "#FFFFFF"
	DefaultTextColor       = "#000000"
	DefaultButtonStyle     = "rounded"
)

// NewDefaultProfile builds the profile every fresh registration starts with
func NewDefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:          userID,
		Theme:           DefaultTheme,
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,
		ButtonStyle:     DefaultButtonStyle,
		IsPublic:        true,
	}
}

// CreateProfileInput represents input for creating a profile explicitly
type CreateProfileInput struct {
	PageTitle       string  `json:"page_title" binding:"omitempty,max=100"`
	Theme           string  `json:"theme" binding:"omitempty,max=50"`
	BackgroundColor string  `json:"background_color" binding:"omitempty,hexcolor"`
	TextColor       string  `json:"text_color" binding:"omitempty,hexcolor"`
	ButtonStyle     string  `json:"button_style" binding:"omitempty,max=50"`
	MetaDescription string  `json:"meta_description" binding:"omitempty,max=255"`
	CustomDomain    *string `json:"custom_domain" binding:"omitempty,max=255"`
	IsPublic        *bool   `json:"is_public"`
}

// UpdateProfileInput lists exactly which profile fields are patchable
type UpdateProfileInput struct {
	PageTitle       *string `json:"page_title" binding:"omitempty,max=100"`
	Theme           *string `json:"theme" binding:"omitempty,max=50"`
	BackgroundColor *string `json:"background_color" binding:"omitempty,hexcolor"`
	TextColor       *string `json:"text_color" binding:"omitempty,hexcolor"`
	ButtonStyle     *string `json:"button_style" binding:"omitempty,max=50"`
	MetaDescription *string `json:"meta_description" binding:"omitempty,max=255"`
	CustomDomain    *string `json:"custom_domain" binding:"omitempty,max=255"`
	IsPublic        *bool   `json:"is_public"`
}
