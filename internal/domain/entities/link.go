package entities

import (
	"time"

	"github.com/google/uuid"
)

// LinkType distinguishes buttons from plain links
type LinkType string

const (
	LinkTypeButton LinkType = "button"
	LinkTypeLink   LinkType = "link"
)

// SocialPlatform identifies the platform behind a social link
type SocialPlatform string

const (
	SocialInstagram SocialPlatform = "instagram"
	SocialTwitter   SocialPlatform = "twitter"
	SocialFacebook  SocialPlatform = "facebook"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialYouTube   SocialPlatform = "youtube"
	SocialTikTok    SocialPlatform = "tiktok"
	SocialGitHub    SocialPlatform = "github"
	SocialDiscord   SocialPlatform = "discord"
	SocialTwitch    SocialPlatform = "twitch"
	SocialSpotify   SocialPlatform = "spotify"
	SocialPinterest SocialPlatform = "pinterest"
	SocialSnapchat  SocialPlatform = "snapchat"
	SocialReddit    SocialPlatform = "reddit"
	SocialTelegram  SocialPlatform = "telegram"
	SocialWhatsApp  SocialPlatform = "whatsapp"
	SocialOther     SocialPlatform = "other"
)

// Link represents one entry on a user's page
type Link struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	LinkType       LinkType       `json:"link_type"`
	SocialPlatform SocialPlatform `json:"social_platform,omitempty"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Description    string         `json:"description,omitempty"`
	ThumbnailURL   string         `json:"thumbnail_url,omitempty"`
	Position       int            `json:"position"`
	IsActive       bool           `json:"is_active"`
	ClickCount     int64          `json:"click_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreateLinkInput represents input for creating a link
type CreateLinkInput struct {
	LinkType       LinkType       `json:"link_type" binding:"omitempty,oneof=button link"`
	SocialPlatform SocialPlatform `json:"social_platform" binding:"omitempty"`
	Title          string         `json:"title" binding:"required,max=200"`
	URL            string         `json:"url" binding:"required,max=2000"`
	Description    string         `json:"description"`
	ThumbnailURL   string         `json:"thumbnail_url" binding:"omitempty,max=500"`
	Position       int            `json:"position"`
	IsActive       *bool          `json:"is_active"`
}

// UpdateLinkInput lists exactly which link fields are patchable
type UpdateLinkInput struct {
	LinkType       *LinkType       `json:"link_type" binding:"omitempty,oneof=button link"`
	SocialPlatform *SocialPlatform `json:"social_platform"`
	Title          *string         `json:"title" binding:"omitempty,max=200"`
	URL            *string         `json:"url" binding:"omitempty,max=2000"`
	Description    *string         `json:"description"`
	ThumbnailURL   *string         `json:"thumbnail_url" binding:"omitempty,max=500"`
	Position       *int            `json:"position"`
	IsActive       *bool           `json:"is_active"`
}

// ReorderItem assigns a new position to one link
type ReorderItem struct {
	LinkID      uuid.UUID `json:"link_id" binding:"required"`
	NewPosition int       `json:"new_position"`
}
