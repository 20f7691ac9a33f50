package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered account
type User struct {
	ID                      uuid.UUID `json:"id"`
	Email                   string    `json:"email"`
	Username                string    `json:"username"`
	PasswordHash            string    `json:"-"`
	FullName                string    `json:"full_name,omitempty"`
	Bio                     string    `json:"bio,omitempty"`
	AvatarURL               string    `json:"avatar_url,omitempty"`
	IsActive                bool      `json:"is_active"`
	IsVerified              bool      `json:"is_verified"`
	VerifiedAt              null.Time `json:"verified_at,omitempty"`
	LastPasswordResetSentAt null.Time `json:"-"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
	Bio      string `json:"bio"`
}

// UpdateUserInput lists exactly which user fields are patchable. Nil means
// "leave unchanged".
type UpdateUserInput struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
}

// ResetPasswordInput carries a reset token together with the new password
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// PublicUserPage is the public view of a user's page: identity fields,
// profile settings and the active links sorted by position.
type PublicUserPage struct {
	Username  string   `json:"username"`
	FullName  string   `json:"full_name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Profile   *Profile `json:"profile,omitempty"`
	Links     []*Link  `json:"links"`
}
