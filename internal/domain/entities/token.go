package entities

import (
	"time"

	"github.com/google/uuid"
)

// SingleUseToken is a persisted random token redeemable exactly once,
// backing both email verification and password reset links.
type SingleUseToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the token is still redeemable at the given time
func (t *SingleUseToken) Active(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
