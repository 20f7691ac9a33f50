package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
)

// SingleUseTokenRepository defines the persisted single-use token store
// shared by email verification and password reset tokens.
type SingleUseTokenRepository interface {
	// Create inserts a fresh unused token row. A token string collision
	// fails the insert via the unique index.
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error

	// FindActive returns the row for the token only when it is unused and
	// unexpired. Not found, used and expired all collapse to ErrNotFound.
	FindActive(ctx context.Context, token string) (*entities.SingleUseToken, error)

	// FindActiveByUser returns the newest active token for the user, or
	// ErrNotFound when none exists.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entities.SingleUseToken, error)

	// Redeem flips used=true with a conditional update. It returns
	// ErrNotFound when the row was already used, so two concurrent
	// redemptions cannot both succeed.
	Redeem(ctx context.Context, id uuid.UUID) error

	// InvalidateAllUnused marks every unused token of the user as used
	InvalidateAllUnused(ctx context.Context, userID uuid.UUID) error
}
