package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
)

// singleUseTokenRow is the shared shape of the email verification and
// password reset token tables.
type singleUseTokenRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// SingleUseTokenRepository implements the persisted single-use token store
// on top of one of the two token tables.
type SingleUseTokenRepository struct {
	db    *gorm.DB
	table string
}

// NewEmailVerificationTokenRepository creates the store backed by the
// email verification token table
func NewEmailVerificationTokenRepository(db *gorm.DB) *SingleUseTokenRepository {
	return &SingleUseTokenRepository{db: db, table: "email_verification_tokens"}
}

// NewPasswordResetTokenRepository creates the store backed by the password
// reset token table
func NewPasswordResetTokenRepository(db *gorm.DB) *SingleUseTokenRepository {
	return &SingleUseTokenRepository{db: db, table: "email_password_reset_tokens"}
}

// Create inserts a fresh unused token row
func (r *SingleUseTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	row := &singleUseTokenRow{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		Used:      false,
		CreatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Table(r.table).Create(row).Error
}

// FindActive returns the row for the token only when unused and unexpired
func (r *SingleUseTokenRepository) FindActive(ctx context.Context, token string) (*entities.SingleUseToken, error) {
	var row singleUseTokenRow
	err := GetDB(ctx, r.db).WithContext(ctx).
		Table(r.table).
		Where("token = ? AND used = ? AND expires_at > ?", token, false, time.Now()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rowToEntity(&row), nil
}

// FindActiveByUser returns the newest active token for the user
func (r *SingleUseTokenRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entities.SingleUseToken, error) {
	var row singleUseTokenRow
	err := GetDB(ctx, r.db).WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND used = ? AND expires_at > ?", userID, false, time.Now()).
		Order("expires_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rowToEntity(&row), nil
}

// Redeem flips used=true conditionally. The `used = false` guard makes
// concurrent redemptions of the same token mutually exclusive.
func (r *SingleUseTokenRepository) Redeem(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Table(r.table).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// InvalidateAllUnused marks every unused token of the user as used
func (r *SingleUseTokenRepository) InvalidateAllUnused(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

func rowToEntity(row *singleUseTokenRow) *entities.SingleUseToken {
	return &entities.SingleUseToken{
		ID:        row.ID,
		UserID:    row.UserID,
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
		CreatedAt: row.CreatedAt,
	}
}
