package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	domainerrors "linkpage.backend/internal/domain/errors"
)

func TestSingleUseTokenRepository_CreateAndFindActive(t *testing.T) {
	db := newTestDB(t)
	createEmailVerificationTokenTable(t, db)
	repo := NewEmailVerificationTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, userID, "tok-1", time.Now().Add(time.Hour)))

	found, err := repo.FindActive(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, userID, found.UserID)
	require.False(t, found.Used)
	require.True(t, found.Active(time.Now()))

	_, err = repo.FindActive(ctx, "no-such-token")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSingleUseTokenRepository_ExpiredTokenIsNotActive(t *testing.T) {
	db := newTestDB(t)
	createPasswordResetTokenTable(t, db)
	repo := NewPasswordResetTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, userID, "stale", time.Now().Add(-time.Minute)))

	_, err := repo.FindActive(ctx, "stale")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.FindActiveByUser(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSingleUseTokenRepository_RedeemIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	createEmailVerificationTokenTable(t, db)
	repo := NewEmailVerificationTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, userID, "once", time.Now().Add(time.Hour)))

	found, err := repo.FindActive(ctx, "once")
	require.NoError(t, err)

	require.NoError(t, repo.Redeem(ctx, found.ID))

	// second redemption hits the used=false guard
	err = repo.Redeem(ctx, found.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.FindActive(ctx, "once")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSingleUseTokenRepository_FindActiveByUserReturnsNewest(t *testing.T) {
	db := newTestDB(t)
	createPasswordResetTokenTable(t, db)
	repo := NewPasswordResetTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, userID, "older", time.Now().Add(30*time.Minute)))
	require.NoError(t, repo.Create(ctx, userID, "newer", time.Now().Add(time.Hour)))

	found, err := repo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "newer", found.Token)
}

func TestSingleUseTokenRepository_InvalidateAllUnused(t *testing.T) {
	db := newTestDB(t)
	createEmailVerificationTokenTable(t, db)
	repo := NewEmailVerificationTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUser := uuid.New()
	require.NoError(t, repo.Create(ctx, userID, "mine-1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, userID, "mine-2", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, otherUser, "theirs", time.Now().Add(time.Hour)))

	require.NoError(t, repo.InvalidateAllUnused(ctx, userID))

	_, err := repo.FindActive(ctx, "mine-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.FindActive(ctx, "mine-2")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// other users keep their tokens
	kept, err := repo.FindActive(ctx, "theirs")
	require.NoError(t, err)
	require.Equal(t, otherUser, kept.UserID)
}

func TestSingleUseTokenRepository_TablesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	createEmailVerificationTokenTable(t, db)
	createPasswordResetTokenTable(t, db)
	verifyRepo := NewEmailVerificationTokenRepository(db)
	resetRepo := NewPasswordResetTokenRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, verifyRepo.Create(ctx, userID, "shared-value", time.Now().Add(time.Hour)))

	_, err := resetRepo.FindActive(ctx, "shared-value")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
