package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
)

func TestProfileRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p := entities.NewDefaultProfile(userID)
	require.NoError(t, repo.Create(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)

	byUser, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entities.DefaultTheme, byUser.Theme)
	require.Equal(t, entities.DefaultBackgroundColor, byUser.BackgroundColor)
	require.True(t, byUser.IsPublic)
	require.False(t, byUser.CustomDomain.Valid)

	p.Theme = "dark"
	p.PageTitle = "My Page"
	p.CustomDomain = null.StringFrom("alice.example.com")
	require.NoError(t, repo.Update(ctx, p))

	updated, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "dark", updated.Theme)
	require.Equal(t, "My Page", updated.PageTitle)
	require.Equal(t, "alice.example.com", updated.CustomDomain.String)

	byDomain, err := repo.GetByCustomDomain(ctx, "alice.example.com")
	require.NoError(t, err)
	require.Equal(t, p.ID, byDomain.ID)

	require.NoError(t, repo.Delete(ctx, userID))
	_, err = repo.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByCustomDomain(ctx, "nobody.example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Profile{ID: uuid.New()})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_ClearCustomDomain(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p := entities.NewDefaultProfile(userID)
	p.CustomDomain = null.StringFrom("old.example.com")
	require.NoError(t, repo.Create(ctx, p))

	p.CustomDomain = null.String{}
	require.NoError(t, repo.Update(ctx, p))

	updated, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.False(t, updated.CustomDomain.Valid)
}
