package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
)

func newTestLink(userID uuid.UUID, title string, position int, active bool) *entities.Link {
	return &entities.Link{
		UserID:   userID,
		LinkType: entities.LinkTypeLink,
		Title:    title,
		URL:      "https://example.com/" + title,
		Position: position,
		IsActive: active,
	}
}

func TestLinkRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createLinkTable(t, db)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	l := newTestLink(userID, "blog", 0, true)
	l.LinkType = entities.LinkTypeButton
	l.SocialPlatform = entities.SocialGitHub
	require.NoError(t, repo.Create(ctx, l))
	require.NotEqual(t, uuid.Nil, l.ID)

	byID, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, "blog", byID.Title)
	require.Equal(t, entities.LinkTypeButton, byID.LinkType)
	require.Equal(t, entities.SocialGitHub, byID.SocialPlatform)
	require.Zero(t, byID.ClickCount)

	l.Title = "blog updated"
	l.IsActive = false
	require.NoError(t, repo.Update(ctx, l))

	updated, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, "blog updated", updated.Title)
	require.False(t, updated.IsActive)

	require.NoError(t, repo.Delete(ctx, l.ID))
	_, err = repo.GetByID(ctx, l.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLinkRepository_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	createLinkTable(t, db)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestLink(userID, "third", 2, true)))
	require.NoError(t, repo.Create(ctx, newTestLink(userID, "first", 0, true)))
	require.NoError(t, repo.Create(ctx, newTestLink(userID, "second", 1, false)))
	require.NoError(t, repo.Create(ctx, newTestLink(uuid.New(), "other", 0, true)))

	all, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "first", all[0].Title)
	require.Equal(t, "second", all[1].Title)
	require.Equal(t, "third", all[2].Title)

	active, err := repo.ListActiveByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "first", active[0].Title)
	require.Equal(t, "third", active[1].Title)
}

func TestLinkRepository_UpdatePosition(t *testing.T) {
	db := newTestDB(t)
	createLinkTable(t, db)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	l := newTestLink(userID, "movable", 0, true)
	require.NoError(t, repo.Create(ctx, l))

	require.NoError(t, repo.UpdatePosition(ctx, userID, l.ID, 5))

	moved, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 5, moved.Position)

	// a different user cannot move the link
	err = repo.UpdatePosition(ctx, uuid.New(), l.ID, 9)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLinkRepository_IncrementClickCount(t *testing.T) {
	db := newTestDB(t)
	createLinkTable(t, db)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	l := newTestLink(uuid.New(), "counted", 0, true)
	require.NoError(t, repo.Create(ctx, l))

	first, err := repo.IncrementClickCount(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ClickCount)

	second, err := repo.IncrementClickCount(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), second.ClickCount)

	_, err = repo.IncrementClickCount(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLinkRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createLinkTable(t, db)
	repo := NewLinkRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Link{ID: id, LinkType: entities.LinkTypeLink, Title: "x", URL: "https://example.com"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
