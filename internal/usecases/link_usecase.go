package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/domain/repositories"
)

// LinkUsecase handles the links on a user's page
type LinkUsecase struct {
	linkRepo    repositories.LinkRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	uow         repositories.UnitOfWork
}

// NewLinkUsecase creates a new link usecase
func NewLinkUsecase(
	linkRepo repositories.LinkRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
) *LinkUsecase {
	return &LinkUsecase{
		linkRepo:    linkRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		uow:         uow,
	}
}

// List lists all links of the user in display order
func (u *LinkUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error) {
	return u.linkRepo.ListByUser(ctx, userID)
}

// Get returns one link of the user. Links of other users read as missing.
func (u *LinkUsecase) Get(ctx context.Context, userID, linkID uuid.UUID) (*entities.Link, error) {
	link, err := u.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return link, nil
}

// Create adds a link to the user's page. Only verified accounts may
// publish links.
func (u *LinkUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateLinkInput) (*entities.Link, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrNotVerified
	}

	linkType := input.LinkType
	if linkType == "" {
		linkType = entities.LinkTypeLink
	}

	position := input.Position
	if position == 0 {
		existing, err := u.linkRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		position = len(existing)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	link := &entities.Link{
		UserID:         userID,
		LinkType:       linkType,
		SocialPlatform: input.SocialPlatform,
		Title:          input.Title,
		URL:            input.URL,
		Description:    input.Description,
		ThumbnailURL:   input.ThumbnailURL,
		Position:       position,
		IsActive:       isActive,
	}

	if err := u.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Update applies the patchable fields of the input to the link. Each field
// is merged explicitly; nil leaves the stored value untouched.
func (u *LinkUsecase) Update(ctx context.Context, userID, linkID uuid.UUID, input *entities.UpdateLinkInput) (*entities.Link, error) {
	link, err := u.Get(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if input.LinkType != nil {
		link.LinkType = *input.LinkType
	}
	if input.SocialPlatform != nil {
		link.SocialPlatform = *input.SocialPlatform
	}
	if input.Title != nil {
		link.Title = *input.Title
	}
	if input.URL != nil {
		link.URL = *input.URL
	}
	if input.Description != nil {
		link.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		link.ThumbnailURL = *input.ThumbnailURL
	}
	if input.Position != nil {
		link.Position = *input.Position
	}
	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}

	if err := u.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes one link of the user
func (u *LinkUsecase) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	if _, err := u.Get(ctx, userID, linkID); err != nil {
		return err
	}
	return u.linkRepo.Delete(ctx, linkID)
}

// Reorder moves the listed links to their new positions in one
// transaction. A missing link aborts the whole batch.
func (u *LinkUsecase) Reorder(ctx context.Context, userID uuid.UUID, items []entities.ReorderItem) ([]*entities.Link, error) {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			if err := u.linkRepo.UpdatePosition(txCtx, userID, item.LinkID, item.NewPosition); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.linkRepo.ListByUser(ctx, userID)
}

// Click counts a visit on a link. Public, no ownership check.
func (u *LinkUsecase) Click(ctx context.Context, linkID uuid.UUID) (*entities.Link, error) {
	return u.linkRepo.IncrementClickCount(ctx, linkID)
}

// ListPublicByUsername returns the active links of a public page
func (u *LinkUsecase) ListPublicByUsername(ctx context.Context, username string) ([]*entities.Link, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if profile != nil && !profile.IsPublic {
		return nil, domainerrors.Forbidden("this page is private")
	}

	return u.linkRepo.ListActiveByUser(ctx, user.ID)
}
