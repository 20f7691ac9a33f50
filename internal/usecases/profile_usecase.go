package usecases

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/domain/repositories"
)

// ProfileUsecase handles page appearance settings
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo repositories.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{profileRepo: profileRepo}
}

// Get returns the profile owned by the user
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByUserID(ctx, userID)
}

// Create creates a profile for users whose default profile was deleted.
// Unset appearance fields fall back to the defaults.
func (u *ProfileUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateProfileInput) (*entities.Profile, error) {
	_, err := u.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, domainerrors.NewAppError(http.StatusBadRequest, "profile already exists", domainerrors.ErrAlreadyExists)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	profile := entities.NewDefaultProfile(userID)
	profile.PageTitle = input.PageTitle
	profile.MetaDescription = input.MetaDescription
	if input.Theme != "" {
		profile.Theme = input.Theme
	}
	if input.BackgroundColor != "" {
		profile.BackgroundColor = input.BackgroundColor
	}
	if input.TextColor != "" {
		profile.TextColor = input.TextColor
	}
	if input.ButtonStyle != "" {
		profile.ButtonStyle = input.ButtonStyle
	}
	if input.IsPublic != nil {
		profile.IsPublic = *input.IsPublic
	}
	if input.CustomDomain != nil && *input.CustomDomain != "" {
		if err := u.checkCustomDomainFree(ctx, *input.CustomDomain, userID); err != nil {
			return nil, err
		}
		profile.CustomDomain = null.StringFrom(*input.CustomDomain)
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update applies the patchable fields of the input to the profile. Each
// field is merged explicitly; nil leaves the stored value untouched.
func (u *ProfileUsecase) Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.PageTitle != nil {
		profile.PageTitle = *input.PageTitle
	}
	if input.Theme != nil {
		profile.Theme = *input.Theme
	}
	if input.BackgroundColor != nil {
		profile.BackgroundColor = *input.BackgroundColor
	}
	if input.TextColor != nil {
		profile.TextColor = *input.TextColor
	}
	if input.ButtonStyle != nil {
		profile.ButtonStyle = *input.ButtonStyle
	}
	if input.MetaDescription != nil {
		profile.MetaDescription = *input.MetaDescription
	}
	if input.IsPublic != nil {
		profile.IsPublic = *input.IsPublic
	}
	if input.CustomDomain != nil {
		if *input.CustomDomain == "" {
			profile.CustomDomain = null.String{}
		} else if *input.CustomDomain != profile.CustomDomain.String {
			if err := u.checkCustomDomainFree(ctx, *input.CustomDomain, userID); err != nil {
				return nil, err
			}
			profile.CustomDomain = null.StringFrom(*input.CustomDomain)
		}
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUserID returns another user's profile
func (u *ProfileUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByUserID(ctx, userID)
}

// Delete removes the profile owned by the user
func (u *ProfileUsecase) Delete(ctx context.Context, userID uuid.UUID) error {
	return u.profileRepo.Delete(ctx, userID)
}

func (u *ProfileUsecase) checkCustomDomainFree(ctx context.Context, domain string, selfID uuid.UUID) error {
	other, err := u.profileRepo.GetByCustomDomain(ctx, domain)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.UserID != selfID {
		return domainerrors.NewAppError(http.StatusBadRequest, "custom domain already in use", domainerrors.ErrAlreadyExists)
	}
	return nil
}
