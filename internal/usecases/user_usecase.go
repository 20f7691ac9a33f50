package usecases

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/domain/repositories"
	"linkpage.backend/internal/infrastructure/storage"
)

// AvatarPresigner issues presigned upload URLs for user avatars
type AvatarPresigner interface {
	PresignAvatarUpload(ctx context.Context, userID uuid.UUID, contentType string) (*storage.PresignedUpload, error)
}

// UserUsecase handles account management and the public page view
type UserUsecase struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	linkRepo    repositories.LinkRepository
	avatars     AvatarPresigner
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	linkRepo repositories.LinkRepository,
	avatars AvatarPresigner,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		linkRepo:    linkRepo,
		avatars:     avatars,
	}
}

// List lists users with pagination
func (u *UserUsecase) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.userRepo.List(ctx, limit, offset)
}

// GetByID gets a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// Update applies the patchable fields of the input to the user. Each field
// is merged explicitly; nil leaves the stored value untouched.
func (u *UserUsecase) Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != user.Email {
			if taken, err := u.emailTaken(ctx, email, userID); err != nil {
				return nil, err
			} else if taken {
				return nil, domainerrors.NewAppError(http.StatusBadRequest, "email already registered", domainerrors.ErrAlreadyExists)
			}
			user.Email = email
		}
	}
	if input.Username != nil && *input.Username != user.Username {
		if taken, err := u.usernameTaken(ctx, *input.Username, userID); err != nil {
			return nil, err
		} else if taken {
			return nil, domainerrors.NewAppError(http.StatusBadRequest, "username already taken", domainerrors.ErrAlreadyExists)
		}
		user.Username = *input.Username
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. Profile, links and tokens go with it via
// FK cascade.
func (u *UserUsecase) Delete(ctx context.Context, userID uuid.UUID) error {
	return u.userRepo.Delete(ctx, userID)
}

// GetPublicPage assembles the public view of a user's page: identity,
// profile settings and the active links in display order. Private profiles
// are forbidden to everyone.
func (u *UserUsecase) GetPublicPage(ctx context.Context, username string) (*entities.PublicUserPage, error) {
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

	links, err := u.linkRepo.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &entities.PublicUserPage{
		Username:  user.Username,
		FullName:  user.FullName,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Profile:   profile,
		Links:     links,
	}, nil
}

// PresignAvatarUpload returns a presigned PUT URL for the user's avatar and
// stores the resulting public URL on the account
func (u *UserUsecase) PresignAvatarUpload(ctx context.Context, userID uuid.UUID, contentType string) (*storage.PresignedUpload, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	upload, err := u.avatars.PresignAvatarUpload(ctx, userID, contentType)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = upload.PublicURL
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return upload, nil
}

func (u *UserUsecase) emailTaken(ctx context.Context, email string, selfID uuid.UUID) (bool, error) {
	other, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return other.ID != selfID, nil
}

func (u *UserUsecase) usernameTaken(ctx context.Context, username string, selfID uuid.UUID) (bool, error) {
	other, err := u.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return other.ID != selfID, nil
}
