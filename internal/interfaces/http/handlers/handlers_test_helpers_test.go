package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/infrastructure/storage"
)

type userRepoStub struct {
	createFn        func(ctx context.Context, user *entities.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*entities.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*entities.User, error)
	updateFn        func(ctx context.Context, user *entities.User) error
	updateHashFn    func(ctx context.Context, id uuid.UUID, hash string) error
	markVerifiedFn  func(ctx context.Context, id uuid.UUID) error
	setResetSentFn  func(ctx context.Context, id uuid.UUID) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	listFn          func(ctx context.Context, limit, offset int) ([]*entities.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(ctx context.Context, user *entities.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	if s.updateHashFn != nil {
		return s.updateHashFn(ctx, id, hash)
	}
	return nil
}

func (s *userRepoStub) MarkVerified(ctx context.Context, id uuid.UUID) error {
	if s.markVerifiedFn != nil {
		return s.markVerifiedFn(ctx, id)
	}
	return nil
}

func (s *userRepoStub) SetLastPasswordResetSentAt(ctx context.Context, id uuid.UUID) error {
	if s.setResetSentFn != nil {
		return s.setResetSentFn(ctx, id)
	}
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return []*entities.User{}, nil
}

type profileRepoStub struct {
	createFn      func(ctx context.Context, profile *entities.Profile) error
	getByUserFn   func(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	getByDomainFn func(ctx context.Context, domain string) (*entities.Profile, error)
	updateFn      func(ctx context.Context, profile *entities.Profile) error
	deleteFn      func(ctx context.Context, userID uuid.UUID) error
}

func (s *profileRepoStub) Create(ctx context.Context, profile *entities.Profile) error {
	if s.createFn != nil {
		return s.createFn(ctx, profile)
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return nil
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	if s.getByUserFn != nil {
		return s.getByUserFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *profileRepoStub) GetByCustomDomain(ctx context.Context, domain string) (*entities.Profile, error) {
	if s.getByDomainFn != nil {
		return s.getByDomainFn(ctx, domain)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *profileRepoStub) Update(ctx context.Context, profile *entities.Profile) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, profile)
	}
	return nil
}

func (s *profileRepoStub) Delete(ctx context.Context, userID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID)
	}
	return nil
}

type linkRepoStub struct {
	createFn         func(ctx context.Context, link *entities.Link) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*entities.Link, error)
	listByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error)
	listActiveFn     func(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error)
	updateFn         func(ctx context.Context, link *entities.Link) error
	updatePositionFn func(ctx context.Context, userID, linkID uuid.UUID, position int) error
	incrementFn      func(ctx context.Context, id uuid.UUID) (*entities.Link, error)
	deleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (s *linkRepoStub) Create(ctx context.Context, link *entities.Link) error {
	if s.createFn != nil {
		return s.createFn(ctx, link)
	}
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	return nil
}

func (s *linkRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Link, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *linkRepoStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return []*entities.Link{}, nil
}

func (s *linkRepoStub) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx, userID)
	}
	return []*entities.Link{}, nil
}

func (s *linkRepoStub) Update(ctx context.Context, link *entities.Link) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, link)
	}
	return nil
}

func (s *linkRepoStub) UpdatePosition(ctx context.Context, userID, linkID uuid.UUID, position int) error {
	if s.updatePositionFn != nil {
		return s.updatePositionFn(ctx, userID, linkID, position)
	}
	return nil
}

func (s *linkRepoStub) IncrementClickCount(ctx context.Context, id uuid.UUID) (*entities.Link, error) {
	if s.incrementFn != nil {
		return s.incrementFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *linkRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type tokenRepoStub struct {
	createFn           func(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	findActiveFn       func(ctx context.Context, token string) (*entities.SingleUseToken, error)
	findActiveByUserFn func(ctx context.Context, userID uuid.UUID) (*entities.SingleUseToken, error)
	redeemFn           func(ctx context.Context, id uuid.UUID) error
	invalidateFn       func(ctx context.Context, userID uuid.UUID) error
}

func (s *tokenRepoStub) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	if s.createFn != nil {
		return s.createFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (s *tokenRepoStub) FindActive(ctx context.Context, token string) (*entities.SingleUseToken, error) {
	if s.findActiveFn != nil {
		return s.findActiveFn(ctx, token)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *tokenRepoStub) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entities.SingleUseToken, error) {
	if s.findActiveByUserFn != nil {
		return s.findActiveByUserFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *tokenRepoStub) Redeem(ctx context.Context, id uuid.UUID) error {
	if s.redeemFn != nil {
		return s.redeemFn(ctx, id)
	}
	return nil
}

func (s *tokenRepoStub) InvalidateAllUnused(ctx context.Context, userID uuid.UUID) error {
	if s.invalidateFn != nil {
		return s.invalidateFn(ctx, userID)
	}
	return nil
}

// uowStub runs the function without a real transaction
type uowStub struct{}

func (s *uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// countingDispatcher records enqueued emails for assertions
type countingDispatcher struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
}

func (d *countingDispatcher) EnqueueVerification(_ context.Context, _, token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.verifications = append(d.verifications, token)
}

func (d *countingDispatcher) EnqueuePasswordReset(_ context.Context, _, token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets = append(d.resets, token)
}

type presignerStub struct {
	presignFn func(ctx context.Context, userID uuid.UUID, contentType string) (*storage.PresignedUpload, error)
}

func (s *presignerStub) PresignAvatarUpload(ctx context.Context, userID uuid.UUID, contentType string) (*storage.PresignedUpload, error) {
	if s.presignFn != nil {
		return s.presignFn(ctx, userID, contentType)
	}
	return &storage.PresignedUpload{
		UploadURL: "https://bucket.example.com/put",
		Key:       "avatars/" + userID.String() + ".png",
		PublicURL: "https://cdn.example.com/avatars/" + userID.String() + ".png",
		ExpiresIn: 900,
	}, nil
}
