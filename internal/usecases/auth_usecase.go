package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/domain/repositories"
	"linkpage.backend/pkg/crypto"
	"linkpage.backend/pkg/jwt"
	"linkpage.backend/pkg/logger"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
	resetRateLimitWindow = 5 * time.Minute
)

// timeNow is a seam for tests
var timeNow = time.Now

// MailDispatcher queues outbound account emails. Enqueueing must not block
// the caller; delivery happens in the background.
type MailDispatcher interface {
	EnqueueVerification(ctx context.Context, to, token string)
	EnqueuePasswordReset(ctx context.Context, to, token string)
}

// AuthUsecase handles the credential lifecycle: registration, login,
// refresh rotation, email verification and password reset.
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	verifyRepo  repositories.SingleUseTokenRepository
	resetRepo   repositories.SingleUseTokenRepository
	uow         repositories.UnitOfWork
	jwtService  *jwt.JWTService
	mail        MailDispatcher
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	verifyRepo repositories.SingleUseTokenRepository,
	resetRepo repositories.SingleUseTokenRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	mail MailDispatcher,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		verifyRepo:  verifyRepo,
		resetRepo:   resetRepo,
		uow:         uow,
		jwtService:  jwtService,
		mail:        mail,
	}
}

// NormalizeEmail lowercases an email address. Uniqueness and lookups are
// case-insensitive for emails, case-sensitive for usernames.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified user together with its default profile,
// then issues a verification token and queues the verification email. The
// email is best-effort: the account exists even if it never arrives.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	email := NormalizeEmail(input.Email)

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.NewAppError(http.StatusBadRequest, "email already registered", domainerrors.ErrAlreadyExists)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	_, err = u.userRepo.GetByUsername(ctx, input.Username)
	if err == nil {
		return nil, domainerrors.NewAppError(http.StatusBadRequest, "username already taken", domainerrors.ErrAlreadyExists)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		Bio:          input.Bio,
	}

	token, err := crypto.GenerateSingleUseToken()
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := u.profileRepo.Create(txCtx, entities.NewDefaultProfile(user.ID)); err != nil {
			return err
		}
		return u.verifyRepo.Create(txCtx, user.ID, token, timeNow().Add(verificationTokenTTL))
	})
	if err != nil {
		// The availability checks above race with concurrent signups. When
		// the unique index fires anyway, report the same duplicate error the
		// checks would have raised.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			if _, lookupErr := u.userRepo.GetByEmail(ctx, email); lookupErr == nil {
				return nil, domainerrors.NewAppError(http.StatusBadRequest, "email already registered", domainerrors.ErrAlreadyExists)
			}
			return nil, domainerrors.NewAppError(http.StatusBadRequest, "username already taken", domainerrors.ErrAlreadyExists)
		}
		return nil, err
	}

	u.mail.EnqueueVerification(ctx, user.Email, token)
	return user, nil
}

// Login verifies credentials and issues a token pair. User-not-found and
// wrong-password collapse into one generic error.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*jwt.TokenPair, *entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	// A deactivated account fails the same way as bad credentials so the
	// login endpoint never confirms the account exists.
	if !user.IsActive {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates the token pair. The old refresh token stays valid until
// its own expiry; rotation without a denylist cannot revoke it.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	return u.jwtService.GenerateTokenPair(claims.UserID, claims.Subject)
}

// GetUserByID returns the user for an authenticated request. Tokens issued
// before an account was deactivated stay verifiable, so the flag has to be
// checked here when the current user is resolved.
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.Forbidden("account is deactivated")
	}
	return user, nil
}

// IsEmailAvailable reports whether no account uses the email
func (u *AuthUsecase) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := u.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domainerrors.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// IsUsernameAvailable reports whether no account uses the username
func (u *AuthUsecase) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := u.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// VerifyEmail redeems a verification token and marks the user verified in
// one transaction. The conditional redeem makes a concurrent double spend
// roll the whole thing back.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	record, err := u.verifyRepo.FindActive(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.MarkVerified(txCtx, record.UserID); err != nil {
			return err
		}
		return u.verifyRepo.Redeem(txCtx, record.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}

// ResendVerification invalidates the user's outstanding verification tokens,
// issues a fresh one and queues the email
func (u *AuthUsecase) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return domainerrors.Forbidden("account is deactivated")
	}
	if user.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}

	token, err := crypto.GenerateSingleUseToken()
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.verifyRepo.InvalidateAllUnused(txCtx, user.ID); err != nil {
			return err
		}
		return u.verifyRepo.Create(txCtx, user.ID, token, timeNow().Add(verificationTokenTTL))
	})
	if err != nil {
		return err
	}

	u.mail.EnqueueVerification(ctx, user.Email, token)
	return nil
}

// ForgotPassword starts a password reset. It never reveals whether the
// email exists. With a still-valid token it resends the same token string,
// unless the last send was inside the rate-limit window, in which case
// nothing happens at all.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// same outward behavior as a successful request
			return nil
		}
		return err
	}

	existing, err := u.resetRepo.FindActiveByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	now := timeNow()
	if existing != nil {
		if user.LastPasswordResetSentAt.Valid && now.Sub(user.LastPasswordResetSentAt.Time) < resetRateLimitWindow {
			logger.Debug(ctx, "password reset throttled", zap.String("user_id", user.ID.String()))
			return nil
		}
		if err := u.userRepo.SetLastPasswordResetSentAt(ctx, user.ID); err != nil {
			return err
		}
		u.mail.EnqueuePasswordReset(ctx, user.Email, existing.Token)
		return nil
	}

	token, err := crypto.GenerateSingleUseToken()
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.resetRepo.InvalidateAllUnused(txCtx, user.ID); err != nil {
			return err
		}
		if err := u.resetRepo.Create(txCtx, user.ID, token, now.Add(resetTokenTTL)); err != nil {
			return err
		}
		return u.userRepo.SetLastPasswordResetSentAt(txCtx, user.ID)
	})
	if err != nil {
		return err
	}

	u.mail.EnqueuePasswordReset(ctx, user.Email, token)
	return nil
}

// ResetPassword stores the new password hash and redeems the reset token in
// one transaction
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	record, err := u.resetRepo.FindActive(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.UpdatePasswordHash(txCtx, record.UserID, hash); err != nil {
			return err
		}
		return u.resetRepo.Redeem(txCtx, record.ID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}
