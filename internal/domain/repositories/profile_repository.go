package repositories

import (
	"context"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	GetByCustomDomain(ctx context.Context, domain string) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
