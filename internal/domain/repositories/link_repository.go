package repositories

import (
	"context"

	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
)

// LinkRepository defines link data operations
type LinkRepository interface {
	Create(ctx context.Context, link *entities.Link) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Link, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error)
	Update(ctx context.Context, link *entities.Link) error
	UpdatePosition(ctx context.Context, userID, linkID uuid.UUID, position int) error
	IncrementClickCount(ctx context.Context, id uuid.UUID) (*entities.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
