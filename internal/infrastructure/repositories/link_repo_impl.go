package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/infrastructure/models"
)

// LinkRepository implements link data operations
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Create creates a new link
func (r *LinkRepository) Create(ctx context.Context, link *entities.Link) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	m := &models.Link{
		ID:             link.ID,
		UserID:         link.UserID,
		LinkType:       string(link.LinkType),
		SocialPlatform: string(link.SocialPlatform),
		Title:          link.Title,
		URL:            link.URL,
		Description:    link.Description,
		ThumbnailURL:   link.ThumbnailURL,
		Position:       link.Position,
		IsActive:       link.IsActive,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	link.CreatedAt = m.CreatedAt
	link.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a link by ID
func (r *LinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Link, error) {
	var m models.Link
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return linkToEntity(&m), nil
}

// ListByUser lists all links of a user ordered by position
func (r *LinkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error) {
	return r.list(ctx, GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID))
}

// ListActiveByUser lists only the active links of a user ordered by position
func (r *LinkRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Link, error) {
	return r.list(ctx, GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true))
}

func (r *LinkRepository) list(_ context.Context, query *gorm.DB) ([]*entities.Link, error) {
	var linkModels []models.Link
	if err := query.Order("position ASC").Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]*entities.Link, 0, len(linkModels))
	for i := range linkModels {
		links = append(links, linkToEntity(&linkModels[i]))
	}
	return links, nil
}

// Update updates a link
func (r *LinkRepository) Update(ctx context.Context, link *entities.Link) error {
	updates := map[string]interface{}{
		"link_type":       string(link.LinkType),
		"social_platform": string(link.SocialPlatform),
		"title":           link.Title,
		"url":             link.URL,
		"description":     link.Description,
		"thumbnail_url":   link.ThumbnailURL,
		"position":        link.Position,
		"is_active":       link.IsActive,
		"updated_at":      time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Link{}).Where("id = ?", link.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePosition moves one link of a user to a new position. Links of
// other users are never touched.
func (r *LinkRepository) UpdatePosition(ctx context.Context, userID, linkID uuid.UUID, position int) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Link{}).
		Where("id = ? AND user_id = ?", linkID, userID).
		Updates(map[string]interface{}{
			"position":   position,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementClickCount bumps the click counter atomically and returns the
// updated link
func (r *LinkRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) (*entities.Link, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	result := db.Model(&models.Link{}).
		Where("id = ?", id).
		Update("click_count", gorm.Expr("click_count + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a link
func (r *LinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Link{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func linkToEntity(m *models.Link) *entities.Link {
	return &entities.Link{
		ID:             m.ID,
		UserID:         m.UserID,
		LinkType:       entities.LinkType(m.LinkType),
		SocialPlatform: entities.SocialPlatform(m.SocialPlatform),
		Title:          m.Title,
		URL:            m.URL,
		Description:    m.Description,
		ThumbnailURL:   m.ThumbnailURL,
		Position:       m.Position,
		IsActive:       m.IsActive,
		ClickCount:     m.ClickCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
