package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/infrastructure/models"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	m := &models.Profile{
		ID:              profile.ID,
		UserID:          profile.UserID,
		PageTitle:       profile.PageTitle,
		Theme:           profile.Theme,
		BackgroundColor: profile.BackgroundColor,
		TextColor:       profile.TextColor,
		ButtonStyle:     profile.ButtonStyle,
		MetaDescription: profile.MetaDescription,
		CustomDomain:    profile.CustomDomain.Ptr(),
		IsPublic:        profile.IsPublic,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	profile.CreatedAt = m.CreatedAt
	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID gets the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return profileToEntity(&m), nil
}

// GetByCustomDomain gets a profile by its custom domain
func (r *ProfileRepository) GetByCustomDomain(ctx context.Context, domain string) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("custom_domain = ?", domain).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return profileToEntity(&m), nil
}

// Update updates a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	updates := map[string]interface{}{
		"page_title":       profile.PageTitle,
		"theme":            profile.Theme,
		"background_color": profile.BackgroundColor,
		"text_color":       profile.TextColor,
		"button_style":     profile.ButtonStyle,
		"meta_description": profile.MetaDescription,
		"custom_domain":    profile.CustomDomain.Ptr(),
		"is_public":        profile.IsPublic,
		"updated_at":       time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profile.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the profile owned by a user
func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Profile{}, "user_id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func profileToEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		ID:              m.ID,
		UserID:          m.UserID,
		PageTitle:       m.PageTitle,
		Theme:           m.Theme,
		BackgroundColor: m.BackgroundColor,
		TextColor:       m.TextColor,
		ButtonStyle:     m.ButtonStyle,
		MetaDescription: m.MetaDescription,
		CustomDomain:    null.StringFromPtr(m.CustomDomain),
		IsPublic:        m.IsPublic,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
