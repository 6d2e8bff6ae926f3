package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/infrastructure/models"
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
	m := profileToModel(profile)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByUserID gets a profile by its owner's user ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return r.getOne(ctx, "user_id = ?", userID)
}

// GetByAnonimaxID gets a profile by pseudonymous ID
func (r *ProfileRepository) GetByAnonimaxID(ctx context.Context, anonimaxID string) (*entities.Profile, error) {
	return r.getOne(ctx, "anonimax_id = ?", anonimaxID)
}

// Update persists all mutable profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	updates := map[string]interface{}{
		"session_id":     profile.SessionID.Ptr(),
		"crypto_address": profile.CryptoAddress.Ptr(),
		"crypto_network": profile.CryptoNetwork.Ptr(),
		"state":          profile.State.Ptr(),
		"description":    profile.Description.Ptr(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", profile.UserID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes a user's profile
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Profile{}, "user_id = ?", userID).Error
}

// ListContactable lists profiles that expose a session ID, newest first
func (r *ProfileRepository) ListContactable(ctx context.Context, filters entities.ProfileFilters) ([]*entities.Profile, error) {
	var profileModels []models.Profile
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("session_id IS NOT NULL AND session_id <> ''").
		Order("created_at DESC")

	if filters.State != "" {
		query = query.Where("state = ?", filters.State)
	}
	if filters.Search != "" {
		searchTerm := "%" + filters.Search + "%"
		query = query.Where("anonimax_id LIKE ? OR description LIKE ?", searchTerm, searchTerm)
	}
	if filters.Skip > 0 {
		query = query.Offset(filters.Skip)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entities.Profile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, profileToEntity(&profileModels[i]))
	}
	return profiles, nil
}

func (r *ProfileRepository) getOne(ctx context.Context, cond string, arg interface{}) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return profileToEntity(&m), nil
}

func profileToModel(p *entities.Profile) *models.Profile {
	return &models.Profile{
		ID:            p.ID,
		UserID:        p.UserID,
		AnonimaxID:    p.AnonimaxID,
		SessionID:     p.SessionID.Ptr(),
		CryptoAddress: p.CryptoAddress.Ptr(),
		CryptoNetwork: p.CryptoNetwork.Ptr(),
		State:         p.State.Ptr(),
		Description:   p.Description.Ptr(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func profileToEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		ID:            m.ID,
		UserID:        m.UserID,
		AnonimaxID:    m.AnonimaxID,
		SessionID:     null.StringFromPtr(m.SessionID),
		CryptoAddress: null.StringFromPtr(m.CryptoAddress),
		CryptoNetwork: null.StringFromPtr(m.CryptoNetwork),
		State:         null.StringFromPtr(m.State),
		Description:   null.StringFromPtr(m.Description),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
