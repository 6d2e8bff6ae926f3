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

// FavoriteRepository implements favorite data operations
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create creates a new favorite
func (r *FavoriteRepository) Create(ctx context.Context, favorite *entities.Favorite) error {
	m := &models.Favorite{
		ID:                favorite.ID,
		UserID:            favorite.UserID,
		TargetAnonimaxID:  favorite.TargetAnonimaxID,
		CustomName:        favorite.CustomName.Ptr(),
		CustomDescription: favorite.CustomDescription.Ptr(),
		CreatedAt:         favorite.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a favorite by ID
func (r *FavoriteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Favorite, error) {
	var m models.Favorite
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return favoriteToEntity(&m), nil
}

// GetByUserAndTarget gets the favorite a user holds for a target, if any
func (r *FavoriteRepository) GetByUserAndTarget(ctx context.Context, userID uuid.UUID, targetAnonimaxID string) (*entities.Favorite, error) {
	var m models.Favorite
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND target_anonimax_id = ?", userID, targetAnonimaxID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return favoriteToEntity(&m), nil
}

// ListByUserID lists a user's favorites, newest first
func (r *FavoriteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Favorite, error) {
	var favoriteModels []models.Favorite
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoriteModels).Error
	if err != nil {
		return nil, err
	}

	favorites := make([]*entities.Favorite, 0, len(favoriteModels))
	for i := range favoriteModels {
		favorites = append(favorites, favoriteToEntity(&favoriteModels[i]))
	}
	return favorites, nil
}

// Delete removes a favorite
func (r *FavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Favorite{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes all of a user's favorites
func (r *FavoriteRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Favorite{}, "user_id = ?", userID).Error
}

func favoriteToEntity(m *models.Favorite) *entities.Favorite {
	return &entities.Favorite{
		ID:                m.ID,
		UserID:            m.UserID,
		TargetAnonimaxID:  m.TargetAnonimaxID,
		CustomName:        null.StringFromPtr(m.CustomName),
		CustomDescription: null.StringFromPtr(m.CustomDescription),
		CreatedAt:         m.CreatedAt,
	}
}
