package repositories

import (
	"context"

	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	GetByAnonimaxID(ctx context.Context, anonimaxID string) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	ListContactable(ctx context.Context, filters entities.ProfileFilters) ([]*entities.Profile, error)
}

// FavoriteRepository defines favorite data operations
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entities.Favorite) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Favorite, error)
	GetByUserAndTarget(ctx context.Context, userID uuid.UUID, targetAnonimaxID string) (*entities.Favorite, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
