package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
)

// ListingRepository defines listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *entities.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error)
	Update(ctx context.Context, listing *entities.Listing) error
	ListActive(ctx context.Context, filters entities.ListingFilters, now time.Time) ([]*entities.Listing, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Listing, error)
	ListAll(ctx context.Context, status string, limit int) ([]*entities.Listing, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	CountTotal(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.ListingStatus) (int64, error)
}
