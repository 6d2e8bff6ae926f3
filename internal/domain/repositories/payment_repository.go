package repositories

import (
	"context"

	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	GetPendingByListingAndUser(ctx context.Context, listingID, userID uuid.UUID) (*entities.Payment, error)
	Update(ctx context.Context, payment *entities.Payment) error
	ListAll(ctx context.Context, filters entities.PaymentFilters) ([]*entities.Payment, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	CountByStatus(ctx context.Context, status entities.PaymentStatus) (int64, error)
	SumVerifiedAmount(ctx context.Context) (float64, error)
}
