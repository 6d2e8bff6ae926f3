package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := paymentToModel(payment)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// GetPendingByListingAndUser gets the pending payment a user owes for a listing
func (r *PaymentRepository) GetPendingByListingAndUser(ctx context.Context, listingID, userID uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("listing_id = ? AND user_id = ? AND status = ?", listingID, userID, string(entities.PaymentStatusPending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// Update persists all mutable payment fields
func (r *PaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	updates := map[string]interface{}{
		"status":      string(payment.Status),
		"tx_hash":     payment.TxHash.Ptr(),
		"verified_at": payment.VerifiedAt,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListAll lists payments for the admin surface, newest first
func (r *PaymentRepository) ListAll(ctx context.Context, filters entities.PaymentFilters) ([]*entities.Payment, error) {
	var paymentModels []models.Payment
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*entities.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentToEntity(&paymentModels[i]))
	}
	return payments, nil
}

// DeleteByUserID removes all of a user's payments
func (r *PaymentRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Payment{}, "user_id = ?", userID).Error
}

// CountByStatus counts payments in the given status
func (r *PaymentRepository) CountByStatus(ctx context.Context, status entities.PaymentStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payment{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// SumVerifiedAmount sums the amounts of all verified payments
func (r *PaymentRepository) SumVerifiedAmount(ctx context.Context) (float64, error) {
	var total *float64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("status = ?", string(entities.PaymentStatusVerified)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func paymentToModel(p *entities.Payment) *models.Payment {
	return &models.Payment{
		ID:         p.ID,
		UserID:     p.UserID,
		ListingID:  p.ListingID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Network:    p.Network,
		Type:       string(p.Type),
		Status:     string(p.Status),
		TxHash:     p.TxHash.Ptr(),
		VerifiedAt: p.VerifiedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:         m.ID,
		UserID:     m.UserID,
		ListingID:  m.ListingID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Network:    m.Network,
		Type:       entities.PaymentType(m.Type),
		Status:     entities.PaymentStatus(m.Status),
		TxHash:     null.StringFromPtr(m.TxHash),
		VerifiedAt: m.VerifiedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
