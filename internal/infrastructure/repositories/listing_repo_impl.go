package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/infrastructure/models"
)

// ListingRepository implements listing data operations
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create creates a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	m := listingToModel(listing)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a listing by ID
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	var m models.Listing
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return listingToEntity(&m), nil
}

// Update persists all mutable listing fields
func (r *ListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	updates := map[string]interface{}{
		"title":          listing.Title,
		"content":        listing.Content,
		"category":       listing.Category,
		"state":          listing.State,
		"status":         string(listing.Status),
		"payment_status": string(listing.PaymentStatus),
		"expires_at":     listing.ExpiresAt,
		"updated_at":     time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listing.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListActive lists publicly visible listings: status active and not past
// expiry. Search is applied in memory so the match is case-insensitive
// regardless of database collation.
func (r *ListingRepository) ListActive(ctx context.Context, filters entities.ListingFilters, now time.Time) ([]*entities.Listing, error) {
	var listingModels []models.Listing
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ?", string(entities.ListingStatusActive)).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC")

	if filters.State != "" {
		query = query.Where("state = ?", filters.State)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Skip > 0 {
		query = query.Offset(filters.Skip)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	listings := make([]*entities.Listing, 0, len(listingModels))
	search := strings.ToLower(filters.Search)
	for i := range listingModels {
		listing := listingToEntity(&listingModels[i])
		if search != "" &&
			!strings.Contains(strings.ToLower(listing.Title), search) &&
			!strings.Contains(strings.ToLower(listing.Content), search) {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ListByUserID lists a user's own listings regardless of status, newest first
func (r *ListingRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Listing, error) {
	var listingModels []models.Listing
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&listingModels).Error
	if err != nil {
		return nil, err
	}

	listings := make([]*entities.Listing, 0, len(listingModels))
	for i := range listingModels {
		listings = append(listings, listingToEntity(&listingModels[i]))
	}
	return listings, nil
}

// ListAll lists listings for the admin surface, newest first
func (r *ListingRepository) ListAll(ctx context.Context, status string, limit int) ([]*entities.Listing, error) {
	var listingModels []models.Listing
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	listings := make([]*entities.Listing, 0, len(listingModels))
	for i := range listingModels {
		listings = append(listings, listingToEntity(&listingModels[i]))
	}
	return listings, nil
}

// DeleteByUserID removes all of a user's listings
func (r *ListingRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Listing{}, "user_id = ?", userID).Error
}

// CountTotal counts all listings
func (r *ListingRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Listing{}).Count(&count).Error
	return count, err
}

// CountByStatus counts listings in the given status
func (r *ListingRepository) CountByStatus(ctx context.Context, status entities.ListingStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Listing{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func listingToModel(l *entities.Listing) *models.Listing {
	return &models.Listing{
		ID:            l.ID,
		UserID:        l.UserID,
		AnonimaxID:    l.AnonimaxID,
		Title:         l.Title,
		Content:       l.Content,
		Category:      l.Category,
		State:         l.State,
		Status:        string(l.Status),
		PaymentStatus: string(l.PaymentStatus),
		ExpiresAt:     l.ExpiresAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func listingToEntity(m *models.Listing) *entities.Listing {
	return &entities.Listing{
		ID:            m.ID,
		UserID:        m.UserID,
		AnonimaxID:    m.AnonimaxID,
		Title:         m.Title,
		Content:       m.Content,
		Category:      m.Category,
		State:         m.State,
		Status:        entities.ListingStatus(m.Status),
		PaymentStatus: entities.PaymentStatus(m.PaymentStatus),
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
