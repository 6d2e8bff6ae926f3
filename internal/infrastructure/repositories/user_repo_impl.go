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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetByAnonimaxID gets a user by its pseudonymous ID
func (r *UserRepository) GetByAnonimaxID(ctx context.Context, anonimaxID string) (*entities.User, error) {
	return r.getOne(ctx, "anonimax_id = ?", anonimaxID)
}

// GetByVerificationToken gets a user holding the given verification token
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	return r.getOne(ctx, "verification_token = ?", token)
}

// GetByResetToken gets a user holding the given password reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entities.User, error) {
	return r.getOne(ctx, "reset_token = ?", token)
}

// Update persists all mutable user fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"email":               user.Email,
		"password_hash":       user.PasswordHash,
		"is_verified":         user.IsVerified,
		"is_admin":            user.IsAdmin,
		"verification_token":  user.VerificationToken.Ptr(),
		"reset_token":         user.ResetToken.Ptr(),
		"reset_token_expires": user.ResetTokenExpires,
		"updated_at":          time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a user row
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users, newest first
func (r *UserRepository) List(ctx context.Context, limit int) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// CountTotal counts all users
func (r *UserRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountVerified counts verified users
func (r *UserRepository) CountVerified(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepository) getOne(ctx context.Context, cond string, arg interface{}) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

func userToModel(u *entities.User) *models.User {
	return &models.User{
		ID:                u.ID,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		AnonimaxID:        u.AnonimaxID,
		IsVerified:        u.IsVerified,
		IsAdmin:           u.IsAdmin,
		VerificationToken: u.VerificationToken.Ptr(),
		ResetToken:        u.ResetToken.Ptr(),
		ResetTokenExpires: u.ResetTokenExpires,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                m.ID,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		AnonimaxID:        m.AnonimaxID,
		IsVerified:        m.IsVerified,
		IsAdmin:           m.IsAdmin,
		VerificationToken: null.StringFromPtr(m.VerificationToken),
		ResetToken:        null.StringFromPtr(m.ResetToken),
		ResetTokenExpires: m.ResetTokenExpires,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
