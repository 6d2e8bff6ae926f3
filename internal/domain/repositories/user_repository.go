package repositories

import (
	"context"

	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByAnonimaxID(ctx context.Context, anonimaxID string) (*entities.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entities.User, error)
	GetByResetToken(ctx context.Context, token string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]*entities.User, error)
	CountTotal(ctx context.Context) (int64, error)
	CountVerified(ctx context.Context) (int64, error)
}
