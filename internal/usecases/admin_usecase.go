package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/domain/repositories"
	"anonimax.backend/pkg/crypto"
	"anonimax.backend/pkg/jwt"
)

// adminListLimit caps admin listing queries
const adminListLimit = 100

// AdminUsecase handles the admin oversight surface
type AdminUsecase struct {
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	listingRepo    repositories.ListingRepository
	paymentRepo    repositories.PaymentRepository
	favoriteRepo   repositories.FavoriteRepository
	uow            repositories.UnitOfWork
	jwtService     *jwt.JWTService
	activeDuration time.Duration
	// approveRequiresPayment blocks direct listing approval while the fee
	// payment is unverified
	approveRequiresPayment bool
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	listingRepo repositories.ListingRepository,
	paymentRepo repositories.PaymentRepository,
	favoriteRepo repositories.FavoriteRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	activeDuration time.Duration,
	approveRequiresPayment bool,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:               userRepo,
		profileRepo:            profileRepo,
		listingRepo:            listingRepo,
		paymentRepo:            paymentRepo,
		favoriteRepo:           favoriteRepo,
		uow:                    uow,
		jwtService:             jwtService,
		activeDuration:         activeDuration,
		approveRequiresPayment: approveRequiresPayment,
	}
}

// Login authenticates an administrator against the users table
func (u *AdminUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsAdmin || !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, true)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
		Message:      "Login admin realizado",
	}, nil
}

// Stats aggregates the dashboard counters
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.AdminStats, error) {
	stats := &entities.AdminStats{}
	var err error

	if stats.Users.Total, err = u.userRepo.CountTotal(ctx); err != nil {
		return nil, err
	}
	if stats.Users.Verified, err = u.userRepo.CountVerified(ctx); err != nil {
		return nil, err
	}
	if stats.Listings.Total, err = u.listingRepo.CountTotal(ctx); err != nil {
		return nil, err
	}
	if stats.Listings.Active, err = u.listingRepo.CountByStatus(ctx, entities.ListingStatusActive); err != nil {
		return nil, err
	}
	if stats.Listings.Pending, err = u.listingRepo.CountByStatus(ctx, entities.ListingStatusPending); err != nil {
		return nil, err
	}
	if stats.Payments.Pending, err = u.paymentRepo.CountByStatus(ctx, entities.PaymentStatusPending); err != nil {
		return nil, err
	}
	if stats.Payments.Verified, err = u.paymentRepo.CountByStatus(ctx, entities.PaymentStatusVerified); err != nil {
		return nil, err
	}
	if stats.Payments.Revenue, err = u.paymentRepo.SumVerifiedAmount(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListUsers returns the newest users
func (u *AdminUsecase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx, adminListLimit)
}

// ListListings returns the newest listings, optionally filtered by status
func (u *AdminUsecase) ListListings(ctx context.Context, status string) ([]*entities.Listing, error) {
	return u.listingRepo.ListAll(ctx, status, adminListLimit)
}

// ListPayments returns the newest payments, optionally filtered by status
func (u *AdminUsecase) ListPayments(ctx context.Context, status string) ([]*entities.Payment, error) {
	return u.paymentRepo.ListAll(ctx, entities.PaymentFilters{Status: status, Limit: adminListLimit})
}

// VerifyPayment resolves a payment. Verification activates the linked
// listing with a fresh expiry; rejection only flags the listing's
// payment_status and never touches its visibility.
func (u *AdminUsecase) VerifyPayment(ctx context.Context, paymentID uuid.UUID, action string) (string, error) {
	if action != "verify" && action != "reject" {
		return "", domainerrors.BadRequest("Ação inválida")
	}

	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("Pagamento não encontrado")
		}
		return "", err
	}

	var message string
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		now := time.Now()
		var listing *entities.Listing
		if payment.ListingID != nil {
			l, err := u.listingRepo.GetByID(txCtx, *payment.ListingID)
			if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}
			listing = l
		}

		switch action {
		case "verify":
			payment.Status = entities.PaymentStatusVerified
			payment.VerifiedAt = &now
			if listing != nil {
				expires := now.Add(u.activeDuration)
				listing.Status = entities.ListingStatusActive
				listing.PaymentStatus = entities.PaymentStatusVerified
				listing.ExpiresAt = &expires
			}
			message = "Pagamento verificado e anúncio ativado"
		case "reject":
			payment.Status = entities.PaymentStatusRejected
			if listing != nil {
				listing.PaymentStatus = entities.PaymentStatusRejected
			}
			message = "Pagamento rejeitado"
		}

		if err := u.paymentRepo.Update(txCtx, payment); err != nil {
			return err
		}
		if listing != nil {
			return u.listingRepo.Update(txCtx, listing)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// ListingAction approves or rejects a listing directly
func (u *AdminUsecase) ListingAction(ctx context.Context, listingID uuid.UUID, action string) (string, error) {
	if action != "approve" && action != "reject" {
		return "", domainerrors.BadRequest("Ação inválida")
	}

	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("Anúncio não encontrado")
		}
		return "", err
	}

	var message string
	switch action {
	case "approve":
		if u.approveRequiresPayment && listing.PaymentStatus != entities.PaymentStatusVerified {
			return "", domainerrors.Conflict("Pagamento do anúncio ainda não foi verificado")
		}
		expires := time.Now().Add(u.activeDuration)
		listing.Status = entities.ListingStatusActive
		listing.ExpiresAt = &expires
		message = "Anúncio aprovado"
	case "reject":
		listing.Status = entities.ListingStatusRejected
		message = "Anúncio rejeitado"
	}

	if err := u.listingRepo.Update(ctx, listing); err != nil {
		return "", err
	}
	return message, nil
}

// DeleteUser removes a user and everything attached to it in one transaction
func (u *AdminUsecase) DeleteUser(ctx context.Context, userID uuid.UUID) (string, error) {
	_, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("Usuário não encontrado")
		}
		return "", err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.favoriteRepo.DeleteByUserID(txCtx, userID); err != nil {
			return err
		}
		if err := u.paymentRepo.DeleteByUserID(txCtx, userID); err != nil {
			return err
		}
		if err := u.listingRepo.DeleteByUserID(txCtx, userID); err != nil {
			return err
		}
		if err := u.profileRepo.DeleteByUserID(txCtx, userID); err != nil {
			return err
		}
		return u.userRepo.Delete(txCtx, userID)
	})
	if err != nil {
		return "", err
	}
	return "Usuário excluído com sucesso", nil
}
