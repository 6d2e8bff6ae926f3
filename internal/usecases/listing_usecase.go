package usecases

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/domain/repositories"
	"anonimax.backend/internal/moderation"
	"anonimax.backend/pkg/utils"
)

const (
	// TitleMinLength and TitleMaxLength bound the listing title
	TitleMinLength = 5
	TitleMaxLength = 200
	// ContentMinLength and ContentMaxLength bound the listing body
	ContentMinLength = 20
	ContentMaxLength = 5000
)

// ListingFee describes the fixed fee charged per listing
type ListingFee struct {
	Amount   float64
	Currency string
	Network  string
	Address  string
}

// ListingUsecase handles the listing lifecycle
type ListingUsecase struct {
	listingRepo repositories.ListingRepository
	paymentRepo repositories.PaymentRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
	fee         ListingFee
}

// NewListingUsecase creates a new listing usecase
func NewListingUsecase(
	listingRepo repositories.ListingRepository,
	paymentRepo repositories.PaymentRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	fee ListingFee,
) *ListingUsecase {
	return &ListingUsecase{
		listingRepo: listingRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		uow:         uow,
		fee:         fee,
	}
}

// CreateListingResult pairs the stored listing with payment instructions
type CreateListingResult struct {
	Listing             *entities.Listing             `json:"listing"`
	Payment             *entities.Payment             `json:"payment"`
	PaymentInstructions *entities.PaymentInstructions `json:"paymentInstructions"`
}

// Create validates and stores a listing together with its pending fee
// payment, in one transaction. Length checks run before moderation so a
// too-short text is reported as such even when it also contains contact info.
func (u *ListingUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateListingInput) (*CreateListingResult, error) {
	titleLen := utf8.RuneCountInString(input.Title)
	if titleLen < TitleMinLength || titleLen > TitleMaxLength {
		return nil, domainerrors.BadRequest("O título deve ter entre 5 e 200 caracteres")
	}
	contentLen := utf8.RuneCountInString(input.Content)
	if contentLen < ContentMinLength || contentLen > ContentMaxLength {
		return nil, domainerrors.BadRequest("O conteúdo deve ter entre 20 e 5000 caracteres")
	}

	issues := moderation.Check(input.Title)
	issues = append(issues, moderation.Check(input.Content)...)
	if len(issues) > 0 {
		return nil, domainerrors.BadRequest("O anúncio contém informações pessoais").WithDetails(issues)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &entities.Listing{
		ID:            utils.GenerateUUIDv7(),
		UserID:        user.ID,
		AnonimaxID:    user.AnonimaxID,
		Title:         input.Title,
		Content:       input.Content,
		Category:      input.Category,
		State:         input.State,
		Status:        entities.ListingStatusPending,
		PaymentStatus: entities.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	payment := &entities.Payment{
		ID:        utils.GenerateUUIDv7(),
		UserID:    user.ID,
		ListingID: &listing.ID,
		Amount:    u.fee.Amount,
		Currency:  u.fee.Currency,
		Network:   u.fee.Network,
		Type:      entities.PaymentTypeListing,
		Status:    entities.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.listingRepo.Create(txCtx, listing); err != nil {
			return err
		}
		return u.paymentRepo.Create(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}

	return &CreateListingResult{
		Listing: listing,
		Payment: payment,
		PaymentInstructions: &entities.PaymentInstructions{
			Amount:   u.fee.Amount,
			Currency: u.fee.Currency,
			Network:  u.fee.Network,
			Address:  u.fee.Address,
			Message:  "Envie o pagamento para o endereço indicado e informe o hash da transação",
		},
	}, nil
}

// SubmitPayment records the transaction hash a user submits as proof of the
// listing fee transfer. Status stays pending until an admin verifies it.
func (u *ListingUsecase) SubmitPayment(ctx context.Context, userID uuid.UUID, input *entities.SubmitPaymentInput) (*entities.Payment, error) {
	if !isEVMTxHash(input.TxHash) {
		return nil, domainerrors.BadRequest("Hash de transação inválido")
	}

	payment, err := u.paymentRepo.GetPendingByListingAndUser(ctx, input.ListingID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Pagamento pendente não encontrado")
		}
		return nil, err
	}

	payment.TxHash = null.StringFrom(input.TxHash)
	if err := u.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListActive returns publicly visible listings
func (u *ListingUsecase) ListActive(ctx context.Context, filters entities.ListingFilters) ([]*entities.Listing, error) {
	return u.listingRepo.ListActive(ctx, filters, time.Now())
}

// MyListings returns the caller's own listings regardless of status
func (u *ListingUsecase) MyListings(ctx context.Context, userID uuid.UUID) ([]*entities.Listing, error) {
	return u.listingRepo.ListByUserID(ctx, userID)
}

// GetDetail returns a listing with its owner's public profile projection.
// An active listing past its expiry is reported as expired without writing.
func (u *ListingUsecase) GetDetail(ctx context.Context, id uuid.UUID) (*entities.ListingDetail, error) {
	listing, err := u.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Anúncio não encontrado")
		}
		return nil, err
	}

	if listing.Status == entities.ListingStatusActive && listing.IsExpired(time.Now()) {
		listing.Status = entities.ListingStatusExpired
	}

	detail := &entities.ListingDetail{Listing: listing}

	profile, err := u.profileRepo.GetByAnonimaxID(ctx, listing.AnonimaxID)
	if err == nil {
		detail.Profile = profile
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

// isEVMTxHash reports whether s is a 0x-prefixed 32-byte hex hash
func isEVMTxHash(s string) bool {
	decoded, err := hexutil.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == common.HashLength
}
