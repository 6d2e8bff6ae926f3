package usecases

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/domain/repositories"
	"anonimax.backend/pkg/utils"
)

// DescriptionMaxLength bounds the profile description
const DescriptionMaxLength = 1000

// evmNetworks are the crypto networks whose payout address must parse as an
// EVM address
var evmNetworks = map[string]bool{
	"polygon":  true,
	"ethereum": true,
	"bsc":      true,
	"base":     true,
}

// ProfileUsecase handles profiles, the public directory and favorites
type ProfileUsecase struct {
	profileRepo  repositories.ProfileRepository
	favoriteRepo repositories.FavoriteRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo repositories.ProfileRepository, favoriteRepo repositories.FavoriteRepository) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo:  profileRepo,
		favoriteRepo: favoriteRepo,
	}
}

// GetMine returns the caller's own profile
func (u *ProfileUsecase) GetMine(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Perfil não encontrado")
		}
		return nil, err
	}
	return profile, nil
}

// UpdateMine applies a partial update to the caller's profile. Fields absent
// from the input are left untouched.
func (u *ProfileUsecase) UpdateMine(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	profile, err := u.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.SessionID != nil {
		profile.SessionID = null.StringFrom(*input.SessionID)
	}
	if input.CryptoNetwork != nil {
		profile.CryptoNetwork = null.StringFrom(*input.CryptoNetwork)
	}
	if input.CryptoAddress != nil {
		profile.CryptoAddress = null.StringFrom(*input.CryptoAddress)
	}
	if input.State != nil {
		profile.State = null.StringFrom(*input.State)
	}
	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > DescriptionMaxLength {
			return nil, domainerrors.BadRequest("Descrição muito longa (máx 1000 caracteres)")
		}
		profile.Description = null.StringFrom(*input.Description)
	}

	if profile.CryptoAddress.Valid && profile.CryptoAddress.String != "" &&
		evmNetworks[strings.ToLower(profile.CryptoNetwork.String)] &&
		!common.IsHexAddress(profile.CryptoAddress.String) {
		return nil, domainerrors.BadRequest("Endereço de carteira inválido")
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListDirectory returns contactable profiles, optionally filtered
func (u *ProfileUsecase) ListDirectory(ctx context.Context, filters entities.ProfileFilters) ([]*entities.Profile, error) {
	return u.profileRepo.ListContactable(ctx, filters)
}

// AddFavorite bookmarks a target Anonimax ID. Each (user, target) pair is
// stored at most once.
func (u *ProfileUsecase) AddFavorite(ctx context.Context, userID uuid.UUID, input *entities.CreateFavoriteInput) (*entities.Favorite, error) {
	if !entities.IsValidAnonimaxID(input.TargetAnonimaxID) {
		return nil, domainerrors.BadRequest("Anonimax ID inválido")
	}

	_, err := u.favoriteRepo.GetByUserAndTarget(ctx, userID, input.TargetAnonimaxID)
	if err == nil {
		return nil, domainerrors.Conflict("Perfil já está nos favoritos")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	favorite := &entities.Favorite{
		ID:                utils.GenerateUUIDv7(),
		UserID:            userID,
		TargetAnonimaxID:  input.TargetAnonimaxID,
		CustomName:        null.StringFromPtr(input.CustomName),
		CustomDescription: null.StringFromPtr(input.CustomDescription),
		CreatedAt:         time.Now(),
	}
	if err := u.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// ListFavorites returns the caller's favorites, each carrying the target's
// current public profile when one exists
func (u *ProfileUsecase) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entities.Favorite, error) {
	favorites, err := u.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, favorite := range favorites {
		profile, err := u.profileRepo.GetByAnonimaxID(ctx, favorite.TargetAnonimaxID)
		if err == nil {
			favorite.TargetProfile = profile
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	return favorites, nil
}

// RemoveFavorite deletes a favorite the caller owns
func (u *ProfileUsecase) RemoveFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	favorite, err := u.favoriteRepo.GetByID(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Favorito não encontrado")
		}
		return err
	}
	if favorite.UserID != userID {
		return domainerrors.NotFound("Favorito não encontrado")
	}
	return u.favoriteRepo.Delete(ctx, favoriteID)
}
