package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/domain/repositories"
	"anonimax.backend/internal/infrastructure/email"
	"anonimax.backend/pkg/crypto"
	"anonimax.backend/pkg/jwt"
	"anonimax.backend/pkg/logger"
	"anonimax.backend/pkg/utils"
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 6
	// maxAnonimaxIDAttempts bounds the collision retry loop
	maxAnonimaxIDAttempts = 10

	msgPasswordTooShort = "A senha deve ter pelo menos 6 caracteres"
	msgGenericReset     = "Se o email existir, você receberá instruções para redefinir sua senha"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	uow           repositories.UnitOfWork
	jwtService    *jwt.JWTService
	emailSender   email.Sender
	frontendURL   string
	resetTokenTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	emailSender email.Sender,
	frontendURL string,
	resetTokenTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		uow:           uow,
		jwtService:    jwtService,
		emailSender:   emailSender,
		frontendURL:   frontendURL,
		resetTokenTTL: resetTokenTTL,
	}
}

// Register creates a user with a unique Anonimax ID and an empty profile,
// both in one transaction, and emails the verification link.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	if len(input.Password) < MinPasswordLength {
		return nil, domainerrors.BadRequest(msgPasswordTooShort)
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("Este email já está cadastrado")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	anonimaxID, err := u.uniqueAnonimaxID(ctx)
	if err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, err := crypto.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:                utils.GenerateUUIDv7(),
		Email:             input.Email,
		PasswordHash:      passwordHash,
		AnonimaxID:        anonimaxID,
		VerificationToken: null.StringFrom(verificationToken),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	profile := &entities.Profile{
		ID:         utils.GenerateUUIDv7(),
		UserID:     user.ID,
		AnonimaxID: anonimaxID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return u.profileRepo.Create(txCtx, profile)
	})
	if err != nil {
		return nil, err
	}

	u.sendAsync(ctx, "verification email", func(sendCtx context.Context) error {
		link := fmt.Sprintf("%s/verify?token=%s", u.frontendURL, verificationToken)
		return u.emailSender.SendVerificationEmail(sendCtx, user.Email, link)
	})

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
		Message:      fmt.Sprintf("Conta criada! Verifique seu email para ativar. Seu Anonimax ID é: %s", anonimaxID),
	}, nil
}

// Login authenticates a user and returns a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// VerifyEmail marks the account verified and clears the token. Verifying an
// already verified account is a no-op.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) (string, error) {
	user, err := u.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.BadRequest("Token de verificação inválido")
		}
		return "", err
	}

	if user.IsVerified {
		return "Email já verificado", nil
	}

	user.IsVerified = true
	user.VerificationToken = null.String{}
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	u.sendAsync(ctx, "welcome email", func(sendCtx context.Context) error {
		return u.emailSender.SendWelcomeEmail(sendCtx, user.Email, user.AnonimaxID)
	})

	return "Email verificado com sucesso!", nil
}

// ForgotPassword issues a reset token with a bounded TTL. The response never
// reveals whether the email is registered.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return msgGenericReset, nil
		}
		return "", err
	}

	resetToken, err := crypto.GenerateVerificationToken()
	if err != nil {
		return "", err
	}

	expires := time.Now().Add(u.resetTokenTTL)
	user.ResetToken = null.StringFrom(resetToken)
	user.ResetTokenExpires = &expires
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	u.sendAsync(ctx, "password reset email", func(sendCtx context.Context) error {
		link := fmt.Sprintf("%s/reset-password?token=%s", u.frontendURL, resetToken)
		return u.emailSender.SendPasswordResetEmail(sendCtx, user.Email, link)
	})

	return msgGenericReset, nil
}

// ResetPassword replaces the password for a valid, unexpired reset token
func (u *AuthUsecase) ResetPassword(ctx context.Context, token, password string) (string, error) {
	user, err := u.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.BadRequest("Token inválido ou expirado")
		}
		return "", err
	}

	if user.ResetTokenExpires != nil && user.ResetTokenExpires.Before(time.Now()) {
		return "", domainerrors.BadRequest("Token expirado")
	}

	if len(password) < MinPasswordLength {
		return "", domainerrors.BadRequest(msgPasswordTooShort)
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return "", err
	}

	user.PasswordHash = passwordHash
	user.ResetToken = null.String{}
	user.ResetTokenExpires = nil
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return "Senha redefinida com sucesso!", nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Me returns the authenticated user
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

func (u *AuthUsecase) uniqueAnonimaxID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAnonimaxIDAttempts; attempt++ {
		id, err := entities.GenerateAnonimaxID()
		if err != nil {
			return "", err
		}
		_, err = u.userRepo.GetByAnonimaxID(ctx, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domainerrors.InternalError(errors.New("exhausted anonimax id attempts"))
}

// sendAsync dispatches an email without blocking or failing the request
func (u *AuthUsecase) sendAsync(ctx context.Context, kind string, send func(ctx context.Context) error) {
	reqID, _ := ctx.Value(string(logger.RequestIDKey)).(string)
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if reqID != "" {
			sendCtx = context.WithValue(sendCtx, logger.RequestIDKey, reqID)
		}
		if err := send(sendCtx); err != nil {
			logger.Error(sendCtx, "failed to send "+kind, zap.Error(err))
		}
	}()
}
