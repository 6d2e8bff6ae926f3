package usecases_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"anonimax.backend/internal/domain/entities"
	domainerrors "anonimax.backend/internal/domain/errors"
	"anonimax.backend/internal/usecases"
	"anonimax.backend/pkg/crypto"
	"anonimax.backend/pkg/jwt"
)

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
}

func newAuthUsecase(userRepo *MockUserRepository, profileRepo *MockProfileRepository, uow *MockUnitOfWork, sender *MockEmailSender) *usecases.AuthUsecase {
	return usecases.NewAuthUsecase(userRepo, profileRepo, uow, newTestJWTService(), sender, "https://app.anonimax.com", time.Hour)
}

func TestAuthUsecase_Register_PasswordTooShort(t *testing.T) {
	uc := newAuthUsecase(new(MockUserRepository), new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))

	_, err := uc.Register(context.Background(), &entities.RegisterInput{Email: "a@b.com", Password: "12345"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "A senha deve ter pelo menos 6 caracteres", appErr.Message)
}

func TestAuthUsecase_Register_EmailAlreadyExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "dup@b.com").Return(&entities.User{ID: uuid.New()}, nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	_, err := uc.Register(context.Background(), &entities.RegisterInput{Email: "dup@b.com", Password: "123456"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "Este email já está cadastrado", appErr.Message)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	uow := new(MockUnitOfWork)
	sender := new(MockEmailSender)

	userRepo.On("GetByEmail", mock.Anything, "new@b.com").Return(nil, domainerrors.ErrNotFound)
	userRepo.On("GetByAnonimaxID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).Return(nil)
	profileRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Profile")).Return(nil)
	sender.On("SendVerificationEmail", mock.Anything, "new@b.com", mock.Anything).Return(nil).Maybe()

	uc := newAuthUsecase(userRepo, profileRepo, uow, sender)
	resp, err := uc.Register(context.Background(), &entities.RegisterInput{Email: "new@b.com", Password: "123456"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, entities.IsValidAnonimaxID(resp.User.AnonimaxID))
	assert.Contains(t, resp.Message, resp.User.AnonimaxID)
	assert.True(t, resp.User.VerificationToken.Valid)
	assert.False(t, resp.User.IsVerified)

	userRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entities.User"))
	profileRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entities.Profile"))
}

func TestAuthUsecase_Register_RetriesOnAnonimaxIDCollision(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	uow := new(MockUnitOfWork)
	sender := new(MockEmailSender)

	userRepo.On("GetByEmail", mock.Anything, "new@b.com").Return(nil, domainerrors.ErrNotFound)
	// first draw collides, second one is free
	userRepo.On("GetByAnonimaxID", mock.Anything, mock.Anything).Return(&entities.User{ID: uuid.New()}, nil).Once()
	userRepo.On("GetByAnonimaxID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	profileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	sender.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	uc := newAuthUsecase(userRepo, profileRepo, uow, sender)
	resp, err := uc.Register(context.Background(), &entities.RegisterInput{Email: "new@b.com", Password: "123456"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	userRepo.AssertNumberOfCalls(t, "GetByAnonimaxID", 2)
}

func TestAuthUsecase_Login(t *testing.T) {
	hash, err := crypto.HashPassword("correct-password")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "ana@b.com", PasswordHash: hash, AnonimaxID: "ANX-AB12-CD34"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "ana@b.com").Return(user, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@b.com").Return(nil, domainerrors.ErrNotFound)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))

	// unknown email and wrong password yield the same error
	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "ghost@b.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "ana@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: "ana@b.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthUsecase_VerifyEmail(t *testing.T) {
	user := &entities.User{
		ID:                uuid.New(),
		Email:             "ana@b.com",
		AnonimaxID:        "ANX-AB12-CD34",
		VerificationToken: null.StringFrom("tok"),
	}
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	userRepo.On("GetByVerificationToken", mock.Anything, "tok").Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.IsVerified && !u.VerificationToken.Valid
	})).Return(nil)
	sender.On("SendWelcomeEmail", mock.Anything, "ana@b.com", "ANX-AB12-CD34").Return(nil).Maybe()

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), sender)
	msg, err := uc.VerifyEmail(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "Email verificado com sucesso!", msg)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_VerifyEmail_InvalidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByVerificationToken", mock.Anything, "bad").Return(nil, domainerrors.ErrNotFound)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	_, err := uc.VerifyEmail(context.Background(), "bad")

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Token de verificação inválido", appErr.Message)
}

func TestAuthUsecase_VerifyEmail_AlreadyVerified(t *testing.T) {
	user := &entities.User{ID: uuid.New(), IsVerified: true}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByVerificationToken", mock.Anything, "tok").Return(user, nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	msg, err := uc.VerifyEmail(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "Email já verificado", msg)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "ghost@b.com").Return(nil, domainerrors.ErrNotFound)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	msg, err := uc.ForgotPassword(context.Background(), "ghost@b.com")

	require.NoError(t, err)
	assert.Equal(t, "Se o email existir, você receberá instruções para redefinir sua senha", msg)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_ForgotPassword_SetsTokenWithTTL(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: "ana@b.com"}
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	userRepo.On("GetByEmail", mock.Anything, "ana@b.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		if !u.ResetToken.Valid || u.ResetTokenExpires == nil {
			return false
		}
		ttl := time.Until(*u.ResetTokenExpires)
		return ttl > 55*time.Minute && ttl <= time.Hour
	})).Return(nil)
	sender.On("SendPasswordResetEmail", mock.Anything, "ana@b.com", mock.Anything).Return(nil).Maybe()

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), sender)
	msg, err := uc.ForgotPassword(context.Background(), "ana@b.com")

	require.NoError(t, err)
	assert.Equal(t, "Se o email existir, você receberá instruções para redefinir sua senha", msg)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_ResetPassword(t *testing.T) {
	expires := time.Now().Add(30 * time.Minute)
	user := &entities.User{
		ID:                uuid.New(),
		ResetToken:        null.StringFrom("tok"),
		ResetTokenExpires: &expires,
	}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", mock.Anything, "tok").Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return !u.ResetToken.Valid && u.ResetTokenExpires == nil && u.PasswordHash != ""
	})).Return(nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	msg, err := uc.ResetPassword(context.Background(), "tok", "new-password")

	require.NoError(t, err)
	assert.Equal(t, "Senha redefinida com sucesso!", msg)
	assert.True(t, crypto.CheckPassword("new-password", user.PasswordHash))
}

func TestAuthUsecase_ResetPassword_ErrorBranches(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	valid := time.Now().Add(30 * time.Minute)

	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", mock.Anything, "missing").Return(nil, domainerrors.ErrNotFound)
	userRepo.On("GetByResetToken", mock.Anything, "expired").Return(&entities.User{ResetTokenExpires: &expired}, nil)
	userRepo.On("GetByResetToken", mock.Anything, "short").Return(&entities.User{ResetTokenExpires: &valid}, nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))

	var appErr *domainerrors.AppError

	_, err := uc.ResetPassword(context.Background(), "missing", "new-password")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Token inválido ou expirado", appErr.Message)

	_, err = uc.ResetPassword(context.Background(), "expired", "new-password")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Token expirado", appErr.Message)

	_, err = uc.ResetPassword(context.Background(), "short", "12345")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "A senha deve ter pelo menos 6 caracteres", appErr.Message)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: "ana@b.com"}
	svc := newTestJWTService()
	tokens, err := svc.GenerateTokenPair(user.ID, user.Email, false)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))

	resp, err := uc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)

	_, err = uc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Me(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: "ana@b.com"}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	uc := newAuthUsecase(userRepo, new(MockProfileRepository), new(MockUnitOfWork), new(MockEmailSender))
	got, err := uc.Me(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}
