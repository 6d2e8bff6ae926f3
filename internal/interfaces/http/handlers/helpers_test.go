package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"anonimax.backend/internal/domain/entities"
	"anonimax.backend/internal/infrastructure/models"
	"anonimax.backend/internal/infrastructure/repositories"
	"anonimax.backend/internal/interfaces/http/handlers"
	"anonimax.backend/internal/interfaces/http/middleware"
	"anonimax.backend/internal/usecases"
	"anonimax.backend/pkg/jwt"
	"anonimax.backend/pkg/logger"
)

// noopSender satisfies email.Sender without any network traffic
type noopSender struct{}

func (noopSender) SendVerificationEmail(context.Context, string, string) error { return nil }
func (noopSender) SendWelcomeEmail(context.Context, string, string) error      { return nil }
func (noopSender) SendPasswordResetEmail(context.Context, string, string) error {
	return nil
}

type testEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwt.JWTService

	authUsecase    *usecases.AuthUsecase
	profileUsecase *usecases.ProfileUsecase
	listingUsecase *usecases.ListingUsecase
	adminUsecase   *usecases.AdminUsecase
}

var testDBCounter int

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("development")

	testDBCounter++
	dsn := fmt.Sprintf("file:handlers_%s_%d?mode=memory&cache=shared", t.Name(), testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Listing{},
		&models.Payment{},
		&models.Favorite{},
	))

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	jwtService := jwt.NewJWTService("handlers-test-secret", 15*time.Minute, 24*time.Hour)

	fee := usecases.ListingFee{
		Amount:   10,
		Currency: "BRZ",
		Network:  "Polygon",
		Address:  "0xda9811524aec92900905e5352be766ea84ddbf24",
	}

	env := &testEnv{
		db:             db,
		jwtService:     jwtService,
		authUsecase:    usecases.NewAuthUsecase(userRepo, profileRepo, uow, jwtService, noopSender{}, "https://app.anonimax.com", time.Hour),
		profileUsecase: usecases.NewProfileUsecase(profileRepo, favoriteRepo),
		listingUsecase: usecases.NewListingUsecase(listingRepo, paymentRepo, profileRepo, userRepo, uow, fee),
		adminUsecase:   usecases.NewAdminUsecase(userRepo, profileRepo, listingRepo, paymentRepo, favoriteRepo, uow, jwtService, 30*24*time.Hour, false),
	}

	authHandler := handlers.NewAuthHandler(env.authUsecase)
	profileHandler := handlers.NewProfileHandler(env.profileUsecase)
	listingHandler := handlers.NewListingHandler(env.listingUsecase)
	adminHandler := handlers.NewAdminHandler(env.adminUsecase)
	authMW := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authMW, authHandler.Me)

	v1.GET("/profiles", profileHandler.List)
	v1.GET("/profiles/me", authMW, profileHandler.GetMine)
	v1.PUT("/profiles/me", authMW, profileHandler.UpdateMine)

	favorites := v1.Group("/favorites", authMW)
	favorites.POST("", profileHandler.AddFavorite)
	favorites.GET("", profileHandler.ListFavorites)
	favorites.DELETE("/:id", profileHandler.RemoveFavorite)

	v1.GET("/listings", listingHandler.List)
	v1.GET("/listings/mine", authMW, listingHandler.Mine)
	v1.GET("/listings/:id", listingHandler.Get)
	v1.POST("/listings", authMW, listingHandler.Create)
	v1.POST("/listings/payment", authMW, listingHandler.SubmitPayment)

	v1.POST("/admin/login", adminHandler.Login)
	admin := v1.Group("/admin", authMW, middleware.RequireAdmin())
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/listings", adminHandler.ListListings)
	admin.POST("/listings/:id/action", adminHandler.ListingAction)
	admin.GET("/payments", adminHandler.ListPayments)
	admin.POST("/payments/:id/verify", adminHandler.VerifyPayment)

	env.router = r
	return env
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser registers a fresh account and returns its auth response
func (e *testEnv) registerUser(t *testing.T, email, password string) *entities.AuthResponse {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

// makeAdmin promotes a registered user to admin directly in the database
func (e *testEnv) makeAdmin(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true).Error)
}

// adminToken registers an account, promotes it and logs in through the admin
// endpoint
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	e.registerUser(t, "admin@anonimax.com", "senha-admin")
	e.makeAdmin(t, "admin@anonimax.com")

	w := e.request(t, http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"email":    "admin@anonimax.com",
		"password": "senha-admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}
