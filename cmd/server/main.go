package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anonimax.backend/internal/config"
	"anonimax.backend/internal/domain/entities"
	domainrepos "anonimax.backend/internal/domain/repositories"
	"anonimax.backend/internal/infrastructure/database"
	"anonimax.backend/internal/infrastructure/email"
	"anonimax.backend/internal/infrastructure/repositories"
	"anonimax.backend/internal/interfaces/http/handlers"
	"anonimax.backend/internal/interfaces/http/middleware"
	"anonimax.backend/internal/usecases"
	"anonimax.backend/pkg/crypto"
	"anonimax.backend/pkg/jwt"
	"anonimax.backend/pkg/logger"
	"anonimax.backend/pkg/redis"
	"anonimax.backend/pkg/utils"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = database.Connect
	migrateDB  = database.Migrate
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	emailSender := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	if err := seedAdmin(context.Background(), userRepo, profileRepo, uow, cfg.Admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, profileRepo, uow, jwtService, emailSender, cfg.Server.FrontendURL, cfg.Listings.ResetTokenTTL)
	profileUsecase := usecases.NewProfileUsecase(profileRepo, favoriteRepo)
	listingUsecase := usecases.NewListingUsecase(listingRepo, paymentRepo, profileRepo, userRepo, uow, usecases.ListingFee{
		Amount:   cfg.Listings.FeeAmount,
		Currency: cfg.Listings.FeeCurrency,
		Network:  cfg.Listings.FeeNetwork,
		Address:  cfg.Listings.PaymentAddress,
	})
	adminUsecase := usecases.NewAdminUsecase(userRepo, profileRepo, listingRepo, paymentRepo, favoriteRepo, uow, jwtService, cfg.Listings.ActiveDuration, cfg.Listings.ApproveRequiresPayment)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	listingHandler := handlers.NewListingHandler(listingUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.FrontendURL)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		listingHandler: listingHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		sqlDB.Close()
		os.Exit(0)
	}()

	log.Printf("Anonimax backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// seedAdmin creates the configured admin account on first boot. An existing
// account with the same email is left untouched.
func seedAdmin(ctx context.Context, userRepo domainrepos.UserRepository, profileRepo domainrepos.ProfileRepository, uow domainrepos.UnitOfWork, adminCfg config.AdminConfig) error {
	if adminCfg.Email == "" || adminCfg.Password == "" {
		return nil
	}

	if _, err := userRepo.GetByEmail(ctx, adminCfg.Email); err == nil {
		return nil
	}

	hash, err := crypto.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}
	anonimaxID, err := entities.GenerateAnonimaxID()
	if err != nil {
		return err
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        adminCfg.Email,
		PasswordHash: hash,
		AnonimaxID:   anonimaxID,
		IsVerified:   true,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &entities.Profile{
		ID:         utils.GenerateUUIDv7(),
		UserID:     user.ID,
		AnonimaxID: anonimaxID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uow.Do(ctx, func(txCtx context.Context) error {
		if err := userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return profileRepo.Create(txCtx, profile)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "Admin account seeded", zap.String("email", adminCfg.Email))
	return nil
}
