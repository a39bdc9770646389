package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/config"
	"contacts_backend/internal/database"
	"contacts_backend/internal/email"
	"contacts_backend/internal/handlers"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/middleware"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/routes"
	"contacts_backend/internal/services"
	"contacts_backend/internal/storage"
	"contacts_backend/internal/validator"
	"contacts_backend/pkg/apperrors"
)

// Run boots the service: config, logger, database, router.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	mailer, err := email.NewSMTPSender(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email sender", "error", err)
	}

	router, err := SetupRouter(cfg, db, mailer)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles the full engine. Tests call it directly with a
// mock mailer and their own database handle.
func SetupRouter(cfg *config.Config, db *gorm.DB, mailer email.Sender) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.Server.Env != "production")

	tokens, err := auth.NewTokenManager(
		cfg.JWT.Secret,
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
		cfg.VerificationTTL(),
		cfg.ResetTTL(),
	)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	userRepo := repositories.NewUserRepository()
	contactRepo := repositories.NewContactRepository()

	authService := services.NewAuthService(cfg, userRepo, tokens, mailer)
	contactService := services.NewContactService(contactRepo)
	userService := services.NewUserService(cfg, userRepo, store)

	base := handlers.NewBaseHandler(validator.New())

	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(base, authService),
		Contact:      handlers.NewContactHandler(base, contactService),
		User:         handlers.NewUserHandler(base, userService),
		Health:       handlers.NewHealthHandler(base),
		AuthRequired: middleware.AuthMiddleware(tokens, userRepo),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, h)

	return router, nil
}
