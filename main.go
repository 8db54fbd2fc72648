package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "estate-backend/cmd/api"
	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/oauth"
	authRepo "estate-backend/internal/auth/repository"
	"estate-backend/internal/auth/token"
	authUsecase "estate-backend/internal/auth/usecase"
	propertydomain "estate-backend/internal/property/domain"
	propertyRepo "estate-backend/internal/property/repository"
	propertyUsecase "estate-backend/internal/property/usecase"
	userUsecase "estate-backend/internal/user/usecase"
	"estate-backend/pkg/config"
	"estate-backend/pkg/database"
	"estate-backend/pkg/logger"
	"estate-backend/pkg/ratelimit"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.UserFavorite{}, &propertydomain.Property{}); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	propertyRepository := propertyRepo.NewGormPropertyRepository(db)

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	providers := oauth.NewRegistryFromConfig(cfg)
	log.Info("identity providers enabled", "providers", providers.Names())

	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client, cfg.LoginRateLimit, cfg.LoginRateWindow)
		log.Info("rate limiter backed by redis")
	} else {
		memory := ratelimit.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
		go memory.RunCleanup(ctx, time.Minute)
		limiter = memory
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, tokens, cfg, log)
	userUsecaseInstance := userUsecase.NewUserUsecase(userRepo, propertyRepository, log)
	propertyUsecaseInstance := propertyUsecase.NewPropertyUsecase(propertyRepository, userRepo, log)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, userUsecaseInstance, propertyUsecaseInstance, providers, tokens, limiter, tokens.TTL(), cfg, log)

	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
