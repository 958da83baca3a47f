package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Baaaki/resume-backend/internal/cache"
	"github.com/Baaaki/resume-backend/internal/config"
	"github.com/Baaaki/resume-backend/internal/database"
	"github.com/Baaaki/resume-backend/internal/handler"
	"github.com/Baaaki/resume-backend/internal/middleware"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/internal/utils"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(!cfg.IsProduction(), cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Redis is optional: without it the cache and rate limiter are disabled
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache and rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Log.Info("Redis connected")
		}
	}

	// Initialize services
	store := repository.NewStore(db)
	profileCache := cache.NewProfileCache(redisClient, cfg.ProfileCacheTTL)
	issuer := utils.NewTokenIssuer(utils.NewTokenCodec(cfg.JWTSecret), cfg.JWTExpiration, cfg.JWTRefreshExpiration)

	router, err := handler.NewRouter(handler.RouterDeps{
		DB:             db,
		Redis:          redisClient,
		Auth:           service.NewAuthService(store, issuer),
		Profiles:       service.NewProfileService(store, profileCache),
		Experiences:    service.NewExperienceService(store, profileCache),
		Educations:     service.NewEducationService(store, profileCache),
		Skills:         service.NewSkillService(store, profileCache),
		Certifications: service.NewCertificationService(store, profileCache),
		RateLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		}),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
		PermitAll:      cfg.PermitAll,
	})
	if err != nil {
		logger.Log.Fatal("Failed to build router", zap.Error(err))
	}
	if cfg.PermitAll {
		logger.Log.Warn("SECURITY_PERMIT_ALL is set, route authorization is disabled")
	}

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("addr", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Log.Info("Server stopped")
}
