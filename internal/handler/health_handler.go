package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler checks the database and, when configured, redis.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	components := gin.H{"database": "UP"}
	status := "UP"

	if err := h.pingDatabase(ctx); err != nil {
		logger.Log.Error("Database health check failed", zap.Error(err))
		components["database"] = "DOWN"
		status = "DOWN"
	}

	// Redis only backs the cache and rate limiter, so it never fails the check
	if h.redis != nil {
		components["redis"] = "UP"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("Redis health check failed", zap.Error(err))
			components["redis"] = "DOWN"
		}
	}

	code := http.StatusOK
	if status != "UP" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "components": components})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
