package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealmind/backend/config"
	"github.com/mealmind/backend/internal/middleware"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "MealMind API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, handler *EngineHandler, redisClient *redis.Client, cfg *config.Config, log *zap.Logger) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	v1 := router.Group("/api/v1")

	// Service-to-service auth is optional; without a secret the API is open
	if cfg.JWTSecret != "" {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}

	if redisClient != nil {
		limiter := middleware.NewSearchRateLimiter(redisClient)
		v1.Use(limiter.RateLimitMiddleware())
	} else {
		log.Warn("redis unavailable, rate limiting disabled")
	}

	handler.RegisterRoutes(v1)
}
