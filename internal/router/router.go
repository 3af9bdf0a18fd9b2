package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealmind/backend/config"
	"github.com/mealmind/backend/internal/api"
	"github.com/mealmind/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(handler *api.EngineHandler, redisClient *redis.Client, cfg *config.Config, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, handler, redisClient, cfg, log)

	return router
}
