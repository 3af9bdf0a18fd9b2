package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealmind/backend/config"
	"github.com/mealmind/backend/internal/api"
	"github.com/mealmind/backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New creates a new server instance
func New(handler *api.EngineHandler, redisClient *redis.Client, cfg *config.Config, log *zap.Logger) *Server {
	engine := router.SetupRouter(handler, redisClient, cfg, log)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
		log: log,
	}
}

// Start starts the HTTP server and blocks until it exits
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
