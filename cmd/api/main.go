package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealmind/backend/config"
	"github.com/mealmind/backend/internal/api"
	"github.com/mealmind/backend/internal/database"
	"github.com/mealmind/backend/internal/engine"
	"github.com/mealmind/backend/internal/logger"
	"github.com/mealmind/backend/internal/server"
	"github.com/mealmind/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	tables, err := engine.LoadTables(cfg.DataDir)
	if err != nil {
		zlog.Fatal("failed to load reference tables", zap.String("dir", cfg.DataDir), zap.Error(err))
	}

	var embedder service.Embedder
	if cfg.EmbedderURL != "" {
		embedder = service.NewRemoteEmbedder(cfg.EmbedderURL, 10*time.Second)
		zlog.Info("using remote embedder", zap.String("url", cfg.EmbedderURL))
	} else {
		embedder = service.NewLocalEmbedder()
		zlog.Info("using local embedder")
	}

	corpus := loadCorpus(cfg, embedder, zlog)

	eng, err := engine.New(engine.Config{
		Tables: tables,
		Corpus: corpus,
		Embed:  embedder.Embed,
		Logger: zlog,
	})
	if err != nil {
		zlog.Fatal("failed to initialize engine", zap.Error(err))
	}

	var redisClient *redis.Client
	var cache *service.SearchCache
	if client, err := database.NewRedisClient(cfg, zlog); err != nil {
		zlog.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
	} else {
		redisClient = client
		cache = service.NewSearchCache(client, cfg.SearchCacheTTL)
	}

	handler := api.NewEngineHandler(eng, cache, zlog)
	srv := server.New(handler, redisClient, cfg, zlog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}

// loadCorpus prefers the database; when it is unreachable the seed file
// under the data directory keeps search and meal plans working.
func loadCorpus(cfg *config.Config, embedder service.Embedder, zlog *zap.Logger) *engine.Corpus {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(cfg, zlog)
	if err == nil {
		corpusService := service.NewCorpusService(db, embedder, zlog)
		corpus, err := corpusService.LoadCorpus(ctx)
		if err == nil {
			zlog.Info("corpus loaded from database", zap.Int("recipes", corpus.Len()))
			return corpus
		}
		zlog.Warn("failed to load corpus from database", zap.Error(err))
	} else {
		zlog.Warn("database unavailable", zap.Error(err))
	}

	corpus, err := loadSeedCorpus(ctx, filepath.Join(cfg.DataDir, "recipes.json"), embedder)
	if err != nil {
		zlog.Warn("failed to load seed corpus, search disabled", zap.Error(err))
		return &engine.Corpus{}
	}
	zlog.Info("corpus loaded from seed file", zap.Int("recipes", corpus.Len()))
	return corpus
}

func loadSeedCorpus(ctx context.Context, path string, embedder service.Embedder) (*engine.Corpus, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []engine.RecipeRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(records))
	for i, rec := range records {
		vec, err := embedder.Embed(ctx, rec.FlattenText())
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}

	return engine.NewCorpus(records, vectors)
}
