package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mealmind/backend/config"
	"github.com/mealmind/backend/internal/database"
	"github.com/mealmind/backend/internal/engine"
	"github.com/mealmind/backend/internal/logger"
	"github.com/mealmind/backend/internal/model"
	"github.com/mealmind/backend/internal/service"
)

func main() {
	seedFile := flag.String("file", "data/recipes.json", "JSON file containing recipes to seed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.New(cfg, zlog)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	content, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatalf("failed to read seed file: %v", err)
	}

	var records []engine.RecipeRecord
	if err := json.Unmarshal(content, &records); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	var embedder service.Embedder
	if cfg.EmbedderURL != "" {
		embedder = service.NewRemoteEmbedder(cfg.EmbedderURL, 10*time.Second)
	} else {
		embedder = service.NewLocalEmbedder()
	}

	corpusService := service.NewCorpusService(db, embedder, zlog)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	seeded := 0
	for _, rec := range records {
		recipe := &model.Recipe{
			Title:        rec.Title,
			Description:  rec.Description,
			Cuisine:      rec.Cuisine,
			Difficulty:   rec.Difficulty,
			PrepTime:     rec.PrepTime,
			CookTime:     rec.CookTime,
			Servings:     rec.Servings,
			Ingredients:  rec.Ingredients,
			Instructions: rec.Instructions,
			Tags:         rec.Tags,
		}

		var count int64
		if err := db.Model(&model.Recipe{}).Where("title = ?", rec.Title).Count(&count).Error; err != nil {
			log.Fatalf("failed to check for existing recipe %q: %v", rec.Title, err)
		}
		if count > 0 {
			continue
		}

		if err := corpusService.SaveRecipe(ctx, recipe); err != nil {
			log.Fatalf("failed to seed recipe %q: %v", rec.Title, err)
		}
		seeded++
	}

	log.Printf("seeded %d recipe(s)", seeded)
}
