package service

import (
	"context"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealmind/backend/internal/engine"
	"github.com/mealmind/backend/internal/model"
)

// CorpusService loads the recipe corpus and its embeddings from the database
// into the engine's in-memory form. The corpus is read once at startup and
// treated as read-only afterwards.
type CorpusService struct {
	db       *gorm.DB
	embedder Embedder
	log      *zap.Logger
}

// NewCorpusService creates a new CorpusService instance.
func NewCorpusService(db *gorm.DB, embedder Embedder, log *zap.Logger) *CorpusService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CorpusService{db: db, embedder: embedder, log: log}
}

// LoadCorpus reads every recipe and builds the index-aligned corpus. Rows
// missing a stored embedding (older seeds, sqlite test databases) are
// embedded on the fly from their flattened text.
func (s *CorpusService) LoadCorpus(ctx context.Context) (*engine.Corpus, error) {
	var rows []model.Recipe
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe corpus: %w", err)
	}

	records := make([]engine.RecipeRecord, len(rows))
	vectors := make([][]float32, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
		if vec := row.Embedding.Slice(); len(vec) > 0 {
			vectors[i] = vec
			continue
		}
		vec, err := s.embedder.Embed(ctx, records[i].FlattenText())
		if err != nil {
			return nil, fmt.Errorf("failed to embed recipe %s: %w", records[i].ID, err)
		}
		vectors[i] = vec
	}

	s.log.Info("recipe corpus loaded", zap.Int("recipes", len(records)))
	return engine.NewCorpus(records, vectors)
}

// SaveRecipe embeds the recipe's flattened text and stores the row. Used by
// the seeder; the serving path never writes.
func (s *CorpusService) SaveRecipe(ctx context.Context, recipe *model.Recipe) error {
	vec, err := s.embedder.Embed(ctx, recipe.Record().FlattenText())
	if err != nil {
		return fmt.Errorf("failed to embed recipe %q: %w", recipe.Title, err)
	}
	recipe.Embedding = pgvector.NewVector(vec)

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to save recipe %q: %w", recipe.Title, err)
	}
	return nil
}
