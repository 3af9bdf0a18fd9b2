package engine

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EmbedFunc projects text into the same vector space as the precomputed
// recipe embeddings. It is supplied by an external collaborator; the engine
// treats the vectors as opaque numeric inputs.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Options holds the engine's tuning parameters. The fuzzy threshold and
// keyword boost come from the reference implementation without a documented
// derivation, so they stay configurable rather than baked in.
type Options struct {
	// FuzzyThreshold is the minimum similarity for an accepted fuzzy match.
	FuzzyThreshold float64
	// AliasConfidence is the confidence of an exact alias-table match.
	AliasConfidence float64
	// AliasPenalty scales fuzzy similarity when the match resolves through
	// the alias table.
	AliasPenalty float64
	// KeywordBoost is added to a recipe's similarity score per literal
	// query-word overlap.
	KeywordBoost float64
	// DefaultDensity is used for volume conversion of ingredients missing
	// from the density table (water, 1.0 g/ml).
	DefaultDensity float64
	// DefaultPortionGrams is used for count conversion of ingredients
	// missing from the portion table.
	DefaultPortionGrams float64
	// MaxPairings caps pairing suggestions per request.
	MaxPairings int
	// MaxTags caps generated tags per recipe.
	MaxTags int
}

// DefaultOptions returns the standard tuning parameters.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:      0.3,
		AliasConfidence:     0.95,
		AliasPenalty:        0.9,
		KeywordBoost:        0.1,
		DefaultDensity:      1.0,
		DefaultPortionGrams: 100,
		MaxPairings:         5,
		MaxTags:             15,
	}
}

// Config carries the dependencies for building an Engine.
type Config struct {
	Tables *Tables
	Corpus *Corpus
	Embed  EmbedFunc
	// Options falls back to DefaultOptions when zero.
	Options *Options
	// Logger falls back to a no-op logger when nil.
	Logger *zap.Logger
	// Rand is the random source for meal-plan variety. Injectable so tests
	// can force determinism; falls back to a time-seeded source when nil.
	Rand *rand.Rand
}

// Engine computes recipe nutrition, rankings, pairings and meal plans over
// immutable reference tables and a read-only corpus. It is constructed once
// at startup and safe for concurrent use; the random source is the only
// guarded state.
type Engine struct {
	tables *Tables
	corpus *Corpus
	embed  EmbedFunc
	opts   Options
	log    *zap.Logger

	matchIndex []matchEntry

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds an Engine from cfg. The fuzzy-match index over nutrition keys,
// aliases and their variant forms is precomputed here.
func New(cfg Config) (*Engine, error) {
	if cfg.Tables == nil {
		return nil, errNilTables
	}
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}
	if cfg.Corpus == nil {
		cfg.Corpus = &Corpus{}
	}
	if cfg.Embed == nil {
		return nil, errNilEmbed
	}

	opts := DefaultOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		tables:     cfg.Tables,
		corpus:     cfg.Corpus,
		embed:      cfg.Embed,
		opts:       opts,
		log:        log,
		matchIndex: buildMatchIndex(cfg.Tables),
		rng:        rng,
	}, nil
}

// randIntn draws from the injected random source.
func (e *Engine) randIntn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
