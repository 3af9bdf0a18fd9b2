package engine

import (
	"fmt"
	"strings"
)

// RecipeRecord is one recipe in the in-memory corpus. Records are immutable
// after load.
type RecipeRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Cuisine      string   `json:"cuisine"`
	Difficulty   string   `json:"difficulty"`
	PrepTime     int      `json:"prep_time"`
	CookTime     int      `json:"cook_time"`
	Servings     int      `json:"servings"`
	Tags         []string `json:"tags"`
}

// FlattenText builds the lowercase text representation used for matching:
// title, description, ingredients and tags concatenated.
func (r RecipeRecord) FlattenText() string {
	parts := make([]string, 0, 3+len(r.Ingredients)+len(r.Tags))
	parts = append(parts, r.Title, r.Description)
	parts = append(parts, r.Ingredients...)
	parts = append(parts, r.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Corpus is the read-only recipe set with its precomputed embedding vectors.
// vectors[i] is the embedding of records[i]; every filtering operation carries
// original indices so that alignment is never broken.
type Corpus struct {
	records []RecipeRecord
	texts   []string
	vectors [][]float32
}

// NewCorpus builds a corpus from records and their index-aligned embeddings.
func NewCorpus(records []RecipeRecord, vectors [][]float32) (*Corpus, error) {
	if len(records) != len(vectors) {
		return nil, fmt.Errorf("corpus has %d records but %d embeddings", len(records), len(vectors))
	}
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.FlattenText()
	}
	return &Corpus{records: records, texts: texts, vectors: vectors}, nil
}

// Len returns the number of recipes in the corpus.
func (c *Corpus) Len() int { return len(c.records) }

// Record returns the recipe at index i.
func (c *Corpus) Record(i int) RecipeRecord { return c.records[i] }
