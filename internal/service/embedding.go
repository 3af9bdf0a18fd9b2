package service

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// EmbeddingDim is the dimensionality of the vector space shared by queries
// and recipe embeddings. It matches the vector column in the recipe store.
const EmbeddingDim = 384

// Embedder projects text into the shared vector space. Queries and recipes
// must be embedded by the same implementation or the cosine similarities are
// meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LocalEmbedder is a deterministic feature-hashing embedder: word unigrams
// and bigrams are hashed into a fixed number of buckets and the result is
// L2-normalized. It has none of the semantics of a sentence-transformer but
// it is fast and exactly reproducible, which makes it the fallback when no
// embedding sidecar is configured and the workhorse in tests.
type LocalEmbedder struct {
	dim int
}

// NewLocalEmbedder returns a LocalEmbedder with the standard dimensionality.
func NewLocalEmbedder() *LocalEmbedder {
	return &LocalEmbedder{dim: EmbeddingDim}
}

// Embed hashes the text's token n-grams into a normalized vector.
func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	tokens := strings.Fields(strings.ToLower(text))
	for i, tok := range tokens {
		vec[e.bucket(tok)]++
		if i+1 < len(tokens) {
			vec[e.bucket(tok+" "+tokens[i+1])]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (e *LocalEmbedder) bucket(feature string) int {
	h := fnv.New32a()
	h.Write([]byte(feature))
	return int(h.Sum32() % uint32(e.dim))
}
