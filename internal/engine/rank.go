package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RankingEntry pairs a recipe with its boosted similarity score for one query.
type RankingEntry struct {
	Recipe RecipeRecord `json:"recipe"`
	Score  float64      `json:"similarity_score"`
}

// FindRecipes ranks the corpus against a natural-language query. Dietary
// restrictions are applied strictly before any similarity computation, over
// the precomputed flattened text, carrying original corpus indices so each
// retained recipe is scored against its own embedding. Scores are cosine
// similarity plus a keyword boost per literal query-word overlap, clamped to
// 1. For a fixed corpus and query the ordering is exactly reproducible.
func (e *Engine) FindRecipes(ctx context.Context, query string, restrictions []string, limit int) ([]RankingEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	retained := e.filterByRestrictions(restrictions)
	if len(retained) == 0 {
		return []RankingEntry{}, nil
	}

	queryVec, err := e.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	queryWords := uniqueWords(query)
	entries := make([]RankingEntry, 0, len(retained))
	for _, idx := range retained {
		score := cosine32(queryVec, e.corpus.vectors[idx])
		score += e.opts.KeywordBoost * float64(overlapCount(queryWords, e.corpus.texts[idx]))
		if score > 1.0 {
			score = 1.0
		}
		entries = append(entries, RankingEntry{Recipe: e.corpus.records[idx], Score: score})
	}

	// Stable sort: ties keep corpus insertion order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// filterByRestrictions returns the original corpus indices of recipes whose
// flattened text contains none of the exclude keywords of any active
// restriction. Unknown restriction names are ignored.
func (e *Engine) filterByRestrictions(restrictions []string) []int {
	retained := make([]int, 0, e.corpus.Len())
	for i := 0; i < e.corpus.Len(); i++ {
		retained = append(retained, i)
	}

	for _, restriction := range restrictions {
		name := strings.ToLower(strings.TrimSpace(restriction))
		keywords, ok := e.tables.Dietary[name]
		if !ok {
			e.log.Debug("unknown dietary restriction", zap.String("restriction", name))
			continue
		}

		kept := retained[:0]
		for _, idx := range retained {
			if !containsAny(e.corpus.texts[idx], keywords) {
				kept = append(kept, idx)
			}
		}
		retained = kept
	}
	return retained
}

// SearchTerms extracts the terms a query was interpreted with, for response
// metadata: known cuisine and restriction names found in the query plus all
// words longer than three characters.
func (e *Engine) SearchTerms(query string) []string {
	lower := strings.ToLower(query)
	seen := make(map[string]struct{})
	terms := []string{}

	add := func(t string) {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			terms = append(terms, t)
		}
	}

	cuisines := make([]string, 0, len(e.tables.Tags.Cuisines))
	for c := range e.tables.Tags.Cuisines {
		cuisines = append(cuisines, c)
	}
	sort.Strings(cuisines)
	for _, c := range cuisines {
		if strings.Contains(lower, c) {
			add(c)
		}
	}
	dietary := make([]string, 0, len(e.tables.Dietary))
	for d := range e.tables.Dietary {
		dietary = append(dietary, d)
	}
	sort.Strings(dietary)
	for _, d := range dietary {
		if strings.Contains(lower, d) {
			add(d)
		}
	}
	for _, w := range strings.Fields(lower) {
		if len(w) > 3 {
			add(w)
		}
	}
	return terms
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func uniqueWords(s string) []string {
	seen := make(map[string]struct{})
	words := []string{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, dup := seen[w]; !dup {
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}

func overlapCount(words []string, text string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count
}

func cosine32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
