package engine

import (
	"math"
	"sort"
	"strings"
)

// matchEntry is one candidate in the fuzzy-match index: a surface form, the
// canonical nutrition key it resolves to, and whether resolution went through
// the alias table.
type matchEntry struct {
	form     string
	key      string
	viaAlias bool
	vec      map[string]float64
}

// buildMatchIndex assembles the fuzzy-match corpus from all nutrition keys,
// alias keys, and their pluralized and space-variant forms. Iteration order is
// sorted so ties resolve the same way on every run.
func buildMatchIndex(t *Tables) []matchEntry {
	var entries []matchEntry

	add := func(base, key string, viaAlias bool) {
		forms := []string{base, base + "s", strings.ReplaceAll(base, "_", " ")}
		seen := make(map[string]struct{}, len(forms))
		for _, f := range forms {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			entries = append(entries, matchEntry{
				form:     f,
				key:      key,
				viaAlias: viaAlias,
				vec:      ngramVector(f),
			})
		}
	}

	for _, key := range sortedKeys(t.Nutrition) {
		add(key, key, false)
	}
	aliasKeys := make([]string, 0, len(t.Aliases))
	for a := range t.Aliases {
		aliasKeys = append(aliasKeys, a)
	}
	sort.Strings(aliasKeys)
	for _, a := range aliasKeys {
		add(a, t.Aliases[a], true)
	}

	return entries
}

// MatchIngredient resolves a raw ingredient name to a canonical nutrition key
// with a confidence score. Resolution order: exact key (1.0), alias table
// (0.95), fuzzy word n-gram cosine similarity above the configured threshold
// (scaled by the alias penalty when the matched form is an alias). An
// unrecognized name returns ("", 0), never an error, so one bad ingredient
// does not sink the rest of a recipe.
func (e *Engine) MatchIngredient(name string) (string, float64) {
	key := NormalizeName(name)
	if key == "" {
		return "", 0
	}

	if _, ok := e.tables.Nutrition[key]; ok {
		return key, 1.0
	}
	if target, ok := e.tables.Aliases[key]; ok {
		return target, e.opts.AliasConfidence
	}

	query := ngramVector(key)
	bestScore := 0.0
	var best *matchEntry
	for i := range e.matchIndex {
		if s := cosineCounts(query, e.matchIndex[i].vec); s > bestScore {
			bestScore = s
			best = &e.matchIndex[i]
		}
	}

	if best != nil && bestScore > e.opts.FuzzyThreshold {
		conf := bestScore
		if best.viaAlias {
			conf *= e.opts.AliasPenalty
		}
		return best.key, conf
	}

	return "", 0
}

// ngramVector builds a term-count vector of word unigrams and adjacent
// bigrams. Underscores are treated as word separators so canonical keys and
// their space variants vectorize identically.
func ngramVector(s string) map[string]float64 {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	vec := make(map[string]float64, 2*len(tokens))
	for i, tok := range tokens {
		vec[tok]++
		if i+1 < len(tokens) {
			vec[tok+" "+tokens[i+1]]++
		}
	}
	return vec
}

func cosineCounts(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, av := range a {
		normA += av * av
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func sortedKeys(m map[string]Nutrients) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
