package engine

import (
	"regexp"
	"strings"
)

// quantityPattern strips embedded quantity+unit substrings such as "2 cups"
// or "500 g" from ingredient names.
var quantityPattern = regexp.MustCompile(`\d+(\.\d+)?\s*(cups?|tbsp|tsp|oz|lbs?|g|kg|ml|l)\b\s*`)

// numberPattern strips bare numerals left over after unit removal.
var numberPattern = regexp.MustCompile(`\d+`)

// punctPattern strips anything that is not a word character or whitespace.
var punctPattern = regexp.MustCompile(`[^\w\s]`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// descriptorWords are preparation/quality adjectives removed from ingredient
// names before matching. Removal is whole-word so legitimate names are never
// corrupted (e.g. "smallmouth bass" keeps its first word intact).
var descriptorWords = map[string]struct{}{
	"fresh": {}, "dried": {}, "chopped": {}, "diced": {}, "sliced": {},
	"minced": {}, "grated": {}, "cooked": {}, "raw": {}, "organic": {},
	"free-range": {}, "extra": {}, "virgin": {}, "unsalted": {}, "salted": {},
	"ground": {}, "whole": {}, "large": {}, "medium": {}, "small": {},
}

// NormalizeName cleans a raw ingredient name into a canonical lookup key:
// lowercase, quantities and descriptors removed, words joined by underscores.
// Malformed input degrades to an empty or partial key rather than an error;
// the matcher treats those as unmatched.
func NormalizeName(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))

	cleaned = quantityPattern.ReplaceAllString(cleaned, "")
	cleaned = numberPattern.ReplaceAllString(cleaned, "")

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if _, skip := descriptorWords[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	cleaned = strings.Join(kept, " ")

	cleaned = punctPattern.ReplaceAllString(cleaned, "")
	cleaned = whitespacePattern.ReplaceAllString(strings.TrimSpace(cleaned), "_")

	return cleaned
}
