package engine

import (
	"sort"
	"strings"
)

// GenerateTags derives recipe tags from keyword rule tables: dietary labels,
// cuisine, cooking method, meal type, timing, season and ingredient
// categories. Tags are ranked by how often their keywords appear in the
// recipe text and capped at the configured maximum.
func (e *Engine) GenerateTags(ingredients []string, instructions []string, cuisine, category string) []string {
	ingredientText := strings.ToLower(strings.Join(ingredients, " "))
	allText := ingredientText + " " + strings.ToLower(strings.Join(instructions, " "))
	if cuisine != "" {
		allText += " " + strings.ToLower(cuisine)
	}
	if category != "" {
		allText += " " + strings.ToLower(category)
	}

	seen := make(map[string]struct{})
	tags := []string{}
	add := func(tag string) {
		tag = strings.ToLower(tag)
		if _, dup := seen[tag]; !dup {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	// Dietary labels: no excluded keyword present, at least one included
	// keyword present (or no include list at all).
	for _, name := range sortedRuleNames(e.tables.Tags.Dietary) {
		rule := e.tables.Tags.Dietary[name]
		if containsAny(ingredientText, rule.Exclude) {
			continue
		}
		if len(rule.Include) == 0 || containsAny(ingredientText, rule.Include) {
			add(name)
		}
	}

	if cuisine != "" {
		add(cuisine)
	}
	// Detected cuisines need at least two matching signature ingredients.
	for _, name := range sortedKeywordNames(e.tables.Tags.Cuisines) {
		score := 0
		for _, kw := range e.tables.Tags.Cuisines[name] {
			if strings.Contains(ingredientText, kw) {
				score++
			}
		}
		if score >= 2 {
			add(name)
		}
	}

	instructionText := strings.ToLower(strings.Join(instructions, " "))
	for _, name := range sortedKeywordNames(e.tables.Tags.CookingMethods) {
		if containsAny(instructionText, e.tables.Tags.CookingMethods[name]) {
			add(name)
		}
	}

	if category != "" {
		add(category)
	}
	for _, name := range sortedKeywordNames(e.tables.Tags.MealTypes) {
		if containsAny(allText, e.tables.Tags.MealTypes[name]) {
			add(name)
		}
	}
	for _, name := range sortedKeywordNames(e.tables.Tags.Times) {
		if containsAny(instructionText, e.tables.Tags.Times[name]) {
			add(name)
		}
	}
	for _, name := range sortedKeywordNames(e.tables.Tags.Seasons) {
		if containsAny(allText, e.tables.Tags.Seasons[name]) {
			add(name)
		}
	}
	for _, name := range sortedKeywordNames(e.tables.Tags.IngredientCategories) {
		if containsAny(ingredientText, e.tables.Tags.IngredientCategories[name]) {
			add(name)
		}
	}

	ranked := rankTags(tags, allText)
	if len(ranked) > e.opts.MaxTags {
		ranked = ranked[:e.opts.MaxTags]
	}
	return ranked
}

// tagPriorityBonus weights the tag categories searchers filter on most:
// dietary labels over speed labels over the big cuisines.
func tagPriorityBonus(tag string) int {
	switch tag {
	case "vegetarian", "vegan", "gluten-free", "dairy-free":
		return 5
	case "easy", "quick", "30-minute":
		return 3
	case "italian", "mexican", "chinese", "indian":
		return 2
	}
	return 0
}

// rankTags orders tags by relevance score, descending: occurrences of the
// tag in the recipe text (hyphens read as spaces) plus the category bonus.
// Ties keep generation order.
func rankTags(tags []string, text string) []string {
	ranked := make([]string, len(tags))
	copy(ranked, tags)
	score := func(tag string) int {
		return strings.Count(text, strings.ReplaceAll(tag, "-", " ")) + tagPriorityBonus(tag)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}

func sortedRuleNames(m map[string]DietaryRule) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedKeywordNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
