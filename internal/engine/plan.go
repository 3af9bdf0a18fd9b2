package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MealPlanDay is one day of a generated meal plan. Each slot holds an
// independently chosen recipe, or nil when nothing satisfies the constraints.
type MealPlanDay struct {
	Date      string         `json:"date"`
	Breakfast *RecipeRecord  `json:"breakfast"`
	Lunch     *RecipeRecord  `json:"lunch"`
	Dinner    *RecipeRecord  `json:"dinner"`
	Snacks    []RecipeRecord `json:"snacks"`
}

var mealTypes = []string{"breakfast", "lunch", "dinner"}

// GenerateMealPlan composes a day-by-day plan by querying the ranker per meal
// type under the given constraints. The cuisine preference and the final pick
// from the candidate set are drawn from the injected random source, the only
// nondeterminism in the engine. Days outside [1,14] are rejected.
func (e *Engine) GenerateMealPlan(ctx context.Context, days int, restrictions, cuisinePrefs []string, cookingTimeLimit int, servings int) ([]MealPlanDay, error) {
	if days < 1 || days > 14 {
		return nil, ErrInvalidDays
	}

	start := time.Now()
	plan := make([]MealPlanDay, 0, days)
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		entry := MealPlanDay{
			Date:   date.Format("2006-01-02"),
			Snacks: []RecipeRecord{},
		}
		for _, mealType := range mealTypes {
			recipe := e.findMealForType(ctx, mealType, restrictions, cuisinePrefs, cookingTimeLimit)
			switch mealType {
			case "breakfast":
				entry.Breakfast = recipe
			case "lunch":
				entry.Lunch = recipe
			case "dinner":
				entry.Dinner = recipe
			}
		}
		plan = append(plan, entry)
	}
	return plan, nil
}

// findMealForType picks one recipe for a meal slot: rank with a meal-type
// query, drop candidates over the cooking-time limit, prefer tag matches, and
// choose uniformly at random from what survives. An empty candidate set
// yields a nil slot rather than an error.
func (e *Engine) findMealForType(ctx context.Context, mealType string, restrictions, cuisinePrefs []string, timeLimit int) *RecipeRecord {
	query := mealType + " recipe"
	if len(cuisinePrefs) > 0 {
		query += " " + cuisinePrefs[e.randIntn(len(cuisinePrefs))]
	}

	entries, err := e.FindRecipes(ctx, query, restrictions, 5)
	if err != nil {
		e.log.Warn("meal slot ranking failed",
			zap.String("meal_type", mealType), zap.Error(err))
		return nil
	}

	candidates := make([]RecipeRecord, 0, len(entries))
	for _, entry := range entries {
		if timeLimit > 0 && entry.Recipe.PrepTime+entry.Recipe.CookTime > timeLimit {
			continue
		}
		candidates = append(candidates, entry.Recipe)
	}

	tagged := make([]RecipeRecord, 0, len(candidates))
	for _, r := range candidates {
		if hasTag(r.Tags, mealType) {
			tagged = append(tagged, r)
		}
	}
	if len(tagged) > 0 {
		candidates = tagged
	}

	if len(candidates) == 0 {
		return nil
	}
	pick := candidates[e.randIntn(len(candidates))]
	return &pick
}

// GeneratePairings suggests food and drink pairings for a recipe: the union
// of all rule-table entries whose key appears in any ingredient name, plus
// entries keyed directly by cuisine or category. Suggestions duplicating an
// existing ingredient are dropped and the result is capped.
func (e *Engine) GeneratePairings(ingredients []string, cuisine, category string) []string {
	ingredientSet := make(map[string]struct{}, len(ingredients))
	lowered := make([]string, len(ingredients))
	for i, ing := range ingredients {
		lowered[i] = strings.ToLower(strings.TrimSpace(ing))
		ingredientSet[lowered[i]] = struct{}{}
	}

	seen := make(map[string]struct{})
	pairings := []string{}
	add := func(suggestions []string) {
		for _, s := range suggestions {
			lower := strings.ToLower(s)
			if _, dup := seen[lower]; dup {
				continue
			}
			if _, already := ingredientSet[lower]; already {
				continue
			}
			seen[lower] = struct{}{}
			pairings = append(pairings, s)
		}
	}

	ruleKeys := make([]string, 0, len(e.tables.PairingRules))
	for k := range e.tables.PairingRules {
		ruleKeys = append(ruleKeys, k)
	}
	sort.Strings(ruleKeys)

	for _, key := range ruleKeys {
		for _, ing := range lowered {
			if strings.Contains(ing, key) {
				add(e.tables.PairingRules[key])
				break
			}
		}
	}
	if cuisine != "" {
		add(e.tables.PairingRules[strings.ToLower(cuisine)])
	}
	if category != "" {
		add(e.tables.PairingRules[strings.ToLower(category)])
	}

	if len(pairings) > e.opts.MaxPairings {
		pairings = pairings[:e.opts.MaxPairings]
	}
	return pairings
}

// EstimateDifficulty grades a recipe from its instruction count and the
// number of complex techniques mentioned: ≤3 steps with none is Easy, ≤6
// steps with at most one is Medium, anything beyond is Hard.
func (e *Engine) EstimateDifficulty(instructions []string) string {
	steps := len(instructions)
	text := strings.ToLower(strings.Join(instructions, " "))

	techniques := 0
	for _, t := range e.tables.Techniques {
		if strings.Contains(text, t) {
			techniques++
		}
	}

	switch {
	case steps <= 3 && techniques == 0:
		return "Easy"
	case steps <= 6 && techniques <= 1:
		return "Medium"
	default:
		return "Hard"
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
