package engine

import "strings"

// IngredientInput is one recipe line item. A missing amount defaults to 100
// and a missing unit defaults to grams.
type IngredientInput struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"omitempty,gte=0"`
	Unit   string  `json:"unit"`
}

// NutritionResult is the per-serving nutrition for a recipe. Confidence is
// the mean match confidence over resolved ingredients; ingredients that could
// not be resolved are listed by name and contribute nothing to the totals.
type NutritionResult struct {
	Nutrition          Nutrients `json:"nutrition"`
	PerServing         bool      `json:"per_serving"`
	Confidence         float64   `json:"confidence"`
	MissingIngredients []string  `json:"missing_ingredients"`
}

// ComputeNutrition aggregates per-ingredient nutrient contributions into a
// per-serving profile. Each ingredient is normalized, matched against the
// nutrition database, converted to grams, and scaled from its per-100g
// profile. Servings below 1 are clamped and negative amounts contribute
// nothing, so totals never go negative; the API boundary rejects both before
// they get here.
func (e *Engine) ComputeNutrition(ingredients []IngredientInput, servings int) NutritionResult {
	if servings < 1 {
		servings = 1
	}

	var total Nutrients
	missing := []string{}
	confidenceSum := 0.0
	matched := 0

	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		amount := ing.Amount
		switch {
		case amount == 0:
			amount = 100
		case amount < 0:
			amount = 0
		}
		unit := ing.Unit
		if unit == "" {
			unit = "g"
		}

		key, confidence := e.MatchIngredient(name)
		if key == "" {
			missing = append(missing, name)
			continue
		}

		grams := e.ConvertToGrams(amount, unit, key)
		total.addScaled(e.tables.Nutrition[key], grams/100)
		confidenceSum += confidence
		matched++
	}

	overall := 0.0
	if matched > 0 {
		overall = confidenceSum / float64(matched)
	}

	return NutritionResult{
		Nutrition:          total.perServing(float64(servings)),
		PerServing:         true,
		Confidence:         overall,
		MissingIngredients: missing,
	}
}
