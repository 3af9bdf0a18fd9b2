package types

import "github.com/mealmind/backend/internal/engine"

// NutritionRequest represents the request body for nutrition analysis.
// Servings below 1 are rejected at the boundary by the binding rule.
type NutritionRequest struct {
	Ingredients []engine.IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Servings    int                      `json:"servings" binding:"omitempty,min=1"`
}

// SearchRequest represents the request body for recipe search.
type SearchRequest struct {
	Query               string   `json:"query" binding:"required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	MaxResults          int      `json:"max_results" binding:"omitempty,min=1,max=50"`
}

// SearchResponse carries the ranked recommendations plus search metadata.
type SearchResponse struct {
	Recommendations []engine.RankingEntry `json:"recommendations"`
	TotalFound      int                   `json:"total_found"`
	SearchTermsUsed []string              `json:"search_terms_used"`
}

// PairingsRequest represents the request body for pairing suggestions.
type PairingsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
	Cuisine     string   `json:"cuisine"`
	Category    string   `json:"category"`
}

// PairingsResponse lists up to five pairing suggestions.
type PairingsResponse struct {
	Pairings []string `json:"pairings"`
}

// MealPlanRequest represents the request body for meal-plan generation.
type MealPlanRequest struct {
	Days                int      `json:"days" binding:"required,min=1,max=14"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	CookingTimeLimit    int      `json:"cooking_time_limit" binding:"omitempty,min=1"`
	Servings            int      `json:"servings" binding:"omitempty,min=1"`
}

// MealPlanResponse wraps the generated plan.
type MealPlanResponse struct {
	MealPlan  []engine.MealPlanDay `json:"meal_plan"`
	TotalDays int                  `json:"total_days"`
}

// AnalyzeRequest represents the request body for full recipe analysis.
type AnalyzeRequest struct {
	Ingredients  []engine.IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []string                 `json:"instructions" binding:"required,min=1"`
	Cuisine      string                   `json:"cuisine"`
	Category     string                   `json:"category"`
	Servings     int                      `json:"servings" binding:"omitempty,min=1"`
}

// AnalyzeResponse combines tags, nutrition, pairings and difficulty for one
// recipe.
type AnalyzeResponse struct {
	Tags           []string               `json:"tags"`
	Nutrition      engine.NutritionResult `json:"nutrition"`
	Pairings       []string               `json:"pairings"`
	Difficulty     string                 `json:"difficulty"`
	ProcessingTime float64                `json:"processing_time"`
}

// TagsRequest represents the request body for tag generation.
type TagsRequest struct {
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions []string `json:"instructions"`
	Cuisine      string   `json:"cuisine"`
	Category     string   `json:"category"`
}

// TagsResponse lists the generated tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}
