package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealmind/backend/internal/engine"
	"github.com/mealmind/backend/internal/service"
	"github.com/mealmind/backend/internal/types"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tables, err := engine.LoadTables(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	embedder := service.NewLocalEmbedder()
	records := []engine.RecipeRecord{
		{
			ID: "1", Title: "Chicken Curry",
			Description: "Spicy Indian curry",
			Ingredients: []string{"chicken", "curry paste", "onion"},
			Cuisine:     "indian", PrepTime: 15, CookTime: 30, Servings: 4,
			Tags: []string{"dinner"},
		},
		{
			ID: "2", Title: "Garden Salad",
			Description: "Fresh vegetarian salad",
			Ingredients: []string{"lettuce", "tomato", "cucumber"},
			Cuisine:     "american", PrepTime: 10, CookTime: 0, Servings: 2,
			Tags: []string{"lunch", "vegetarian"},
		},
	}
	vectors := make([][]float32, len(records))
	for i, r := range records {
		vec, err := embedder.Embed(context.Background(), r.FlattenText())
		require.NoError(t, err)
		vectors[i] = vec
	}
	corpus, err := engine.NewCorpus(records, vectors)
	require.NoError(t, err)

	eng, err := engine.New(engine.Config{
		Tables: tables,
		Corpus: corpus,
		Embed:  embedder.Embed,
	})
	require.NoError(t, err)

	router := gin.New()
	handler := NewEngineHandler(eng, nil, nil)
	handler.RegisterRoutes(router.Group("/api/v1"))
	router.GET("/health", HealthCheck)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAnalyzeNutritionEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("success", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/nutrition/analyze", types.NutritionRequest{
			Ingredients: []engine.IngredientInput{
				{Name: "tomato", Amount: 200, Unit: "g"},
			},
			Servings: 1,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result engine.NutritionResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.PerServing)
		assert.InDelta(t, 36.0, result.Nutrition.Calories, 0.01)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("missing ingredients rejected", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/nutrition/analyze", map[string]interface{}{
			"servings": 2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid servings rejected", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/nutrition/analyze", map[string]interface{}{
			"ingredients": []map[string]interface{}{{"name": "tomato"}},
			"servings":    -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/nutrition/analyze", map[string]interface{}{
			"ingredients": []map[string]interface{}{{"name": "tomato", "amount": -100, "unit": "g"}},
			"servings":    1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchRecipesEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("success with metadata", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/recipes/search", types.SearchRequest{
			Query:      "spicy chicken curry",
			MaxResults: 5,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Recommendations)
		assert.Equal(t, len(resp.Recommendations), resp.TotalFound)
		assert.Contains(t, resp.SearchTermsUsed, "chicken")
		assert.Equal(t, "Chicken Curry", resp.Recommendations[0].Recipe.Title)
	})

	t.Run("dietary restriction filters", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/recipes/search", types.SearchRequest{
			Query:               "dinner",
			DietaryRestrictions: []string{"vegetarian"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		for _, rec := range resp.Recommendations {
			assert.NotEqual(t, "Chicken Curry", rec.Recipe.Title)
		}
	})

	t.Run("missing query rejected", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/recipes/search", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPairingsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "/api/v1/pairings", types.PairingsRequest{
		Ingredients: []string{"pasta", "garlic"},
		Cuisine:     "italian",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.PairingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Pairings)
	assert.LessOrEqual(t, len(resp.Pairings), 5)
}

func TestMealPlanEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("success", func(t *testing.T) {
		w := doJSON(t, router, "/api/v1/meal-plans", types.MealPlanRequest{
			Days:     3,
			Servings: 2,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.MealPlanResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.TotalDays)
		assert.Len(t, resp.MealPlan, 3)
	})

	t.Run("days out of range rejected", func(t *testing.T) {
		for _, days := range []int{0, 15} {
			w := doJSON(t, router, "/api/v1/meal-plans", map[string]interface{}{
				"days": days,
			})
			assert.Equal(t, http.StatusBadRequest, w.Code, "days=%d", days)
		}
	})
}

func TestAnalyzeRecipeEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "/api/v1/recipes/analyze", types.AnalyzeRequest{
		Ingredients: []engine.IngredientInput{
			{Name: "pasta", Amount: 200, Unit: "g"},
			{Name: "tomato", Amount: 2, Unit: "pieces"},
		},
		Instructions: []string{"Boil the pasta", "Simmer the tomato sauce"},
		Cuisine:      "italian",
		Servings:     2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Tags, "italian")
	assert.NotEmpty(t, resp.Pairings)
	assert.NotZero(t, resp.Nutrition.Nutrition.Calories)
	assert.Contains(t, []string{"Easy", "Medium", "Hard"}, resp.Difficulty)
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
}

func TestTagsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "/api/v1/tags", types.TagsRequest{
		Ingredients:  []string{"flour", "butter", "milk", "egg"},
		Instructions: []string{"Whisk and bake until golden"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.TagsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Tags, "vegetarian")
	assert.Contains(t, resp.Tags, "baked")
}
