package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mealmind/backend/internal/engine"
	"github.com/mealmind/backend/internal/service"
	"github.com/mealmind/backend/internal/types"
)

// EngineHandler handles all recipe-intelligence requests
type EngineHandler struct {
	engine *engine.Engine
	cache  *service.SearchCache
	log    *zap.Logger
}

// NewEngineHandler creates a new EngineHandler. The cache may be nil, in
// which case search results are computed on every request.
func NewEngineHandler(eng *engine.Engine, cache *service.SearchCache, log *zap.Logger) *EngineHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EngineHandler{
		engine: eng,
		cache:  cache,
		log:    log,
	}
}

// RegisterRoutes registers the recipe-intelligence routes
func (h *EngineHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/nutrition/analyze", h.AnalyzeNutrition)
	router.POST("/recipes/search", h.SearchRecipes)
	router.POST("/recipes/analyze", h.AnalyzeRecipe)
	router.POST("/pairings", h.GeneratePairings)
	router.POST("/meal-plans", h.GenerateMealPlan)
	router.POST("/tags", h.GenerateTags)
}

// AnalyzeNutrition computes aggregate and per-serving nutrition for a list
// of ingredients.
func (h *EngineHandler) AnalyzeNutrition(c *gin.Context) {
	var req types.NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.engine.ComputeNutrition(req.Ingredients, req.Servings)
	c.JSON(http.StatusOK, result)
}

// SearchRecipes ranks the recipe corpus against a free-text query, after
// applying dietary restriction filters.
func (h *EngineHandler) SearchRecipes(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.Key(req.Query, req.DietaryRestrictions, req.MaxResults)
		var cached types.SearchResponse
		hit, err := h.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			h.log.Warn("search cache lookup failed", zap.Error(err))
		}
		if hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	entries, err := h.engine.FindRecipes(ctx, req.Query, req.DietaryRestrictions, req.MaxResults)
	if err != nil {
		h.log.Error("recipe search failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search recipes"})
		return
	}

	resp := types.SearchResponse{
		Recommendations: entries,
		TotalFound:      len(entries),
		SearchTermsUsed: h.engine.SearchTerms(req.Query),
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, resp); err != nil {
			h.log.Warn("search cache store failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GeneratePairings suggests complementary ingredients for a partial
// ingredient list.
func (h *EngineHandler) GeneratePairings(c *gin.Context) {
	var req types.PairingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pairings := h.engine.GeneratePairings(req.Ingredients, req.Cuisine, req.Category)
	c.JSON(http.StatusOK, types.PairingsResponse{Pairings: pairings})
}

// GenerateMealPlan assembles a multi-day meal plan honoring dietary
// restrictions, cuisine preferences and a cooking time limit.
func (h *EngineHandler) GenerateMealPlan(c *gin.Context) {
	var req types.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.engine.GenerateMealPlan(
		c.Request.Context(),
		req.Days,
		req.DietaryRestrictions,
		req.CuisinePreferences,
		req.CookingTimeLimit,
		req.Servings,
	)
	if err != nil {
		if err == engine.ErrInvalidDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("meal plan generation failed", zap.Int("days", req.Days), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate meal plan"})
		return
	}

	c.JSON(http.StatusOK, types.MealPlanResponse{
		MealPlan:  plan,
		TotalDays: len(plan),
	})
}

// AnalyzeRecipe runs tag generation, nutrition analysis, pairing
// suggestions and difficulty estimation over a single recipe.
func (h *EngineHandler) AnalyzeRecipe(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	started := time.Now()

	names := make([]string, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		names[i] = ing.Name
	}

	resp := types.AnalyzeResponse{
		Tags:       h.engine.GenerateTags(names, req.Instructions, req.Cuisine, req.Category),
		Nutrition:  h.engine.ComputeNutrition(req.Ingredients, req.Servings),
		Pairings:   h.engine.GeneratePairings(names, req.Cuisine, req.Category),
		Difficulty: h.engine.EstimateDifficulty(req.Instructions),
	}
	resp.ProcessingTime = time.Since(started).Seconds()

	c.JSON(http.StatusOK, resp)
}

// GenerateTags produces descriptive tags for a recipe from its
// ingredients, instructions and cuisine.
func (h *EngineHandler) GenerateTags(c *gin.Context) {
	var req types.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags := h.engine.GenerateTags(req.Ingredients, req.Instructions, req.Cuisine, req.Category)
	c.JSON(http.StatusOK, types.TagsResponse{Tags: tags})
}
