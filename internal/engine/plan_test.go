package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planCorpus(t *testing.T) *Corpus {
	t.Helper()
	records := []RecipeRecord{
		{
			ID: "1", Title: "Veggie Omelette",
			Ingredients: []string{"eggs", "spinach"},
			PrepTime:    5, CookTime: 10,
			Tags: []string{"breakfast", "vegetarian"},
		},
		{
			ID: "2", Title: "Greek Salad",
			Ingredients: []string{"cucumber", "feta", "olives"},
			PrepTime:    15, CookTime: 0,
			Tags: []string{"lunch", "vegetarian"},
		},
		{
			ID: "3", Title: "Mushroom Risotto",
			Ingredients: []string{"rice", "mushroom", "parmesan"},
			PrepTime:    15, CookTime: 35,
			Tags: []string{"dinner", "vegetarian"},
		},
	}
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	corpus, err := NewCorpus(records, vectors)
	require.NoError(t, err)
	return corpus
}

func planEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return newTestEngine(t, Config{
		Corpus: planCorpus(t),
		Embed:  stubEmbed([]float32{1, 1, 1}),
		Rand:   rand.New(rand.NewSource(seed)),
	})
}

func TestGenerateMealPlanDaysValidation(t *testing.T) {
	eng := planEngine(t, 1)

	for _, days := range []int{0, -1, 15, 100} {
		_, err := eng.GenerateMealPlan(context.Background(), days, nil, nil, 0, 2)
		assert.ErrorIs(t, err, ErrInvalidDays, "days=%d", days)
	}
}

func TestGenerateMealPlanStructure(t *testing.T) {
	eng := planEngine(t, 1)

	plan, err := eng.GenerateMealPlan(context.Background(), 3, nil, nil, 0, 2)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	today := time.Now()
	for i, day := range plan {
		assert.Equal(t, today.AddDate(0, 0, i).Format("2006-01-02"), day.Date)
		assert.NotNil(t, day.Breakfast, "day %d breakfast", i)
		assert.NotNil(t, day.Lunch, "day %d lunch", i)
		assert.NotNil(t, day.Dinner, "day %d dinner", i)
		assert.NotNil(t, day.Snacks)
	}
}

func TestGenerateMealPlanPrefersMealTypeTags(t *testing.T) {
	eng := planEngine(t, 7)

	plan, err := eng.GenerateMealPlan(context.Background(), 1, nil, nil, 0, 2)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	// Each corpus recipe carries exactly one meal-type tag, so the tag
	// preference pins every slot.
	assert.Equal(t, "Veggie Omelette", plan[0].Breakfast.Title)
	assert.Equal(t, "Greek Salad", plan[0].Lunch.Title)
	assert.Equal(t, "Mushroom Risotto", plan[0].Dinner.Title)
}

func TestGenerateMealPlanCookingTimeLimit(t *testing.T) {
	eng := planEngine(t, 1)

	plan, err := eng.GenerateMealPlan(context.Background(), 1, nil, nil, 20, 2)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	// The risotto takes 50 minutes and is the only dinner-tagged recipe;
	// over the limit the slot may fall back to another candidate but never
	// to the risotto.
	if plan[0].Dinner != nil {
		assert.NotEqual(t, "Mushroom Risotto", plan[0].Dinner.Title)
	}
	assert.Equal(t, "Veggie Omelette", plan[0].Breakfast.Title)
}

func TestGenerateMealPlanRestrictions(t *testing.T) {
	records := []RecipeRecord{
		{
			ID: "1", Title: "Bacon and Eggs",
			Ingredients: []string{"bacon", "eggs"},
			PrepTime:    5, CookTime: 10,
			Tags: []string{"breakfast"},
		},
		{
			ID: "2", Title: "Fruit Bowl",
			Ingredients: []string{"banana", "apple"},
			PrepTime:    5, CookTime: 0,
			Tags: []string{"breakfast"},
		},
	}
	corpus, err := NewCorpus(records, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	eng := newTestEngine(t, Config{
		Corpus: corpus,
		Embed:  stubEmbed([]float32{1, 1}),
		Rand:   rand.New(rand.NewSource(1)),
	})

	plan, err := eng.GenerateMealPlan(context.Background(), 1, []string{"vegetarian"}, nil, 0, 2)
	require.NoError(t, err)
	require.NotNil(t, plan[0].Breakfast)
	assert.Equal(t, "Fruit Bowl", plan[0].Breakfast.Title)
}

func TestGenerateMealPlanDeterministicWithSeed(t *testing.T) {
	first, err := planEngine(t, 42).GenerateMealPlan(context.Background(), 5, nil, []string{"greek", "italian"}, 0, 2)
	require.NoError(t, err)
	second, err := planEngine(t, 42).GenerateMealPlan(context.Background(), 5, nil, []string{"greek", "italian"}, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateMealPlanEmptyCorpus(t *testing.T) {
	eng := newTestEngine(t, Config{
		Embed: stubEmbed([]float32{1}),
		Rand:  rand.New(rand.NewSource(1)),
	})

	plan, err := eng.GenerateMealPlan(context.Background(), 2, nil, nil, 0, 2)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Nil(t, plan[0].Breakfast)
	assert.Nil(t, plan[0].Lunch)
	assert.Nil(t, plan[0].Dinner)
}
