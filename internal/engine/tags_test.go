package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTagsDietary(t *testing.T) {
	eng := newTestEngine(t, Config{})

	t.Run("vegetarian bake", func(t *testing.T) {
		tags := eng.GenerateTags(
			[]string{"flour", "butter", "milk", "egg", "vegetable broth"},
			[]string{"Whisk everything together", "Bake in the oven until golden"},
			"", "",
		)

		assert.Contains(t, tags, "vegetarian")
		assert.Contains(t, tags, "baked")
		assert.NotContains(t, tags, "vegan")       // butter, milk, egg
		assert.NotContains(t, tags, "gluten-free") // flour
	})

	t.Run("meat dish is not vegetarian", func(t *testing.T) {
		tags := eng.GenerateTags(
			[]string{"chicken breast", "olive oil"},
			[]string{"Grill the chicken"},
			"", "",
		)

		assert.NotContains(t, tags, "vegetarian")
		assert.NotContains(t, tags, "vegan")
		assert.Contains(t, tags, "grilled")
	})

	t.Run("empty include list passes on absence alone", func(t *testing.T) {
		tags := eng.GenerateTags(
			[]string{"chicken breast", "rice"},
			[]string{"Cook the rice"},
			"", "",
		)

		// dairy-free has no include keywords, so no dairy suffices.
		assert.Contains(t, tags, "dairy-free")
	})
}

func TestGenerateTagsCuisine(t *testing.T) {
	eng := newTestEngine(t, Config{})

	t.Run("explicit cuisine", func(t *testing.T) {
		tags := eng.GenerateTags([]string{"rice"}, nil, "Japanese", "")
		assert.Contains(t, tags, "japanese")
	})

	t.Run("detected from signature ingredients", func(t *testing.T) {
		// Two italian signature ingredients are enough.
		tags := eng.GenerateTags(
			[]string{"pasta", "tomato", "cream"},
			[]string{"Boil the pasta"},
			"", "",
		)
		assert.Contains(t, tags, "italian")
	})

	t.Run("single signature ingredient is not enough", func(t *testing.T) {
		tags := eng.GenerateTags(
			[]string{"ginger", "beef"},
			[]string{"Sear the beef"},
			"", "",
		)
		assert.NotContains(t, tags, "chinese")
	})
}

func TestGenerateTagsMealTypeAndCategory(t *testing.T) {
	eng := newTestEngine(t, Config{})

	tags := eng.GenerateTags(
		[]string{"eggs", "toast"},
		[]string{"Fry the eggs", "Serve with toast and coffee"},
		"", "breakfast",
	)

	assert.Contains(t, tags, "breakfast")
	assert.Contains(t, tags, "fried")
}

func TestGenerateTagsRanking(t *testing.T) {
	eng := newTestEngine(t, Config{})

	t.Run("dietary tags rank first", func(t *testing.T) {
		tags := eng.GenerateTags(
			[]string{"flour", "butter", "milk", "egg", "vegetable broth"},
			[]string{"Bake in the oven", "Bake again until golden"},
			"", "",
		)

		assert.Contains(t, tags, "baked")
		assert.Equal(t, "vegetarian", tags[0])
	})

	t.Run("hyphenated tags counted as spaced text", func(t *testing.T) {
		// Both tags carry the same dietary weight; the literal "gluten
		// free" mention in the instructions breaks the tie.
		tags := eng.GenerateTags(
			[]string{"rice", "quinoa"},
			[]string{"Keep it gluten free"},
			"", "",
		)

		assert.Contains(t, tags, "gluten-free")
		assert.Contains(t, tags, "dairy-free")
		assert.Less(t, slices.Index(tags, "gluten-free"), slices.Index(tags, "dairy-free"))
	})
}

func TestGenerateTagsCapped(t *testing.T) {
	eng := newTestEngine(t, Config{})

	// A kitchen-sink recipe that trips many rules still stays within the cap.
	tags := eng.GenerateTags(
		[]string{"chicken", "rice", "tomato", "onion", "carrot", "milk", "cheese", "apple", "basil", "pasta"},
		[]string{"Grill the chicken", "Bake the pasta", "Fry the onion", "Simmer the soup for hours", "Serve the salad cold"},
		"italian", "dinner",
	)

	assert.LessOrEqual(t, len(tags), 15)
	assert.NotEmpty(t, tags)
}

func TestGenerateTagsDeterministic(t *testing.T) {
	eng := newTestEngine(t, Config{})

	ingredients := []string{"tomato", "basil", "pasta", "olive oil"}
	instructions := []string{"Boil the pasta", "Toss with sauce"}

	first := eng.GenerateTags(ingredients, instructions, "italian", "dinner")
	second := eng.GenerateTags(ingredients, instructions, "italian", "dinner")
	assert.Equal(t, first, second)
}

func TestEstimateDifficulty(t *testing.T) {
	eng := newTestEngine(t, Config{})

	tests := []struct {
		name         string
		instructions []string
		want         string
	}{
		{
			"few plain steps",
			[]string{"Chop the vegetables", "Toss with dressing"},
			"Easy",
		},
		{
			"technique bumps short recipe",
			[]string{"Whisk the eggs", "Pour into pan"},
			"Medium",
		},
		{
			"moderate steps one technique",
			[]string{"Prep", "Whisk the batter", "Rest", "Cook", "Flip", "Serve"},
			"Medium",
		},
		{
			"many steps",
			[]string{"1", "2", "3", "4", "5", "6", "7"},
			"Hard",
		},
		{
			"many techniques",
			[]string{"Julienne the carrots", "Braise the beef", "Reduce the sauce", "Plate"},
			"Hard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eng.EstimateDifficulty(tt.instructions))
		})
	}
}

func TestGeneratePairings(t *testing.T) {
	eng := newTestEngine(t, Config{})

	t.Run("ingredient match", func(t *testing.T) {
		pairings := eng.GeneratePairings([]string{"pasta", "garlic"}, "", "")

		assert.NotEmpty(t, pairings)
		assert.Contains(t, pairings, "red wine")
		assert.LessOrEqual(t, len(pairings), 5)
	})

	t.Run("existing ingredients excluded", func(t *testing.T) {
		pairings := eng.GeneratePairings([]string{"pasta", "red wine"}, "", "")
		assert.NotContains(t, pairings, "red wine")
	})

	t.Run("cuisine key", func(t *testing.T) {
		pairings := eng.GeneratePairings([]string{"eggplant"}, "Italian", "")
		assert.Contains(t, pairings, "olive oil")
	})

	t.Run("no matches", func(t *testing.T) {
		pairings := eng.GeneratePairings([]string{"unicorn dust"}, "", "")
		assert.Empty(t, pairings)
	})

	t.Run("capped at five", func(t *testing.T) {
		pairings := eng.GeneratePairings([]string{"pasta", "chicken", "beef"}, "mexican", "dessert")
		assert.Len(t, pairings, 5)
	})
}
