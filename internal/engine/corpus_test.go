package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorpusAlignment(t *testing.T) {
	records := []RecipeRecord{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}

	_, err := NewCorpus(records, [][]float32{{1}})
	require.Error(t, err)

	corpus, err := NewCorpus(records, [][]float32{{1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, 2, corpus.Len())
	assert.Equal(t, "B", corpus.Record(1).Title)
}

func TestFlattenText(t *testing.T) {
	r := RecipeRecord{
		Title:        "Greek Salad",
		Description:  "A FRESH classic",
		Ingredients:  []string{"Feta", "olives"},
		Instructions: []string{"Not included"},
		Tags:         []string{"Lunch"},
	}

	text := r.FlattenText()
	assert.Equal(t, "greek salad a fresh classic feta olives lunch", text)
	assert.NotContains(t, text, "not included")
}
