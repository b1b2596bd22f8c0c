package render_test

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/render"
)

func newJSONRecipe() *render.JSONRecipe {
	return render.NewJSONRecipe(bookcfg.Default(), log.New(io.Discard))
}

func TestBuildMinimalRecipe(t *testing.T) {
	builder := newJSONRecipe()
	doc := builder.Build(&core.Recipe{Title: "Brot"}, "")

	data, err := builder.Marshal(doc)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "https://schema.org", got["@context"])
	assert.Equal(t, "Recipe", got["@type"])
	assert.Equal(t, "Brot", got["name"])
	assert.Contains(t, got, "author")

	// Absent optional fields must be omitted, not emitted empty.
	for _, key := range []string{
		"publisher", "url", "recipeCategory", "aggregateRating",
		"prepTime", "cookTime", "performTime", "recipeYield",
		"recipeIngredient", "recipeInstructions", "comment", "image",
	} {
		assert.NotContains(t, got, key)
	}
}

func TestBuildFullRecipe(t *testing.T) {
	r := &core.Recipe{
		Title:     "Käsekuchen",
		Source:    "Oma",
		Link:      "https://example.org/kuchen",
		Rating:    "7/10",
		Category:  "Kuchen",
		PrepTime:  "PT0H30M",
		CookTime:  "PT0H45M",
		TotalTime: "PT1H45M",
		Yield:     "12 Stücke",
		Groups: []core.IngredientGroup{
			{Name: "Teig", Ingredients: []core.Ingredient{{Amount: "200", Unit: "g", Item: "Mehl"}}},
		},
		Instructions:  "Teig kneten.\nBacken.",
		Modifications: "Weniger Zucker.",
	}

	doc := newJSONRecipe().Build(r, "full.jpg")

	assert.Equal(t, "Oma", doc.Publisher)
	assert.Equal(t, "https://example.org/kuchen", doc.URL)
	assert.Equal(t, "Kuchen", doc.RecipeCategory)
	assert.Equal(t, "PT0H30M", doc.PrepTime)
	assert.Equal(t, "PT0H45M", doc.CookTime)
	assert.Equal(t, "PT1H45M", doc.PerformTime)
	assert.Equal(t, "12 Stücke", doc.RecipeYield)
	assert.Equal(t, "Weniger Zucker.", doc.Comment)
	assert.Equal(t, "full.jpg", doc.Image)

	require.NotNil(t, doc.AggregateRating)
	assert.InDelta(t, 7.0, doc.AggregateRating.RatingValue, 0.0001)
	assert.Equal(t, 1, doc.AggregateRating.RatingCount)

	assert.Equal(t, []string{"## Teig", "200 g Mehl"}, doc.RecipeIngredient)
	assert.Equal(t, []string{"Teig kneten.", "Backen."}, doc.RecipeInstructions)
}

func TestBuildScoreUsesActualDenominator(t *testing.T) {
	doc := newJSONRecipe().Build(&core.Recipe{Title: "Brot", Rating: "3/5"}, "")
	require.NotNil(t, doc.AggregateRating)
	assert.InDelta(t, 6.0, doc.AggregateRating.RatingValue, 0.0001)
}

func TestBuildUnparseableRatingOmitted(t *testing.T) {
	doc := newJSONRecipe().Build(&core.Recipe{Title: "Brot", Rating: "toll/10"}, "")
	assert.Nil(t, doc.AggregateRating)
}
