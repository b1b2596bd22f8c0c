package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/render"
)

func TestMarkdownBookHeadingsInOrder(t *testing.T) {
	b := render.NewMarkdownBook(bookcfg.Default())
	require.NoError(t, b.Add(&core.Recipe{Title: "Käsekuchen"}))
	require.NoError(t, b.Add(&core.Recipe{Title: "Pfannkuchen"}))

	data, err := b.Finish()
	require.NoError(t, err)
	md := string(data)

	first := strings.Index(md, "# Käsekuchen")
	second := strings.Index(md, "# Pfannkuchen")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.Equal(t, ".md", b.Extension())
}

func TestMarkdownBookSections(t *testing.T) {
	b := render.NewMarkdownBook(bookcfg.Default())
	require.NoError(t, b.Add(&core.Recipe{
		Title:  "Käsekuchen",
		Source: "Oma",
		Rating: "7.5/10",
		Groups: []core.IngredientGroup{
			{Name: "Teig", Ingredients: []core.Ingredient{{Amount: "200", Unit: "g", Item: "Mehl"}}},
		},
		Instructions: "Backen.",
	}))

	data, err := b.Finish()
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "- Quelle: Oma")
	assert.Contains(t, md, "- Bewertung: *******½")
	assert.Contains(t, md, "### Teig")
	assert.Contains(t, md, "- 200 g Mehl")
	assert.Contains(t, md, "## Anweisungen")
	assert.NotContains(t, md, "## Notizen")
}

func TestMarkdownBookNoIngredientsPlaceholder(t *testing.T) {
	b := render.NewMarkdownBook(bookcfg.Default())
	require.NoError(t, b.Add(&core.Recipe{Title: "Wasser"}))

	data, err := b.Finish()
	require.NoError(t, err)
	assert.Contains(t, string(data), "*keine Zutaten*")
}
