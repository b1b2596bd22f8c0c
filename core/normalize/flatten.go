package normalize

import (
	"strings"

	"github.com/prometheus42/gourmet2pdf/core"
)

// GroupHeaderPrefix marks a group heading line in flattened output.
// The JSON export keeps the prefix verbatim; the PDF and markdown
// renderers restyle such lines as subheadings.
const GroupHeaderPrefix = "## "

// FormatIngredient renders an ingredient as its present parts joined by
// single spaces. Absent parts produce no separators.
func FormatIngredient(i core.Ingredient) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Amount, i.Unit, i.Item} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// FlattenGroups converts ingredient groups into an ordered line list:
// per group a "## name" heading line (named groups only) followed by one
// line per ingredient. Group and ingredient order is document order.
func FlattenGroups(groups []core.IngredientGroup) []string {
	var lines []string
	for _, g := range groups {
		if g.Name != "" {
			lines = append(lines, GroupHeaderPrefix+g.Name)
		}
		for _, i := range g.Ingredients {
			lines = append(lines, FormatIngredient(i))
		}
	}
	return lines
}
