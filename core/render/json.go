// Package render — schema.org Recipe documents.
// Builds one JSON document per recipe for the per-recipe export
// directories written by core/output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/normalize"
)

const (
	schemaContext = "https://schema.org"
	schemaType    = "Recipe"
)

// Person is a schema.org Person node.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// AggregateRating is a schema.org AggregateRating node. The rating value
// is on a 0–10 scale; the count is fixed at 1 since a Gourmet export
// carries a single personal rating.
type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	RatingCount int     `json:"ratingCount"`
	BestRating  float64 `json:"bestRating"`
}

// RecipeDoc is the schema.org-shaped document written as recipe.json.
type RecipeDoc struct {
	Context            string           `json:"@context"`
	Type               string           `json:"@type"`
	Name               string           `json:"name"`
	Author             Person           `json:"author"`
	Publisher          string           `json:"publisher,omitempty"`
	URL                string           `json:"url,omitempty"`
	RecipeCategory     string           `json:"recipeCategory,omitempty"`
	AggregateRating    *AggregateRating `json:"aggregateRating,omitempty"`
	PrepTime           string           `json:"prepTime,omitempty"`
	CookTime           string           `json:"cookTime,omitempty"`
	PerformTime        string           `json:"performTime,omitempty"`
	RecipeYield        string           `json:"recipeYield,omitempty"`
	RecipeIngredient   []string         `json:"recipeIngredient,omitempty"`
	RecipeInstructions []string         `json:"recipeInstructions,omitempty"`
	Comment            string           `json:"comment,omitempty"`
	Image              string           `json:"image,omitempty"`
}

// JSONRecipe builds schema.org documents for the JSON export.
type JSONRecipe struct {
	cfg bookcfg.Config
	log *log.Logger
}

// NewJSONRecipe creates a JSONRecipe.
func NewJSONRecipe(cfg bookcfg.Config, logger *log.Logger) *JSONRecipe {
	if logger == nil {
		logger = log.Default()
	}
	return &JSONRecipe{cfg: cfg, log: logger}
}

// Build converts one recipe into its document. imageName is the sibling
// image file the document should reference, or "" when the recipe has no
// image. Absent fields are omitted from the output.
func (j *JSONRecipe) Build(r *core.Recipe, imageName string) RecipeDoc {
	doc := RecipeDoc{
		Context:          schemaContext,
		Type:             schemaType,
		Name:             r.Title,
		Author:           Person{Type: "Person", Name: j.cfg.Author},
		Publisher:        r.Source,
		URL:              r.Link,
		RecipeCategory:   r.Category,
		PrepTime:         r.PrepTime,
		CookTime:         r.CookTime,
		PerformTime:      r.TotalTime,
		RecipeYield:      r.Yield,
		RecipeIngredient: normalize.FlattenGroups(r.Groups),
		Comment:          r.Modifications,
		Image:            imageName,
	}
	if r.Rating != "" {
		if rating, ok := normalize.ParseRating(r.Rating); ok {
			doc.AggregateRating = &AggregateRating{
				Type:        "AggregateRating",
				RatingValue: rating.Score(),
				RatingCount: 1,
				BestRating:  10,
			}
		} else {
			j.log.Warn("unparseable recipe rating", "recipe", r.Title, "text", r.Rating)
		}
	}
	if r.Instructions != "" {
		doc.RecipeInstructions = splitLines(r.Instructions)
	}
	return doc
}

// Marshal renders the document as indented JSON.
func (j *JSONRecipe) Marshal(doc RecipeDoc) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling recipe document: %w", err)
	}
	return data, nil
}

// splitLines splits multi-line text into its non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
