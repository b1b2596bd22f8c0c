// Package core defines the data model and stage contracts for gourmet2pdf.
// Each stage of the conversion is a clean, testable interface.
package core

// Image formats recognized by the converter. Sniffed from the decoded
// image bytes, never taken from the source document.
const (
	ImageJPEG = "jpg"
	ImagePNG  = "png"
	ImageGIF  = "gif"
)

// Ingredient is a single ingredient line. All three parts are
// independently optional; absent parts are empty strings.
type Ingredient struct {
	Amount string
	Unit   string
	Item   string
}

// IngredientGroup is an ordered cluster of ingredients, optionally named
// (e.g. "Teig", "Füllung"). An empty Name means the implicit default group.
type IngredientGroup struct {
	Name        string
	Ingredients []Ingredient
}

// Recipe is one normalized recipe record, built from exactly one <recipe>
// element and immutable after construction. Optional fields are empty when
// absent in the source.
type Recipe struct {
	Title    string
	Source   string
	Link     string
	Category string

	// Rating is the raw source text (e.g. "7/10"); it is normalized on
	// demand by the rating normalizer.
	Rating string

	// Durations are normalized to ISO-8601 (PT{H}H{M}M) at parse time.
	PrepTime  string
	CookTime  string
	TotalTime string

	Yield string

	// Image holds the decoded image bytes; ImageType is the sniffed
	// format (ImageJPEG, ImagePNG or ImageGIF). ImageBroken marks a
	// recipe whose image data was present but could not be decoded.
	Image       []byte
	ImageType   string
	ImageBroken bool

	// Groups preserves document order. A recipe without ingredients has
	// an empty slice; direct ingredient children become one unnamed group.
	Groups []IngredientGroup

	Instructions  string
	Modifications string
}

// BookBuilder renders the recipe sequence into a single document. Recipes
// are added one at a time, in input order; Finish returns the final bytes.
type BookBuilder interface {
	Add(r *Recipe) error
	Finish() ([]byte, error)
	// Extension returns the file extension for this builder (e.g. ".pdf").
	Extension() string
}
