// Package parse implements the recipe parser. It walks a Gourmet XML
// export and yields one normalized core.Recipe per <recipe> element, in
// document order. The whole document is read into a DOM; the recipe
// sequence itself is lazy, single-pass and not restartable.
package parse

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"iter"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/normalize"
)

// Options configures a Parser.
type Options struct {
	// Strict makes structurally broken recipe elements (e.g. undecodable
	// image data) abort the sequence with an error instead of being
	// degraded and logged. Incomplete elements (missing title) are
	// skipped with a warning in both modes.
	Strict bool

	// Logger receives per-recipe diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// Seq is the lazy recipe sequence produced by a Parser. It is single
// pass and not restartable; re-parsing the source requires calling
// Recipes again.
type Seq = iter.Seq2[*core.Recipe, error]

// Parser extracts recipes from Gourmet XML export bytes.
type Parser struct {
	strict bool
	log    *log.Logger
}

// New creates a Parser.
func New(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{strict: opts.Strict, log: logger}
}

// Recipes parses the document and returns the lazy recipe sequence.
// An unparseable XML root is fatal and returned here; per-recipe problems
// surface inside the sequence per the Strict option. The sequence yields
// a non-nil error at most once, as its final element.
func (p *Parser) Recipes(data []byte) (Seq, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing recipe XML: %w", err)
	}

	elements := doc.FindElements("//recipe")

	seq := func(yield func(*core.Recipe, error) bool) {
		for i, el := range elements {
			recipe, err := p.buildRecipe(el)
			if err != nil {
				if p.strict {
					yield(nil, fmt.Errorf("recipe %d: %w", i+1, err))
					return
				}
				p.log.Error("skipping broken recipe element", "index", i+1, "err", err)
				continue
			}
			if recipe == nil {
				continue // incomplete, already logged
			}
			if !yield(recipe, nil) {
				return
			}
		}
	}
	return seq, nil
}

// buildRecipe converts one <recipe> element. A nil recipe with nil error
// means the element was incomplete and skipped.
func (p *Parser) buildRecipe(el *etree.Element) (*core.Recipe, error) {
	title := childText(el, "title")
	if title == "" {
		p.log.Warn("skipping recipe without title")
		return nil, nil
	}

	r := &core.Recipe{
		Title:         title,
		Source:        childText(el, "source"),
		Link:          childText(el, "link"),
		Rating:        childText(el, "rating"),
		Category:      childText(el, "category"),
		Yield:         childText(el, "yields"),
		Instructions:  childText(el, "instructions"),
		Modifications: childText(el, "modifications"),
		Groups:        parseGroups(el),
	}

	for _, f := range []struct {
		tag string
		dst *string
	}{
		{"preptime", &r.PrepTime},
		{"cooktime", &r.CookTime},
		{"totaltime", &r.TotalTime},
	} {
		raw := childText(el, f.tag)
		if raw == "" {
			continue
		}
		iso, ok := normalize.ParseDuration(raw)
		if !ok {
			p.log.Warn("unparseable duration", "recipe", title, "field", f.tag, "text", raw)
			continue
		}
		*f.dst = iso
	}

	if err := p.parseImage(el, r); err != nil {
		if p.strict {
			return nil, err
		}
		p.log.Error("dropping broken recipe image", "recipe", title, "err", err)
		r.Image = nil
		r.ImageType = ""
		r.ImageBroken = true
	}
	return r, nil
}

// parseImage decodes the base64 image payload and sniffs its format.
func (p *Parser) parseImage(el *etree.Element, r *core.Recipe) error {
	raw := childText(el, "image")
	if raw == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(stripSpace(raw))
	if err != nil {
		return fmt.Errorf("decoding image data: %w", err)
	}
	kind := SniffImageType(data)
	if kind == "" {
		return fmt.Errorf("unrecognized image format")
	}
	r.Image = data
	r.ImageType = kind
	return nil
}

// parseGroups extracts the two-level ingredient structure: named
// <inggroup> elements, or all direct <ingredient> children as one
// implicit unnamed group.
func parseGroups(el *etree.Element) []core.IngredientGroup {
	var groups []core.IngredientGroup
	for _, g := range el.SelectElements("inggroup") {
		groups = append(groups, core.IngredientGroup{
			Name:        childText(g, "groupname"),
			Ingredients: parseIngredients(g),
		})
	}
	if len(groups) > 0 {
		return groups
	}
	if direct := parseIngredients(el); len(direct) > 0 {
		groups = append(groups, core.IngredientGroup{Ingredients: direct})
	}
	return groups
}

func parseIngredients(el *etree.Element) []core.Ingredient {
	var ingredients []core.Ingredient
	for _, ing := range el.SelectElements("ingredient") {
		ingredients = append(ingredients, core.Ingredient{
			Amount: childText(ing, "amount"),
			Unit:   childText(ing, "unit"),
			Item:   childText(ing, "item"),
		})
	}
	return ingredients
}

// childText returns the trimmed text of the first child with the given
// tag, or "" when the child is absent.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// stripSpace removes all whitespace; base64 payloads in CDATA blocks are
// usually line-wrapped.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
}

// SniffImageType detects the image format from its magic bytes. Returns
// "" for unknown formats.
func SniffImageType(data []byte) string {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xff, 0xd8, 0xff}):
		return core.ImageJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return core.ImagePNG
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("GIF8")):
		return core.ImageGIF
	}
	return ""
}
