// Package render — markdown recipe book.
// The simplest book builder: one markdown document with a level-1 heading
// per recipe, reusing the flattened ingredient lines.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/normalize"
)

// MarkdownBook implements core.BookBuilder for markdown output.
type MarkdownBook struct {
	cfg   bookcfg.Config
	buf   bytes.Buffer
	count int
}

// NewMarkdownBook creates a MarkdownBook with the book title and author
// as the document preamble.
func NewMarkdownBook(cfg bookcfg.Config) *MarkdownBook {
	b := &MarkdownBook{cfg: cfg}
	fmt.Fprintf(&b.buf, "%s\n%s\n\n", cfg.Title, strings.Repeat("=", len([]rune(cfg.Title))))
	fmt.Fprintf(&b.buf, "%s\n", cfg.Author)
	return b
}

// Add appends one recipe section.
func (b *MarkdownBook) Add(r *core.Recipe) error {
	b.count++
	fmt.Fprintf(&b.buf, "\n# %s\n\n", r.Title)

	if r.Source != "" {
		fmt.Fprintf(&b.buf, "- Quelle: %s\n", r.Source)
	}
	if r.Link != "" {
		fmt.Fprintf(&b.buf, "- Link: <%s>\n", r.Link)
	}
	if r.Rating != "" {
		if rating, ok := normalize.ParseRating(r.Rating); ok {
			fmt.Fprintf(&b.buf, "- Bewertung: %s\n", rating.Stars())
		}
	}
	if r.Category != "" {
		fmt.Fprintf(&b.buf, "- Kategorie: %s\n", r.Category)
	}

	fmt.Fprintf(&b.buf, "\n## Zutaten\n\n")
	lines := normalize.FlattenGroups(r.Groups)
	if len(lines) == 0 {
		fmt.Fprintf(&b.buf, "*keine Zutaten*\n")
	}
	for _, line := range lines {
		if name, ok := strings.CutPrefix(line, normalize.GroupHeaderPrefix); ok {
			fmt.Fprintf(&b.buf, "\n### %s\n\n", name)
			continue
		}
		fmt.Fprintf(&b.buf, "- %s\n", line)
	}

	if r.Instructions != "" {
		fmt.Fprintf(&b.buf, "\n## Anweisungen\n\n%s\n", r.Instructions)
	}
	if r.Modifications != "" {
		fmt.Fprintf(&b.buf, "\n## Notizen\n\n%s\n", r.Modifications)
	}
	return nil
}

// Finish returns the markdown document.
func (b *MarkdownBook) Finish() ([]byte, error) {
	return b.buf.Bytes(), nil
}

// Extension returns the file extension for markdown output.
func (b *MarkdownBook) Extension() string {
	return ".md"
}
