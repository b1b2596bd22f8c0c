// Package render — PDF recipe book.
// Builds a styled A4 PDF from the recipe sequence using gofpdf: first-page
// title/author block, running footer with book title and page number, one
// outline entry per recipe, and a two-column ingredients/image block.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jung-kurt/gofpdf"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/normalize"
)

// imageTypes maps sniffed image formats to gofpdf type strings.
var imageTypes = map[string]string{
	core.ImageJPEG: "JPG",
	core.ImagePNG:  "PNG",
	core.ImageGIF:  "GIF",
}

// PDFBook implements core.BookBuilder for PDF output.
type PDFBook struct {
	cfg bookcfg.Config
	log *log.Logger

	pdf *gofpdf.Fpdf
	tr  func(string) string

	// onHeading is invoked alongside every recipe heading block; the
	// default hook registers a PDF outline entry keyed by the heading
	// text and records it for inspection.
	onHeading func(text string)
	outline   []string

	count int
}

// NewPDFBook creates a PDFBook and emits the first page with the
// title/author block.
func NewPDFBook(cfg bookcfg.Config, logger *log.Logger) *PDFBook {
	if logger == nil {
		logger = log.Default()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cfg.Title, true)
	pdf.SetAuthor(cfg.Author, true)
	pdf.SetMargins(cfg.MarginHorizontal, cfg.MarginVertical, cfg.MarginHorizontal)
	pdf.SetAutoPageBreak(true, cfg.MarginVertical+10)

	b := &PDFBook{
		cfg: cfg,
		log: logger,
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	b.onHeading = func(text string) {
		pdf.Bookmark(b.tr(text), 0, -1)
		b.outline = append(b.outline, text)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		half := b.contentWidth() / 2
		pdf.CellFormat(half, 10, b.tr(cfg.Title), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 10, fmt.Sprintf("Seite %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, b.tr(cfg.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, b.tr(cfg.Author), "", 1, "C", false, 0, "")
	pdf.Ln(16)

	return b
}

// Add renders one recipe: heading, metadata block, ingredients/image
// columns, then the optional instructions and notes sections. Recipes
// after the first are separated by a page break or a fixed gap per the
// configured layout mode.
func (b *PDFBook) Add(r *core.Recipe) error {
	if b.count > 0 {
		if b.cfg.PageBreakAfterRecipe {
			b.pdf.AddPage()
		} else {
			b.pdf.Ln(14)
		}
	}
	b.count++

	b.heading(r.Title)
	b.metadataBlock(r)
	b.subheading("Zutaten")
	b.ingredientColumns(r)

	if r.Instructions != "" {
		b.subheading("Anweisungen")
		b.paragraph(r.Instructions)
	}
	if r.Modifications != "" {
		b.subheading("Notizen")
		b.paragraph(r.Modifications)
	}
	return b.pdf.Error()
}

// Finish closes the document and returns the PDF bytes.
func (b *PDFBook) Finish() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (b *PDFBook) Extension() string {
	return ".pdf"
}

// PageCount returns the number of pages emitted so far.
func (b *PDFBook) PageCount() int {
	return b.pdf.PageCount()
}

// OutlineEntries returns the registered outline titles in emission order.
func (b *PDFBook) OutlineEntries() []string {
	return b.outline
}

func (b *PDFBook) contentWidth() float64 {
	w, _ := b.pdf.GetPageSize()
	return w - 2*b.cfg.MarginHorizontal
}

// heading emits a recipe heading and fires the outline hook.
func (b *PDFBook) heading(text string) {
	b.pdf.Ln(2)
	b.pdf.SetFont("Helvetica", "B", 15)
	b.pdf.MultiCell(0, 8, b.tr(text), "", "L", false)
	b.onHeading(text)
	b.pdf.Ln(1)
}

func (b *PDFBook) subheading(text string) {
	b.pdf.Ln(3)
	b.pdf.SetFont("Helvetica", "B", 13)
	b.pdf.MultiCell(0, 7, b.tr(text), "", "L", false)
	b.pdf.Ln(1)
}

func (b *PDFBook) paragraph(text string) {
	b.pdf.SetFont("Times", "", 11)
	b.pdf.MultiCell(0, 6, b.tr(text), "", "L", false)
}

// metadataBlock writes the labeled source/link/rating/category fragments,
// one per line. Nothing is emitted when all fields are absent.
func (b *PDFBook) metadataBlock(r *core.Recipe) {
	type fragment struct {
		label, text, link string
	}
	var frags []fragment
	if r.Source != "" {
		frags = append(frags, fragment{label: "Quelle", text: r.Source})
	}
	if r.Link != "" {
		frags = append(frags, fragment{label: "Link", text: r.Link, link: r.Link})
	}
	if r.Rating != "" {
		if rating, ok := normalize.ParseRating(r.Rating); ok {
			frags = append(frags, fragment{label: "Bewertung", text: rating.Stars()})
		} else {
			b.log.Warn("unparseable recipe rating", "recipe", r.Title, "text", r.Rating)
		}
	}
	if r.Category != "" {
		frags = append(frags, fragment{label: "Kategorie", text: r.Category})
	}
	if len(frags) == 0 {
		return
	}

	b.pdf.SetFont("Times", "", 8)
	for _, f := range frags {
		line := f.label + ": " + f.text
		if f.link != "" {
			b.pdf.SetTextColor(0, 0, 255)
			b.pdf.CellFormat(0, 4, b.tr(line), "", 1, "L", false, 0, f.link)
			b.pdf.SetTextColor(0, 0, 0)
			continue
		}
		b.pdf.CellFormat(0, 4, b.tr(line), "", 1, "L", false, 0, "")
	}
}

// ingredientColumns renders the flattened ingredient groups on the left
// against the recipe image on the right, scaled into the configured
// bounding box with preserved aspect ratio.
func (b *PDFBook) ingredientColumns(r *core.Recipe) {
	lines := normalize.FlattenGroups(r.Groups)
	colWidth := b.contentWidth() - b.cfg.ImageBox - 5
	yStart := b.pdf.GetY()

	imageBottom := yStart
	if len(r.Image) > 0 {
		imageBottom = yStart + b.placeImage(r, yStart)
	}

	if len(lines) == 0 {
		b.pdf.SetFont("Times", "I", 11)
		b.pdf.MultiCell(colWidth, 6, b.tr("keine Zutaten"), "", "L", false)
	}
	for _, line := range lines {
		if name, ok := strings.CutPrefix(line, normalize.GroupHeaderPrefix); ok {
			b.pdf.SetFont("Times", "B", 11)
			b.pdf.MultiCell(colWidth, 6, b.tr(name), "", "L", false)
			continue
		}
		b.pdf.SetFont("Times", "", 11)
		b.pdf.MultiCell(colWidth, 6, b.tr(line), "", "L", false)
	}

	if imageBottom > b.pdf.GetY() {
		b.pdf.SetY(imageBottom)
	}
	b.pdf.Ln(2)
}

// placeImage draws the recipe image right-aligned at the given y and
// returns its rendered height. A registration failure degrades to no
// image, never past the recipe.
func (b *PDFBook) placeImage(r *core.Recipe, y float64) float64 {
	opts := gofpdf.ImageOptions{ImageType: imageTypes[r.ImageType]}
	name := fmt.Sprintf("recipe-image-%d", b.count)

	info := b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(r.Image))
	if b.pdf.Err() {
		b.log.Warn("could not register recipe image", "recipe", r.Title, "err", b.pdf.Error())
		b.pdf.ClearError()
		return 0
	}

	w, h := info.Width(), info.Height()
	scale := 1.0
	if box := b.cfg.ImageBox; w > box || h > box {
		scale = box / w
		if box/h < scale {
			scale = box / h
		}
	}
	w *= scale
	h *= scale

	pageWidth, _ := b.pdf.GetPageSize()
	x := pageWidth - b.cfg.MarginHorizontal - w
	b.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return h
}
