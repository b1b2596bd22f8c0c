// Package cmd — convert command.
// Orchestrates the single conversion pass: read input → parse recipes →
// render each recipe fully before moving to the next → write output.
// Per-recipe failures are contained here; only an unreadable input, a bad
// XML root or an invalid output target abort the run.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/prometheus42/gourmet2pdf/core"
	"github.com/prometheus42/gourmet2pdf/core/bookcfg"
	"github.com/prometheus42/gourmet2pdf/core/output"
	"github.com/prometheus42/gourmet2pdf/core/parse"
	"github.com/prometheus42/gourmet2pdf/core/render"
)

// Flag variables.
var (
	flagFormat      string
	flagOutput      string
	flagConfig      string
	flagTitle       string
	flagAuthor      string
	flagStrict      bool
	flagNoPageBreak bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.grmt> [output]",
	Short: "Convert a Gourmet XML export to the specified output format",
	Long: `Convert reads a Gourmet recipe export, normalizes every recipe and
renders the selected output format.

Examples:
  gourmet2pdf convert Rezepte.grmt
  gourmet2pdf convert Rezepte.grmt Rezeptbuch.pdf --no-page-break
  gourmet2pdf convert Rezepte.grmt --format json --output ./rezepte
  gourmet2pdf convert Rezepte.grmt --format markdown --title "Unsere Rezepte"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagFormat, "format", "pdf", "Output format: pdf, json or markdown")
	convertCmd.Flags().StringVar(&flagOutput, "output", "", "Output file (pdf, markdown) or directory (json)")
	convertCmd.Flags().StringVar(&flagConfig, "config", "", "Book configuration file (YAML)")
	convertCmd.Flags().StringVar(&flagTitle, "title", "", "Book title (overrides config)")
	convertCmd.Flags().StringVar(&flagAuthor, "author", "", "Book author (overrides config)")
	convertCmd.Flags().BoolVar(&flagStrict, "strict", false, "Abort on broken recipe elements instead of skipping them")
	convertCmd.Flags().BoolVar(&flagNoPageBreak, "no-page-break", false, "Separate recipes by a vertical gap instead of a page break")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	switch flagFormat {
	case "pdf", "json", "markdown":
	default:
		return fmt.Errorf("unsupported output format %q (supported: pdf, json, markdown)", flagFormat)
	}

	outPath := flagOutput
	if len(args) == 2 {
		outPath = args[1]
	}
	if outPath == "" {
		outPath = defaultOutput(input, flagFormat)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	parser := parse.New(parse.Options{Strict: flagStrict, Logger: logger})
	recipes, err := parser.Recipes(data)
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		return exportJSON(cfg, logger, recipes, outPath)
	}
	return buildBook(cfg, logger, recipes, outPath)
}

// exportJSON writes one directory per recipe below outDir. Existing
// directories and per-recipe write failures are logged and skipped; the
// batch always runs to the end of the sequence.
func exportJSON(cfg bookcfg.Config, logger *log.Logger, recipes parse.Seq, outDir string) error {
	writer, err := output.New(outDir)
	if err != nil {
		return err
	}
	builder := render.NewJSONRecipe(cfg, logger)

	var converted, skipped int
	for r, err := range recipes {
		if err != nil {
			return err
		}
		if r.ImageBroken {
			logger.Error("skipping recipe with broken image", "recipe", r.Title)
			continue
		}
		imageName := output.ImageFileName(r.ImageType)
		doc, err := builder.Marshal(builder.Build(r, imageName))
		if err != nil {
			logger.Error("could not build recipe document", "recipe", r.Title, "err", err)
			continue
		}
		dir, err := writer.WriteRecipeDir(r.Title, doc, r.Image, imageName)
		switch {
		case errors.Is(err, output.ErrExists):
			logger.Info("already converted, skipping", "recipe", r.Title, "dir", dir)
			skipped++
		case err != nil:
			logger.Error("could not write recipe", "recipe", r.Title, "err", err)
		default:
			converted++
		}
	}
	logger.Info("JSON export finished", "converted", converted, "skipped", skipped, "dir", writer.BaseDir)
	return nil
}

// buildBook renders the whole sequence into a single PDF or markdown file.
func buildBook(cfg bookcfg.Config, logger *log.Logger, recipes parse.Seq, outPath string) error {
	var builder core.BookBuilder
	switch flagFormat {
	case "pdf":
		builder = render.NewPDFBook(cfg, logger)
	case "markdown":
		builder = render.NewMarkdownBook(cfg)
	}

	var count int
	for r, err := range recipes {
		if err != nil {
			return err
		}
		if err := builder.Add(r); err != nil {
			return fmt.Errorf("rendering recipe %q: %w", r.Title, err)
		}
		count++
	}

	data, err := builder.Finish()
	if err != nil {
		return err
	}

	writer, err := output.New(filepath.Dir(outPath))
	if err != nil {
		return err
	}
	path, err := writer.WriteFile(filepath.Base(outPath), data)
	if err != nil {
		return err
	}
	logger.Info("book written", "recipes", count, "path", path)
	return nil
}

// loadConfig overlays the optional YAML config and the CLI flags onto the
// built-in defaults. Flags win over the file, the file over the defaults.
func loadConfig(cmd *cobra.Command) (bookcfg.Config, error) {
	cfg := bookcfg.Default()
	if flagConfig != "" {
		loaded, err := bookcfg.Load(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("title") {
		cfg.Title = flagTitle
	}
	if cmd.Flags().Changed("author") {
		cfg.Author = flagAuthor
	}
	if flagNoPageBreak {
		cfg.PageBreakAfterRecipe = false
	}
	return cfg, nil
}

// defaultOutput derives the output path from the input file name:
// <stem>.pdf, <stem>.md, or the <stem> directory for JSON.
func defaultOutput(input, format string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	switch format {
	case "json":
		return stem
	case "markdown":
		return stem + ".md"
	default:
		return stem + ".pdf"
	}
}
