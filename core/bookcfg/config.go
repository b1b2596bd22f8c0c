// Package bookcfg holds the recipe book configuration: title, author,
// page geometry and layout mode. It replaces the module-level constants
// of earlier versions with an explicit structure passed into the
// renderers. An optional YAML file can override the defaults; CLI flags
// are overlaid on top by the command layer.
package bookcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one recipe book.
type Config struct {
	// Title and Author appear on the first page, in the running footer
	// and in the PDF document metadata. Author is also the fixed author
	// constant of the JSON export.
	Title  string `yaml:"title"`
	Author string `yaml:"author"`

	// Page geometry in millimeters, A4 portrait.
	MarginHorizontal float64 `yaml:"margin_horizontal"`
	MarginVertical   float64 `yaml:"margin_vertical"`

	// ImageBox is the side length of the square bounding box the recipe
	// image is scaled into, preserving aspect ratio.
	ImageBox float64 `yaml:"image_box"`

	// PageBreakAfterRecipe forces a page break between recipes; when
	// false a fixed vertical gap is used instead.
	PageBreakAfterRecipe bool `yaml:"page_break_after_recipe"`
}

// Default returns the built-in book configuration.
func Default() Config {
	return Config{
		Title:                "Rezeptsammlung",
		Author:               "Markus Wichmann",
		MarginHorizontal:     20,
		MarginVertical:       15,
		ImageBox:             70,
		PageBreakAfterRecipe: true,
	}
}

// Load reads a YAML config file and overlays it onto the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
