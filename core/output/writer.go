// Package output handles file and directory writing for gourmet2pdf.
// Single-document builds (PDF, markdown) become one file; the JSON export
// becomes one directory per recipe, named via the directory-name
// normalizer, skipped when it already exists.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus42/gourmet2pdf/core/normalize"
)

// ErrExists reports a recipe directory that was already converted by an
// earlier run. Callers skip the recipe and continue the batch.
var ErrExists = errors.New("recipe directory already exists")

// Writer writes conversion output below a base directory.
type Writer struct {
	BaseDir string
}

// New creates a Writer and ensures the base directory exists. An invalid
// base directory is fatal to the run.
func New(baseDir string) (*Writer, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		baseDir = wd
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{BaseDir: baseDir}, nil
}

// WriteFile writes a single-document artifact to the given path. A
// relative path is resolved against the base directory.
func (w *Writer) WriteFile(path string, data []byte) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.BaseDir, path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteRecipeDir creates the recipe's directory (named from its title),
// then writes recipe.json and, when image bytes are present, the sibling
// image file. Returns ErrExists when the directory is already there; no
// files of an existing directory are touched.
func (w *Writer) WriteRecipeDir(title string, doc []byte, image []byte, imageName string) (string, error) {
	dir := filepath.Join(w.BaseDir, normalize.DirectoryName(title))

	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return dir, ErrExists
		}
		return "", fmt.Errorf("creating recipe directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, "recipe.json")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if len(image) > 0 && imageName != "" {
		imgPath := filepath.Join(dir, imageName)
		if err := os.WriteFile(imgPath, image, 0644); err != nil {
			return "", fmt.Errorf("writing %s: %w", imgPath, err)
		}
	}
	return dir, nil
}

// ImageFileName returns the sibling image file name for a sniffed image
// type ("full.jpg" for JPEG), or "" when the type is empty.
func ImageFileName(imageType string) string {
	if imageType == "" {
		return ""
	}
	return "full." + imageType
}
