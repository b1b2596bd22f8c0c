// Package cmd implements the CLI commands for gourmet2pdf using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gourmet2pdf",
	Short: "gourmet2pdf — convert Gourmet recipe exports into a recipe book",
	Long: `gourmet2pdf converts a Gourmet recipe-manager XML export (.grmt) into
a styled PDF recipe book, per-recipe schema.org JSON directories, or a
markdown document.

Usage:
  gourmet2pdf convert <input.grmt> [output] [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
