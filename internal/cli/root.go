// Package cli implements the xmlview command line for one-shot
// exploration of a local document.
package cli

import (
	"fmt"
	"os"

	"github.com/dgallion1/xmlview/internal/importer"
	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/spf13/cobra"
)

var positionalPaths bool

var rootCmd = &cobra.Command{
	Use:   "xmlview",
	Short: "Explore, search and extract from XML documents",
	Long: `xmlview loads an XML (or HTML, Markdown, CSV, text, PDF, DOCX)
document into an in-memory tree and lets you search it, summarize its
structure, and extract matching parts into a new XML document.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&positionalPaths, "positional-paths", false,
		"use unique tag[k] path segments instead of bare tag names")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(extractCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDocument imports a local file into a document tree.
func loadDocument(path string) (*xmltree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := importer.Load(f, path, xmltree.BuildOptions{PositionalPaths: positionalPaths})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}
