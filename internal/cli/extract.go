package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/xmlview/internal/extract"
	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/spf13/cobra"
)

var (
	extractBasis     string
	extractElement   string
	extractAttribute string
	extractAncestors bool
	extractPreserve  bool
	extractOut       string
	extractDryRun    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file] [term]",
	Short: "Extract matching elements into a new XML document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		q := extract.Query{
			Term:              args[1],
			Basis:             extract.Basis(extractBasis),
			SpecificElement:   extractElement,
			SpecificAttribute: extractAttribute,
			IncludeAncestors:  extractAncestors,
			PreserveStructure: extractPreserve,
		}

		if extractDryRun {
			preview, err := extract.PreviewQuery(doc, q)
			if err != nil {
				return err
			}
			fmt.Printf("%d match(es)\n", preview.MatchCount)
			for _, sample := range preview.Samples {
				fmt.Println(xmltree.Marshal(sample))
			}
			return nil
		}

		root, err := extract.Extract(doc, q, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		out := xmltree.MarshalIndent(root) + "\n"
		if extractOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(extractOut, []byte(out), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %d result(s) to %s\n", len(root.Children), extractOut)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractBasis, "basis", string(extract.BasisElementName),
		"extraction basis: elementName, attribute, content")
	extractCmd.Flags().StringVar(&extractElement, "element", "", "restrict to this element tag")
	extractCmd.Flags().StringVar(&extractAttribute, "attribute", "", "restrict to this attribute name")
	extractCmd.Flags().BoolVar(&extractAncestors, "ancestors", false, "include ancestor context")
	extractCmd.Flags().BoolVar(&extractPreserve, "preserve", false, "preserve document structure (with --ancestors)")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "write the result document to this file")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "preview matches without building the result")
}
