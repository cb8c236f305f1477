package cli

import (
	"fmt"

	"github.com/dgallion1/xmlview/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchCaseSensitive bool
	searchWholeWord     bool
	searchRegex         bool
	searchIn            string
	searchShowExpansion bool
)

var searchCmd = &cobra.Command{
	Use:   "search [file] [term]",
	Short: "Search a document and print matching node paths",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		res, err := search.Search(doc, args[1], search.Options{
			CaseSensitive: searchCaseSensitive,
			WholeWord:     searchWholeWord,
			UseRegex:      searchRegex,
			SearchIn:      search.Scope(searchIn),
		})
		if err != nil {
			return err
		}

		fmt.Printf("%d match(es)\n", len(res.MatchedPaths))
		for _, p := range res.MatchedPaths {
			fmt.Println(p)
		}
		if searchShowExpansion && len(res.ExpansionPaths) > 0 {
			fmt.Println("\nexpand:")
			for _, p := range res.ExpansionPaths {
				fmt.Println(p)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().BoolVar(&searchWholeWord, "whole-word", false, "match whole words only")
	searchCmd.Flags().BoolVar(&searchRegex, "regex", false, "treat the term as a regular expression")
	searchCmd.Flags().StringVar(&searchIn, "in", "all", "where to search: all, elements, attributes, values")
	searchCmd.Flags().BoolVar(&searchShowExpansion, "show-expansion", false, "also print the ancestor expansion set")
}
