package cli

import (
	"fmt"
	"sort"

	"github.com/dgallion1/xmlview/internal/analyze"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize a document's structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		stats := analyze.Analyze(doc)

		fmt.Printf("elements:   %d (%d distinct tags)\n", stats.TotalElements, stats.ElementCounts.Len())
		fmt.Printf("attributes: %d (%d distinct names)\n", stats.TotalAttributes, stats.AttributeCounts.Len())
		fmt.Printf("max depth:  %d\n", stats.MaxDepth)

		fmt.Println("\ntop tags:")
		printRanked(stats.ElementCounts.Ranked())

		if stats.AttributeCounts.Len() > 0 {
			fmt.Println("\ntop attributes:")
			printRanked(stats.AttributeCounts.Ranked())
		}

		fmt.Println("\nelements per depth:")
		depths := lo.Keys(stats.DepthCounts)
		sort.Ints(depths)
		for _, d := range depths {
			fmt.Printf("  %2d: %d\n", d, stats.DepthCounts[d])
		}
		return nil
	},
}

func printRanked(entries []analyze.CountEntry) {
	for i, e := range entries {
		if i >= statsTop {
			break
		}
		fmt.Printf("  %-24s %d\n", e.Name, e.Count)
	}
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of ranked entries to show")
}
