package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the library",
	Long: `List papers in the local library in import order.

Examples:
  pv list
  pv list --limit 20 --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	records, err := db.List(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	if humanOutput {
		total, _ := db.Count()
		switch {
		case len(records) == 0:
			outputHuman("No papers in library\n")
		case listLimit > 0 && listLimit < total:
			outputHuman("%d papers (showing first %d):\n\n", total, len(records))
			printRecordsHuman(records)
		default:
			outputHuman("%s in library:\n\n", recordCount(len(records)))
			printRecordsHuman(records)
		}
		return nil
	}
	return outputJSON(records)
}
