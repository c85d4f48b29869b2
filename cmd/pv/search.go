package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultListLimit, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the library",
	Long: `Full-text search over the title, abstract and authors of library papers.

Examples:
  pv search "graph neural"
  pv search transformer --limit 5 --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	records, err := db.Search(query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(records) == 0 {
			outputHuman("No papers match %q\n", query)
			return nil
		}
		outputHuman("%s match %q:\n\n", recordCount(len(records)), query)
		printRecordsHuman(records)
		return nil
	}
	return outputJSON(records)
}
