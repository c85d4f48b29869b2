package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild <file.jsonl>",
	Short: "Rebuild the library from a JSONL export",
	Long: `Replace the library contents with the records of a JSONL export.

Examples:
  pv export --format jsonl -o papers.jsonl
  pv rebuild papers.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runRebuild,
}

// RebuildResult reports the number of records loaded.
type RebuildResult struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	count, err := db.RebuildFromJSONL(args[0])
	if err != nil {
		exitWithError(ExitDataError, "rebuilding library: %v", err)
	}

	if humanOutput {
		success("Rebuilt library with %s", recordCount(count))
		return nil
	}
	return outputJSON(RebuildResult{Status: "rebuilt", Count: count})
}
