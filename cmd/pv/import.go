package main

import (
	"github.com/paperview/paperview/internal/storage"
	"github.com/spf13/cobra"
)

var (
	importSeed  uint64
	importJSONL string
)

func init() {
	importCmd.Flags().Uint64Var(&importSeed, "seed", 0, "Seed for placeholder citation counts")
	importCmd.Flags().StringVar(&importJSONL, "jsonl", "", "Also append records missing from this JSONL file")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.bib>",
	Short: "Import a BibTeX file into the library",
	Long: `Parse a BibTeX file and upsert its records into the local library.

Records whose id is already in the library are updated in place.

Examples:
  pv import refs.bib
  pv import refs.bib --jsonl papers.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Parsed   int `json:"parsed"`
	New      int `json:"new"`
	Updated  int `json:"updated"`
	Appended int `json:"appended,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	records := mustParseBibTeX(cmd, args[0], importSeed)
	if len(records) == 0 {
		exitWithError(ExitDataError, "no @article entries found in %s", args[0])
	}

	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	res, err := db.Upsert(records)
	if err != nil {
		exitWithError(ExitError, "importing records: %v", err)
	}
	result := ImportResult{Parsed: len(records), New: res.Inserted, Updated: res.Updated}

	if importJSONL != "" {
		existing, err := storage.ReadAll(importJSONL)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", importJSONL, err)
		}
		for _, rec := range records {
			if _, found := storage.FindByID(existing, rec.ID); found {
				continue
			}
			if err := storage.Append(importJSONL, rec); err != nil {
				exitWithError(ExitError, "appending to %s: %v", importJSONL, err)
			}
			existing = append(existing, rec)
			result.Appended++
		}
	}

	if humanOutput {
		success("Imported %s: %d new, %d updated", recordCount(result.Parsed), result.New, result.Updated)
		if importJSONL != "" {
			outputHuman("  %d appended to %s\n", result.Appended, importJSONL)
		}
		return nil
	}
	return outputJSON(result)
}
