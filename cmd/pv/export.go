package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/paperview/paperview/internal/bibtex"
	"github.com/paperview/paperview/internal/paper"
	"github.com/paperview/paperview/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
	exportAppend bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Export format: bibtex or jsonl")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "Append entries not already in the output .bib file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library",
	Long: `Export the library as BibTeX or JSONL.

With --append, entries whose key or DOI is already in the output .bib file
are skipped and the rest are appended.

Examples:
  pv export -o library.bib
  pv export --append -o refs.bib
  pv export --format jsonl -o papers.jsonl`,
	RunE: runExport,
}

// ExportResult reports an export to a file.
type ExportResult struct {
	Output   string `json:"output"`
	Exported int    `json:"exported"`
	Skipped  int    `json:"skipped"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "bibtex" && exportFormat != "jsonl" {
		exitWithError(ExitError, "unknown format: %s (must be bibtex or jsonl)", exportFormat)
	}
	if exportAppend && (exportOutput == "" || exportFormat != "bibtex") {
		exitWithError(ExitError, "--append needs a bibtex --output file")
	}

	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	records, err := db.List(0)
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	result := ExportResult{Output: exportOutput}
	switch {
	case exportAppend:
		fresh, err := filterExisting(exportOutput, records)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		result.Exported = len(fresh)
		result.Skipped = len(records) - len(fresh)
		if len(fresh) > 0 {
			if err := bibtex.AppendToFile(exportOutput, bibtex.ToBibTeXList(fresh)); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		}

	case exportFormat == "jsonl":
		if exportOutput == "" {
			exitWithError(ExitError, "jsonl export needs --output")
		}
		if err := storage.WriteAll(exportOutput, records); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
		result.Exported = len(records)

	default:
		content := bibtex.ToBibTeXList(records)
		if exportOutput == "" {
			fmt.Print(content)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(content), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
		result.Exported = len(records)
	}

	if humanOutput {
		success("Exported %s to %s (%d skipped)", recordCount(result.Exported), result.Output, result.Skipped)
		return nil
	}
	return outputJSON(result)
}

// filterExisting drops records whose key or DOI is already in the .bib file
// at path, or that repeat an earlier record of the batch.
func filterExisting(path string, records []paper.Record) ([]paper.Record, error) {
	idx, err := bibtex.IndexFile(path)
	if err != nil {
		return nil, err
	}

	fresh := make([]paper.Record, 0, len(records))
	for _, r := range records {
		doi := doiFromURL(r.URL)
		if idx.HasEntry(r.ID, doi) {
			continue
		}
		idx.Add(r.ID, doi)
		fresh = append(fresh, r)
	}
	return fresh, nil
}

// doiFromURL returns the DOI of a doi.org link, or "".
func doiFromURL(u string) string {
	lower := strings.ToLower(u)
	if !strings.Contains(lower, "doi.org/") {
		return ""
	}
	return bibtex.NormalizeDOI(u[strings.Index(lower, "doi.org/"):])
}
