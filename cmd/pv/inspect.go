package main

import (
	"github.com/paperview/paperview/internal/format"
	"github.com/paperview/paperview/internal/pdf"
	"github.com/spf13/cobra"
)

var inspectDOIOnly bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectDOIOnly, "doi", false, "Only extract the DOI")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show the pages, size, DOI and title of a PDF",
	Long: `Inspect a local PDF. The DOI and title are taken from the first pages.

Examples:
  pv inspect paper.pdf --human
  pv inspect paper.pdf --doi`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// DOIResponse is the output of inspect --doi.
type DOIResponse struct {
	Path string `json:"path"`
	DOI  string `json:"doi"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	if inspectDOIOnly {
		doi, err := pdf.ExtractDOI(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		if humanOutput {
			if doi == "" {
				outputHuman("No DOI found in %s\n", path)
			} else {
				outputHuman("%s\n", doi)
			}
			return nil
		}
		return outputJSON(DOIResponse{Path: path, DOI: doi})
	}

	info, err := pdf.Inspect(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if humanOutput {
		outputHuman("%s\n", info.Path)
		outputHuman("  Pages: %d\n", info.Pages)
		outputHuman("  Size:  %s\n", format.FileSize(info.Size))
		if info.Title != "" {
			outputHuman("  Title: %s\n", truncateString(info.Title, DetailTitleMaxLen))
		}
		if info.DOI != "" {
			outputHuman("  DOI:   %s\n", info.DOI)
		}
		return nil
	}
	return outputJSON(info)
}
