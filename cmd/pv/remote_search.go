package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperview/paperview/internal/api"
	"github.com/spf13/cobra"
)

func init() {
	remoteCmd.AddCommand(remoteSearchCmd)
	remoteCmd.AddCommand(remoteWordcloudCmd)
}

var remoteSearchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search papers by title on the backend",
	Long: `Search papers by title on the backend.

Examples:
  pv remote search attention is all you need --human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRemoteSearch,
}

var remoteWordcloudCmd = &cobra.Command{
	Use:   "wordcloud <pdf-url>",
	Short: "Extract word-cloud terms from a PDF link",
	Args:  cobra.ExactArgs(1),
	Run:   runRemoteWordcloud,
}

func runRemoteSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	remoteRun("", func(ctx context.Context, client *api.Client) ([]api.SearchResult, error) {
		return client.SearchPapers(ctx, query)
	}, func(results []api.SearchResult) {
		if len(results) == 0 {
			fmt.Printf("No papers match %q\n", query)
			return
		}
		for i, r := range results {
			fmt.Print(formatSearchResultHuman(r, i+1))
		}
	})
}

// formatSearchResultHuman formats a backend search hit for human-readable output.
func formatSearchResultHuman(r api.SearchResult, index int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d. %s\n", index, r.Title))
	sb.WriteString("   " + truncateString(r.Authors, 60))
	if r.Year != nil {
		sb.WriteString(fmt.Sprintf(" (%d)", *r.Year))
	}
	sb.WriteString("\n")
	if r.Citations != nil {
		sb.WriteString(fmt.Sprintf("   Citations: %d\n", *r.Citations))
	}
	if r.PDFURL != "" {
		sb.WriteString(fmt.Sprintf("   PDF: %s\n", r.PDFURL))
	} else if r.URL != "" {
		sb.WriteString(fmt.Sprintf("   URL: %s\n", r.URL))
	}
	return sb.String()
}

func runRemoteWordcloud(cmd *cobra.Command, args []string) {
	pdfURL := args[0]
	stop := startSpinner("extracting")
	remoteRun(pdfURL, func(ctx context.Context, client *api.Client) ([]api.WordFrequency, error) {
		defer stop()
		return client.ExtractWordcloud(ctx, pdfURL)
	}, func(words []api.WordFrequency) {
		for _, w := range words {
			fmt.Printf("  %-24s %5d  (cluster %d)\n", w.Word, w.Frequency, w.Cluster)
		}
	})
}
