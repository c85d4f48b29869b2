package main

import (
	"fmt"
	"strconv"

	"github.com/paperview/paperview/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(isURLCmd)
}

var sizeCmd = &cobra.Command{
	Use:   "size <bytes>...",
	Short: "Format byte counts as file sizes",
	Long: `Format byte counts using 1024-based units.

Examples:
  pv size 0 1536 1048576`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSize,
}

var isURLCmd = &cobra.Command{
	Use:   "isurl <text>",
	Short: "Report whether text looks like a paper URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runIsURL,
}

// SizeResult pairs a byte count with its formatted size.
type SizeResult struct {
	Bytes int64  `json:"bytes"`
	Size  string `json:"size"`
}

// URLResult reports whether input is treated as a URL.
type URLResult struct {
	Input string `json:"input"`
	IsURL bool   `json:"is_url"`
}

func runSize(cmd *cobra.Command, args []string) error {
	results, err := formatSizes(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		for _, r := range results {
			outputHuman("%d\t%s\n", r.Bytes, r.Size)
		}
		return nil
	}
	return outputJSON(results)
}

func formatSizes(args []string) ([]SizeResult, error) {
	results := make([]SizeResult, 0, len(args))
	for _, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid byte count %q", a)
		}
		results = append(results, SizeResult{Bytes: n, Size: format.FileSize(n)})
	}
	return results, nil
}

func runIsURL(cmd *cobra.Command, args []string) error {
	res := URLResult{Input: args[0], IsURL: format.IsURL(args[0])}
	if humanOutput {
		outputHuman("%t\n", res.IsURL)
		return nil
	}
	return outputJSON(res)
}
