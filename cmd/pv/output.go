package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/paperview/paperview/internal/notify"
	"github.com/paperview/paperview/internal/paper"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for list/search commands

	// Title truncation lengths by context
	ListTitleMaxLen   = 50 // Used in list and search output
	DetailTitleMaxLen = 70 // Used in get command detail view

	TextWrapWidth = 68
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		notify.New(os.Stderr).Error("%s", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// success prints a green status line in human mode. JSON mode stays silent
// so the command's own JSON is the only thing on stdout.
func success(format string, args ...interface{}) {
	if humanOutput {
		notify.New(os.Stdout).Success(format, args...)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	ID     string `json:"id,omitempty"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorsShort joins up to maxCount authors and adds "et al." past that.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	if len(authors) > maxCount {
		return strings.Join(authors[:maxCount], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}

// printRecordsHuman prints one line per record.
func printRecordsHuman(records []paper.Record) {
	for _, r := range records {
		fmt.Printf("  %-20s %s\n", r.ID, truncateString(r.Title, ListTitleMaxLen))
	}
}

// printRecordHuman prints the detail view of a record.
func printRecordHuman(r paper.Record) {
	fmt.Println(r.ID)
	fmt.Printf("  Title:     %s\n", wrapText(r.Title, TextWrapWidth, "             "))
	fmt.Printf("  Authors:   %s\n", formatAuthorsShort(r.Authors, 3))
	if r.Year != "" {
		fmt.Printf("  Year:      %s\n", r.Year)
	}
	fmt.Printf("  Citations: %d\n", r.Citations)
	if r.URL != "" {
		fmt.Printf("  URL:       %s\n", r.URL)
	}
	if r.Abstract != "" {
		fmt.Printf("\n  %s\n", wrapText(r.Abstract, TextWrapWidth, "  "))
	}
}
