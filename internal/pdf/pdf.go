// Package pdf reads page counts, DOIs and titles from local PDFs.
package pdf

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxScanPages is how many leading pages are searched for a DOI or title.
const MaxScanPages = 3

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Info summarizes a PDF before it is uploaded.
type Info struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Pages int    `json:"pages"`
	DOI   string `json:"doi,omitempty"`
	Title string `json:"title,omitempty"`
}

// Inspect opens a PDF and reports its size, page count, first DOI and a
// best-effort title. A missing DOI or title is not an error.
func Inspect(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	info := &Info{Path: path, Size: st.Size(), Pages: r.NumPage()}

	pages := leadingText(r, MaxScanPages)
	for _, text := range pages {
		if doi := findDOI(text); doi != "" {
			info.DOI = doi
			break
		}
	}
	if len(pages) > 0 {
		info.Title = findTitle(pages[0])
	}
	return info, nil
}

// ExtractDOI returns the first DOI on the leading pages of a PDF, or "".
func ExtractDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	for _, text := range leadingText(r, MaxScanPages) {
		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// leadingText returns the plain text of up to n leading pages, skipping
// pages that cannot be decoded.
func leadingText(r *pdf.Reader, n int) []string {
	n = min(n, r.NumPage())

	var texts []string
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

// findTitle returns the first substantial line of the first page.
func findTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"), strings.Contains(lower, "copyright"), strings.Contains(lower, "arxiv:"):
		return true
	case strings.Contains(lower, "volume") && strings.Contains(lower, "issue"):
		return true
	case strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}
