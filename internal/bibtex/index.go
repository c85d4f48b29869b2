package bibtex

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Index records which citation keys and DOIs are already present.
type Index struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// Add records a key and, when non-empty, its DOI.
func (idx *Index) Add(key, doi string) {
	idx.Keys[key] = true
	if d := NormalizeDOI(doi); d != "" {
		idx.DOIs[d] = key
	}
}

// HasEntry reports whether an entry is already indexed.
// DOI is the primary match; citation key is the fallback.
func (idx *Index) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[NormalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// Len returns the number of indexed keys.
func (idx *Index) Len() int {
	return len(idx.Keys)
}

var (
	indexKeyRegex = regexp.MustCompile(`@\w+\s*\{([^,\s]+)\s*,`)
	indexDOIRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// IndexFile builds an index from an existing .bib file.
// A missing file yields an empty index.
func IndexFile(path string) (*Index, error) {
	idx := NewIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("opening bibtex file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string

	for scanner.Scan() {
		line := scanner.Text()

		if m := indexKeyRegex.FindStringSubmatch(line); len(m) > 1 {
			currentKey = m[1]
			idx.Add(currentKey, "")
		}

		if m := indexDOIRegex.FindStringSubmatch(line); len(m) > 1 && currentKey != "" {
			idx.Add(currentKey, m[1])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning bibtex file: %w", err)
	}
	return idx, nil
}

// NormalizeDOI lowercases a DOI and strips resolver prefixes.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "DOI:", "doi:"} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return strings.ToLower(doi)
}

// AppendToFile appends BibTeX content to a file, creating it if needed.
func AppendToFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening bibtex file for append: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\n" + content); err != nil {
		return fmt.Errorf("appending to bibtex file: %w", err)
	}
	return nil
}
