// Package paper defines the paper record produced by BibTeX parsing.
package paper

// MaxAuthors is the number of authors kept per record.
const MaxAuthors = 5

// Record is a paper parsed from a single BibTeX entry.
// Records are created once per entry and never modified afterwards.
type Record struct {
	ID       string   `json:"id"`      // Citation key, unique within one parse batch
	PaperID  string   `json:"paperId"` // Same as ID; kept for graph consumers keyed on paperId
	Title    string   `json:"title"`
	Authors  []string `json:"authors"` // At most MaxAuthors names
	Year     string   `json:"year"`    // Raw year text, may be non-numeric
	Abstract string   `json:"abstract"`
	URL      string   `json:"url"`

	// Citations is a placeholder in [0, 100) until real citation data exists.
	Citations int `json:"citations"`

	// References is reserved for real citation linkage and is always empty.
	References []string `json:"references"`
}

// FirstAuthor returns the first author or "" when there are none.
func (r Record) FirstAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}
