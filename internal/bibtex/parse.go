// Package bibtex reads and writes BibTeX entries as paper records.
package bibtex

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"regexp"
	"strings"

	"github.com/paperview/paperview/internal/paper"
	"github.com/sirupsen/logrus"
)

// PlaceholderCitationMax is the exclusive upper bound of the placeholder citation count.
const PlaceholderCitationMax = 100

// DefaultEntryTypes lists the entry types recognised when none are configured.
var DefaultEntryTypes = []string{"article"}

// Fields extracted from each entry body.
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldYear     = "year"
	FieldAbstract = "abstract"
	FieldURL      = "url"
)

// AuthorSeparator is the literal delimiter between names in an author field.
const AuthorSeparator = " and "

// entryStartRegex matches "@type{" allowing whitespace before the brace.
var entryStartRegex = regexp.MustCompile(`@([A-Za-z]+)\s*\{`)

// Rand is the randomness source used for placeholder values.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand draws from the math/rand/v2 top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Parser extracts paper records from BibTeX text.
type Parser struct {
	rng        Rand
	log        logrus.FieldLogger
	entryTypes map[string]bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithRand sets the source for placeholder citation counts.
func WithRand(r Rand) Option {
	return func(p *Parser) {
		if r != nil {
			p.rng = r
		}
	}
}

// WithLogger sets the logger that receives skip and duplicate diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithEntryTypes replaces the recognised entry types (case-insensitive).
func WithEntryTypes(types ...string) Option {
	return func(p *Parser) {
		if len(types) == 0 {
			return
		}
		p.entryTypes = make(map[string]bool, len(types))
		for _, t := range types {
			p.entryTypes[strings.ToLower(t)] = true
		}
	}
}

// NewParser creates a parser for @article entries.
func NewParser(opts ...Option) *Parser {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Parser{
		rng: globalRand{},
		log: discard,
	}
	WithEntryTypes(DefaultEntryTypes...)(p)

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts records from text using a default parser.
func Parse(text string) []paper.Record {
	return NewParser().Parse(text)
}

// ParseFile reads a .bib file and extracts its records.
// Only I/O failures are reported; malformed entries are skipped.
func ParseFile(path string, opts ...Option) ([]paper.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex file: %w", err)
	}
	return NewParser(opts...).Parse(string(data)), nil
}

// Parse extracts one record per recognised entry, in source order.
// Entries that cannot be parsed are skipped. A key repeated within text
// keeps only its first entry, so duplicates reduce the record count below
// the entry count. The result is never nil.
func (p *Parser) Parse(text string) []paper.Record {
	records := []paper.Record{}
	seen := NewIndex()
	closing := braceMatches(text)

	consumed := 0
	for _, loc := range entryStartRegex.FindAllStringSubmatchIndex(text, -1) {
		start, bodyStart := loc[0], loc[1]
		if start < consumed {
			continue // inside an entry already read
		}

		entryType := strings.ToLower(text[loc[2]:loc[3]])
		bodyEnd, ok := closing[bodyStart-1]
		if !ok {
			p.log.WithField("offset", start).Debug("skipping unterminated bibtex entry")
			continue
		}
		consumed = bodyEnd + 1

		if !p.entryTypes[entryType] {
			continue
		}

		rec, ok := p.parseEntry(text[bodyStart:bodyEnd])
		if !ok {
			p.log.WithField("offset", start).Debug("skipping bibtex entry without a key")
			continue
		}

		if seen.HasEntry(rec.ID, "") {
			p.log.WithField("key", rec.ID).Warn("skipping duplicate bibtex key")
			continue
		}
		seen.Add(rec.ID, "")

		records = append(records, rec)
	}

	return records
}

// parseEntry builds a record from the text between an entry's braces.
func (p *Parser) parseEntry(body string) (paper.Record, bool) {
	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return paper.Record{}, false
	}

	key := strings.TrimSpace(body[:comma])
	if key == "" || strings.ContainsAny(key, "={}\"") {
		return paper.Record{}, false
	}

	fields := parseFields(body[comma+1:])
	return paper.Record{
		ID:         key,
		PaperID:    key,
		Title:      fields[FieldTitle],
		Authors:    parseAuthors(fields[FieldAuthor]),
		Year:       fields[FieldYear],
		Abstract:   fields[FieldAbstract],
		URL:        fields[FieldURL],
		Citations:  p.rng.IntN(PlaceholderCitationMax),
		References: []string{},
	}, true
}

// parseFields reads the top-level "name = value" pairs of an entry body.
// Names are lowercased and the first value of a name wins. Text inside a
// value is never read as a field. A segment without "name =" is skipped up
// to the next top-level comma; an unterminated value ends the walk.
func parseFields(content string) map[string]string {
	fields := make(map[string]string)

	i := 0
	for {
		i = skipSeparators(content, i)
		if i >= len(content) {
			return fields
		}

		nameEnd := i
		for nameEnd < len(content) && isNameByte(content[nameEnd]) {
			nameEnd++
		}
		eq := skipSpace(content, nameEnd)
		if nameEnd == i || eq >= len(content) || content[eq] != '=' {
			i = nextTopLevelComma(content, i)
			continue
		}

		start := skipSpace(content, eq+1)
		raw, n, ok := readValue(content[start:])
		if !ok {
			return fields
		}
		name := strings.ToLower(content[i:nameEnd])
		if _, dup := fields[name]; !dup {
			fields[name] = strings.TrimSpace(cleanValue(raw))
		}
		i = start + n
	}
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == ':' || c == '.' || c == '+'
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func skipSeparators(s string, i int) int {
	for {
		i = skipSpace(s, i)
		if i >= len(s) || s[i] != ',' {
			return i
		}
		i++
	}
}

// nextTopLevelComma returns the index of the first comma at or after i that
// is outside braces and quotes, or len(s).
func nextTopLevelComma(s string, i int) int {
	depth, quoted := 0, false
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				quoted = !quoted
			}
		case ',':
			if depth <= 0 && !quoted {
				return i
			}
		}
	}
	return len(s)
}

// readValue reads a braced, quoted, or bare value from the start of s and
// returns it with the number of bytes consumed.
func readValue(s string) (string, int, bool) {
	if s == "" {
		return "", 0, false
	}

	switch s[0] {
	case '{':
		end, ok := matchBrace(s, 0)
		if !ok {
			return "", 0, false
		}
		return s[1:end], end + 1, true

	case '"':
		depth := 0
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				if depth == 0 {
					return s[1:i], i + 1, true
				}
			}
		}
		return "", 0, false

	default:
		end := strings.IndexAny(s, ",}\n\r\t ")
		if end < 0 {
			end = len(s)
		}
		if end == 0 {
			return "", 0, false
		}
		return s[:end], end, true
	}
}

// braceMatches maps the index of every balanced "{" in s to the index of
// its closing brace, in one pass. Backslash-escaped braces do not count.
func braceMatches(s string) map[int]int {
	matches := make(map[int]int)
	var open []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			open = append(open, i)
		case '}':
			if len(open) > 0 {
				matches[open[len(open)-1]] = i
				open = open[:len(open)-1]
			}
		}
	}
	return matches
}

// matchBrace returns the index of the brace closing the one at open.
// Backslash-escaped braces do not count.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// cleanValue drops grouping braces and unescapes LaTeX special characters.
func cleanValue(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '\\' && i+1 < len(v) && strings.IndexByte(`{}&%$#_`, v[i+1]) >= 0:
			b.WriteByte(v[i+1])
			i++
		case c == '{' || c == '}':
			// grouping brace
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// parseAuthors splits an author field into at most paper.MaxAuthors names.
func parseAuthors(field string) []string {
	authors := []string{}
	if field == "" {
		return authors
	}

	// Empty names between separators are kept so positions match the field.
	for _, name := range strings.Split(field, AuthorSeparator) {
		authors = append(authors, strings.Join(strings.Fields(name), " "))
		if len(authors) == paper.MaxAuthors {
			break
		}
	}
	return authors
}
