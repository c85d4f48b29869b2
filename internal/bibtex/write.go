package bibtex

import (
	"fmt"
	"strings"

	"github.com/paperview/paperview/internal/paper"
)

// ToBibTeX renders a record as an @article entry.
// Empty optional fields are omitted; the title is always written.
func ToBibTeX(rec paper.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@article{%s,\n", rec.ID)

	if len(rec.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", escapeLatex(strings.Join(rec.Authors, AuthorSeparator)))
	}

	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(rec.Title))

	if rec.Year != "" {
		fmt.Fprintf(&b, "  year = {%s},\n", escapeLatex(rec.Year))
	}

	if rec.Abstract != "" {
		fmt.Fprintf(&b, "  abstract = {%s},\n", escapeLatex(rec.Abstract))
	}

	// URLs are written verbatim; escaping would break % and _ in paths.
	if rec.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", rec.URL)
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList renders records separated by blank lines.
func ToBibTeXList(recs []paper.Record) string {
	entries := make([]string, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, ToBibTeX(r))
	}
	return strings.Join(entries, "\n")
}

// latexEscaper escapes LaTeX special characters; & must come first.
var latexEscaper = strings.NewReplacer(
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
)

func escapeLatex(s string) string {
	return latexEscaper.Replace(s)
}
