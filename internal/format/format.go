// Package format holds small text helpers shared by the CLI and web pages.
package format

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// sizeUnits are the FileSize units, in powers of 1024.
var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FileSize formats a byte count with base-1024 units, rounded to two
// decimals with trailing zeros dropped: 1536 is "1.5 KB". Sizes past the
// largest unit stay in GB.
func FileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	if bytes < 0 {
		return "-" + FileSize(-bytes)
	}

	const k = 1024
	i, div := 0, int64(1)
	for i < len(sizeUnits)-1 && bytes/div >= k {
		div *= k
		i++
	}

	value := math.Round(float64(bytes)/float64(div)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// IsURL reports whether s looks like a link rather than a search query.
func IsURL(s string) bool {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "") {
		return true
	}
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.Contains(s, "arxiv.org")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes text for insertion as HTML element content.
// Quotes are left alone; the result is not safe inside attributes.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
