package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "doi: 10.1038/nature12373 received", "10.1038/nature12373"},
		{"trailing punctuation", "see (10.1103/PhysRevLett.116.061102).", "10.1103/PhysRevLett.116.061102"},
		{"url form", "https://doi.org/10.48550/arXiv.1706.03762\n", "10.48550/arXiv.1706.03762"},
		{"first wins", "10.1000/first and 10.1000/second", "10.1000/first"},
		{"too few registrant digits", "10.12/abc", ""},
		{"none", "no identifiers here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	if !isValidDOI("10.1234/abcd") {
		t.Error("10.1234/abcd should be valid")
	}
	for _, bad := range []string{"10.1234/", "11.1234/abcdef", "10.1/a"} {
		if isValidDOI(bad) {
			t.Errorf("isValidDOI(%q) = true", bad)
		}
	}
}

func TestFindTitle(t *testing.T) {
	text := "Journal of Machine Learning Research 18\n\nshort\nAttention Is All You Need In Practice\nAuthors"
	if got := findTitle(text); got != "Attention Is All You Need In Practice" {
		t.Errorf("findTitle() = %q", got)
	}
	if got := findTitle("tiny\nlines"); got != "" {
		t.Errorf("findTitle() = %q, want empty", got)
	}
}

func TestInspect_Errors(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Inspect(missing) should fail")
	}

	notPDF := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(notPDF, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(notPDF); err == nil {
		t.Error("Inspect(non-PDF) should fail")
	}
	if _, err := ExtractDOI(notPDF); err == nil {
		t.Error("ExtractDOI(non-PDF) should fail")
	}
}
