package bibtex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIndexFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	content := `@article{Smith2020,
  title = {A},
  doi = {10.1234/ABC}
}

@inproceedings{Doe2021,
  title = {B}
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := IndexFile(path)
	if err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if !idx.HasEntry("Smith2020", "") {
		t.Error("HasEntry(Smith2020) = false, want true")
	}
	if !idx.HasEntry("other-key", "https://doi.org/10.1234/abc") {
		t.Error("HasEntry should match by normalized DOI")
	}
	if idx.HasEntry("Missing", "10.9999/none") {
		t.Error("HasEntry(Missing) = true, want false")
	}
	if got := idx.DOIs["10.1234/abc"]; got != "Smith2020" {
		t.Errorf("DOIs[10.1234/abc] = %q, want Smith2020", got)
	}
}

func TestIndexFile_Missing(t *testing.T) {
	idx, err := IndexFile(filepath.Join(t.TempDir(), "nope.bib"))
	if err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1234/ABC", "10.1234/abc"},
		{"https://doi.org/10.1/X", "10.1/x"},
		{"  doi:10.5/y ", "10.5/y"},
		{"DOI:10.6/Z", "10.6/z"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppendToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bib")

	if err := AppendToFile(path, "@article{a,\n}\n"); err != nil {
		t.Fatalf("AppendToFile() error = %v", err)
	}
	if err := AppendToFile(path, "@article{b,\n}\n"); err != nil {
		t.Fatalf("AppendToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "@article{") != 2 {
		t.Errorf("file should contain 2 entries, got:\n%s", data)
	}

	recs := Parse(string(data))
	if len(recs) != 2 {
		t.Errorf("appended file parses to %d records, want 2", len(recs))
	}
}
