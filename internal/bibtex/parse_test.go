package bibtex

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// fixedRand returns the same value for every draw and records the bounds it was asked for.
type fixedRand struct {
	value  int
	bounds []int
}

func (f *fixedRand) IntN(n int) int {
	f.bounds = append(f.bounds, n)
	return f.value % n
}

func TestParse_Example(t *testing.T) {
	input := "@article{a1, title = {T1}, author = {Alice and Bob}, year = {2020}}\n" +
		"@article{a2, title = {T2}, author = {Carol}, year = {2021}}"

	got := Parse(input)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}

	first := got[0]
	if first.ID != "a1" || first.PaperID != "a1" {
		t.Errorf("first ID = %q/%q, want a1", first.ID, first.PaperID)
	}
	if first.Title != "T1" {
		t.Errorf("first Title = %q, want T1", first.Title)
	}
	if !reflect.DeepEqual(first.Authors, []string{"Alice", "Bob"}) {
		t.Errorf("first Authors = %v, want [Alice Bob]", first.Authors)
	}
	if first.Year != "2020" {
		t.Errorf("first Year = %q, want 2020", first.Year)
	}
	if first.Citations < 0 || first.Citations >= PlaceholderCitationMax {
		t.Errorf("first Citations = %d, want in [0, %d)", first.Citations, PlaceholderCitationMax)
	}
	if first.References == nil || len(first.References) != 0 {
		t.Errorf("first References = %#v, want empty non-nil slice", first.References)
	}

	second := got[1]
	if second.ID != "a2" || second.Title != "T2" || second.Year != "2021" {
		t.Errorf("second = %+v, want a2/T2/2021", second)
	}
	if !reflect.DeepEqual(second.Authors, []string{"Carol"}) {
		t.Errorf("second Authors = %v, want [Carol]", second.Authors)
	}
}

func TestParse_MultilineEntriesInOrder(t *testing.T) {
	input := `
@article{Smith2020,
  title = {First Paper},
  author = {Smith, John},
  year = {2020}
}

Some free text between entries.

@article{Doe2021,
  title = {Second Paper},
  year = {2021}
}

@article{Lee2022,
  title = {Third Paper},
  year = {2022}
}
`
	got := Parse(input)
	wantIDs := []string{"Smith2020", "Doe2021", "Lee2022"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Parse() returned %d records, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("record %d ID = %q, want %q", i, got[i].ID, want)
		}
		if got[i].ID == "" {
			t.Errorf("record %d has empty ID", i)
		}
	}
}

func TestParse_Authors(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   []string
	}{
		{
			name:   "no authors",
			author: "",
			want:   []string{},
		},
		{
			name:   "single author",
			author: "Carol",
			want:   []string{"Carol"},
		},
		{
			name:   "whitespace and newlines collapsed",
			author: "Smith,\n      John   and   Doe,  Jane",
			want:   []string{"Smith, John", "Doe, Jane"},
		},
		{
			name:   "exactly five preserved",
			author: "A and B and C and D and E",
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "more than five truncated",
			author: "A and B and C and D and E and F and G",
			want:   []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "empty name between separators kept",
			author: "Alice and  and Bob",
			want:   []string{"Alice", "", "Bob"},
		},
		{
			name:   "uppercase AND is not a separator",
			author: "Alpha AND Beta",
			want:   []string{"Alpha AND Beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "@article{k,\n  title = {T},\n  author = {" + tt.author + "}\n}\n"
			got := Parse(input)
			if len(got) != 1 {
				t.Fatalf("Parse() returned %d records, want 1", len(got))
			}
			if !reflect.DeepEqual(got[0].Authors, tt.want) {
				t.Errorf("Authors = %#v, want %#v", got[0].Authors, tt.want)
			}
		})
	}
}

func TestParse_MissingFieldsAreEmpty(t *testing.T) {
	got := Parse("@article{bare,\n}\n")
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d records, want 1", len(got))
	}
	r := got[0]
	if r.Title != "" || r.Year != "" || r.Abstract != "" || r.URL != "" {
		t.Errorf("expected empty fields, got %+v", r)
	}
	if r.Authors == nil || len(r.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil slice", r.Authors)
	}
}

func TestParse_NoEntries(t *testing.T) {
	for _, input := range []string{"", "just some text", "@book{x, title = {Not an article}}"} {
		got := Parse(input)
		if got == nil {
			t.Errorf("Parse(%q) = nil, want empty slice", input)
		}
		if len(got) != 0 {
			t.Errorf("Parse(%q) returned %d records, want 0", input, len(got))
		}
	}
}

func TestParse_MalformedEntriesSkipped(t *testing.T) {
	input := `@article{nocomma}
@article{good, title = {Kept}}
@article{, title = {Empty key}}
@article{unterminated, title = {Lost}
`
	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d records, want 1: %+v", len(got), got)
	}
	if got[0].ID != "good" || got[0].Title != "Kept" {
		t.Errorf("got %+v, want good/Kept", got[0])
	}
}

func TestParse_FieldValues(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field func(title, year, url, abstract string) string
		want  string
	}{
		{
			name:  "nested braces kept as text",
			body:  `title = {The {RNA} World}`,
			field: func(title, _, _, _ string) string { return title },
			want:  "The RNA World",
		},
		{
			name:  "literal closing brace no longer truncates",
			body:  `title = {Sets \{a\} and {b}}`,
			field: func(title, _, _, _ string) string { return title },
			want:  "Sets {a} and b",
		},
		{
			name:  "case-insensitive field name",
			body:  `TITLE = {Shouting}`,
			field: func(title, _, _, _ string) string { return title },
			want:  "Shouting",
		},
		{
			name:  "booktitle does not satisfy title",
			body:  "booktitle = {Proceedings},\n  title = {Real Title}",
			field: func(title, _, _, _ string) string { return title },
			want:  "Real Title",
		},
		{
			name:  "quoted value",
			body:  `title = "Quoted {Title}"`,
			field: func(title, _, _, _ string) string { return title },
			want:  "Quoted Title",
		},
		{
			name:  "bare numeric year",
			body:  "year = 2019,\n  title = {T}",
			field: func(_, year, _, _ string) string { return year },
			want:  "2019",
		},
		{
			name:  "first match wins",
			body:  "year = {2001},\n  year = {2002}",
			field: func(_, year, _, _ string) string { return year },
			want:  "2001",
		},
		{
			name:  "url kept verbatim",
			body:  `url = {https://arxiv.org/abs/2101.00001}`,
			field: func(_, _, url, _ string) string { return url },
			want:  "https://arxiv.org/abs/2101.00001",
		},
		{
			name:  "abstract trimmed and unescaped",
			body:  "abstract = {  Cats \\& dogs at 50\\%  }",
			field: func(_, _, _, abstract string) string { return abstract },
			want:  "Cats & dogs at 50%",
		},
		{
			name:  "field name inside another value is not a field",
			body:  "abstract = {we fix year = 1999 here},\n  year = {2020}",
			field: func(_, year, _, _ string) string { return year },
			want:  "2020",
		},
		{
			name:  "title inside a note value is ignored",
			body:  "note = {the title = Foo},\n  title = {Real}",
			field: func(title, _, _, _ string) string { return title },
			want:  "Real",
		},
		{
			name:  "quoted value hides field names",
			body:  "note = \"url = {bad}, title = {Bad}\",\n  title = {Good}",
			field: func(title, _, _, _ string) string { return title },
			want:  "Good",
		},
		{
			name:  "garbage segment skipped",
			body:  "stray words, {loose}, title = {After Garbage}",
			field: func(title, _, _, _ string) string { return title },
			want:  "After Garbage",
		},
		{
			name:  "unterminated value is empty",
			body:  `title = "never closed`,
			field: func(title, _, _, _ string) string { return title },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "@article{k,\n  " + tt.body + "\n}\n"
			got := Parse(input)
			if len(got) != 1 {
				t.Fatalf("Parse() returned %d records, want 1", len(got))
			}
			r := got[0]
			if v := tt.field(r.Title, r.Year, r.URL, r.Abstract); v != tt.want {
				t.Errorf("field = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestParse_CaseInsensitiveEntryType(t *testing.T) {
	got := Parse("@ARTICLE{Up2020, title = {Upper}}\n@Article {Mixed2021, title = {Mixed}}")
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}
	if got[0].ID != "Up2020" || got[1].ID != "Mixed2021" {
		t.Errorf("IDs = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestParse_DuplicateKeysFirstWins(t *testing.T) {
	input := "@article{dup, title = {First}}\n@article{dup, title = {Second}}\n@article{other, title = {Other}}"
	got := Parse(input)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}
	if got[0].Title != "First" {
		t.Errorf("duplicate kept %q, want First", got[0].Title)
	}
	if got[1].ID != "other" {
		t.Errorf("second ID = %q, want other", got[1].ID)
	}
}

func TestParse_EntryTypes(t *testing.T) {
	input := "@inproceedings{conf, title = {Talk}}\n@article{journal, title = {Paper}}"

	got := Parse(input)
	if len(got) != 1 || got[0].ID != "journal" {
		t.Errorf("default parser = %+v, want only journal", got)
	}

	got = NewParser(WithEntryTypes("article", "InProceedings")).Parse(input)
	if len(got) != 2 {
		t.Fatalf("custom parser returned %d records, want 2", len(got))
	}
	if got[0].ID != "conf" {
		t.Errorf("first ID = %q, want conf", got[0].ID)
	}
}

func TestParse_ArticleInsideSkippedEntryIgnored(t *testing.T) {
	input := "@misc{note, howpublished = {see @article{inner, title = {X}}}}\n@article{outer, title = {Y}}"
	got := Parse(input)
	if len(got) != 1 || got[0].ID != "outer" {
		t.Errorf("Parse() = %+v, want only outer", got)
	}
}

func TestParse_InjectedRand(t *testing.T) {
	rng := &fixedRand{value: 42}
	got := NewParser(WithRand(rng)).Parse("@article{a, title = {A}}\n@article{b, title = {B}}")
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.Citations != 42 {
			t.Errorf("%s Citations = %d, want 42", r.ID, r.Citations)
		}
	}
	for _, n := range rng.bounds {
		if n != PlaceholderCitationMax {
			t.Errorf("IntN called with %d, want %d", n, PlaceholderCitationMax)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte("@article{f1,\n  title = {From File}\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "From File" {
		t.Errorf("ParseFile() = %+v", got)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.bib")); err == nil {
		t.Error("ParseFile() on missing file should return error")
	}
}

func TestToBibTeX_RoundTrip(t *testing.T) {
	original := Parse(`@article{Round2024,
  title = {Mice & Men: 100% of {RNA}},
  author = {Smith, John and Doe, Jane},
  year = {2024},
  abstract = {An abstract.},
  url = {https://example.org/a_b%20c}
}`)
	if len(original) != 1 {
		t.Fatalf("Parse() returned %d records, want 1", len(original))
	}

	out := ToBibTeX(original[0])
	if !strings.HasPrefix(out, "@article{Round2024,") {
		t.Errorf("ToBibTeX() should start with key, got:\n%s", out)
	}
	if !strings.Contains(out, `title = {Mice \& Men: 100\% of RNA}`) {
		t.Errorf("ToBibTeX() should escape title, got:\n%s", out)
	}
	if !strings.Contains(out, `url = {https://example.org/a_b%20c}`) {
		t.Errorf("ToBibTeX() should keep url verbatim, got:\n%s", out)
	}

	again := Parse(out)
	if len(again) != 1 {
		t.Fatalf("re-Parse() returned %d records, want 1", len(again))
	}
	a, b := original[0], again[0]
	if a.ID != b.ID || a.Title != b.Title || a.Year != b.Year || a.Abstract != b.Abstract || a.URL != b.URL {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", b, a)
	}
	if !reflect.DeepEqual(a.Authors, b.Authors) {
		t.Errorf("round trip authors = %v, want %v", b.Authors, a.Authors)
	}
}

func TestToBibTeX_OmitsEmptyFields(t *testing.T) {
	out := ToBibTeX(Parse("@article{min, title = {Only Title}}")[0])
	for _, field := range []string{"author =", "year =", "abstract =", "url ="} {
		if strings.Contains(out, field) {
			t.Errorf("ToBibTeX() should omit %q, got:\n%s", field, out)
		}
	}
}

func TestToBibTeXList(t *testing.T) {
	recs := Parse("@article{a, title = {A}}\n@article{b, title = {B}}")
	out := ToBibTeXList(recs)
	if strings.Count(out, "@article{") != 2 {
		t.Errorf("ToBibTeXList() should contain 2 entries, got:\n%s", out)
	}
}

func TestParseFields(t *testing.T) {
	got := parseFields(" title = {A {nested} title},\n  Year=2020 ,, url = \"http://x\",\n")
	want := map[string]string{
		"title": "A nested title",
		"year":  "2020",
		"url":   "http://x",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseFields() = %#v, want %#v", got, want)
	}
}

func TestParse_ManyUnterminatedEntries(t *testing.T) {
	input := strings.Repeat("@article{\n", 20000) + "@article{ok, title = {Fine}}"

	start := time.Now()
	got := Parse(input)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Parse() took %v on unterminated entries", elapsed)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("Parse() = %+v, want only ok", got)
	}
}

func TestBraceMatches(t *testing.T) {
	got := braceMatches(`a{b{c}d\{e}}f{`)
	want := map[int]int{1: 10, 3: 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("braceMatches() = %v, want %v", got, want)
	}
}
