package format

import "testing"

func TestFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234567, "1.18 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072 GB"},
		{-2048, "-2 KB"},
	}
	for _, tt := range tests {
		if got := FileSize(tt.bytes); got != tt.want {
			t.Errorf("FileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://arxiv.org/abs/2101.00001", true},
		{"http://example.com", true},
		{"mailto:someone@example.com", true},
		{"arxiv.org/abs/2101.00001", true},
		{"graph neural networks", false},
		{"", false},
		{"/local/path.pdf", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<b>"Tom" & Jerry</b>`)
	want := `&lt;b&gt;"Tom" &amp; Jerry&lt;/b&gt;`
	if got != want {
		t.Errorf("EscapeHTML() = %q, want %q", got, want)
	}
}
