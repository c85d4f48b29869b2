package viz

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToCytoscapeJSON(t *testing.T) {
	g := Synthesize(makeRecords(4), WithRand(seeded(3)))

	out, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(elements.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(elements.Nodes))
	}
	if len(elements.Edges) != len(g.Edges) {
		t.Errorf("len(Edges) = %d, want %d", len(elements.Edges), len(g.Edges))
	}
	if !elements.Nodes[0].Data.IsMainPaper {
		t.Error("first node should be the main paper")
	}
	if got := elements.Nodes[0].Data.Label; got != "Author p0 2000" {
		t.Errorf("label = %q, want %q", got, "Author p0 2000")
	}

	seen := make(map[string]bool)
	for _, e := range elements.Edges {
		if seen[e.Data.ID] {
			t.Errorf("duplicate edge id %q", e.Data.ID)
		}
		seen[e.Data.ID] = true
	}
}

func TestNodeLabel_NoAuthors(t *testing.T) {
	if got := nodeLabel(Node{ID: "key", Year: 2020}); got != "key" {
		t.Errorf("nodeLabel() = %q, want key", got)
	}
}

func TestGenerateHTML(t *testing.T) {
	g := Synthesize(makeRecords(3), WithRand(seeded(9)))

	html, err := GenerateHTML(g, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	if !strings.Contains(html, CytoscapeCDN) {
		t.Error("HTML should reference the Cytoscape CDN")
	}
	if !strings.Contains(html, `const layout = "cose"`) {
		t.Error("force layout should map to cose")
	}
	if !strings.Contains(html, `"isMainPaper":true`) {
		t.Error("HTML should embed the graph JSON")
	}
}

func TestGenerateHTML_Layouts(t *testing.T) {
	g := Synthesize(makeRecords(2), WithRand(seeded(1)))
	for _, layout := range ValidLayouts {
		if _, err := GenerateHTML(g, HTMLOptions{Layout: layout}); err != nil {
			t.Errorf("GenerateHTML(layout=%q) error = %v", layout, err)
		}
	}
	if _, err := GenerateHTML(g, HTMLOptions{Layout: "spiral"}); err == nil {
		t.Error("GenerateHTML() should reject unknown layout")
	}
}

func TestGenerateHTML_Empty(t *testing.T) {
	labels := DefaultLabels()
	labels.EmptyTitle = "Nothing here"

	html, err := GenerateHTML(Synthesize(nil), HTMLOptions{Labels: labels})
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	if !strings.Contains(html, "Nothing here") {
		t.Error("empty page should use the configured label")
	}
	if strings.Contains(html, CytoscapeCDN) {
		t.Error("empty page should not load Cytoscape")
	}
}

func TestGenerateHTML_Nil(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML(nil) should return error")
	}
}
