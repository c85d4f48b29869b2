package viz

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncode_Graph(t *testing.T) {
	g := Synthesize(makeRecords(3), WithRand(seeded(5)))

	for _, format := range []string{"", FormatGraph} {
		data, err := g.Encode(format)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", format, err)
		}

		var got struct {
			MainPaper struct {
				ID      string   `json:"id"`
				Authors []string `json:"authors"`
			} `json:"mainPaper"`
			Nodes []struct {
				ID      string `json:"id"`
				PaperID string `json:"paperId"`
			} `json:"nodes"`
			Edges []Edge `json:"edges"`
		}
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Encode(%q) output is not valid JSON: %v", format, err)
		}
		if len(got.Nodes) != 3 {
			t.Fatalf("len(nodes) = %d, want 3", len(got.Nodes))
		}
		if got.MainPaper.ID != got.Nodes[0].ID {
			t.Errorf("mainPaper.id = %q, want nodes[0].id %q", got.MainPaper.ID, got.Nodes[0].ID)
		}
		if len(got.MainPaper.Authors) != 1 || got.MainPaper.Authors[0] != "Author p0" {
			t.Errorf("mainPaper.authors = %v, want [Author p0]", got.MainPaper.Authors)
		}
		if got.Nodes[1].PaperID != "p1" {
			t.Errorf("nodes[1].paperId = %q, want p1", got.Nodes[1].PaperID)
		}
		if len(got.Edges) != len(g.Edges) {
			t.Errorf("len(edges) = %d, want %d", len(got.Edges), len(g.Edges))
		}
	}
}

func TestEncode_Cytoscape(t *testing.T) {
	g := Synthesize(makeRecords(3), WithRand(seeded(5)))

	data, err := g.Encode(FormatCytoscape)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("Encode(cytoscape) = %s, want %s", data, want)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	g := Synthesize(makeRecords(1))

	_, err := g.Encode("dot")
	if err == nil || !strings.Contains(err.Error(), "dot") {
		t.Errorf("Encode(dot) error = %v, want unknown format", err)
	}
}
