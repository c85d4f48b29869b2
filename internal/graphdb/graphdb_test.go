package graphdb

import (
	"context"
	"errors"
	"testing"

	"github.com/paperview/paperview/internal/viz"
)

func sampleGraph() *viz.Graph {
	nodes := []viz.Node{
		{ID: "a", PaperID: "a", Title: "A", Authors: []string{"Ann", "Bo"}, Year: 2020, CitationCount: 5, IsMainPaper: true},
		{ID: "b", PaperID: "b", Title: "B", Authors: []string{}, Year: 2024},
	}
	return &viz.Graph{
		MainPaper: &nodes[0],
		Nodes:     nodes,
		Edges:     []viz.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}},
	}
}

func TestBatchParams(t *testing.T) {
	nodes, edges := BatchParams(sampleGraph())

	if len(nodes) != 2 || len(edges) != 2 {
		t.Fatalf("BatchParams() = %d nodes, %d edges", len(nodes), len(edges))
	}

	first := nodes[0].(map[string]any)
	if first["id"] != "a" || first["isMainPaper"] != true || first["year"] != int64(2020) {
		t.Errorf("first node params = %v", first)
	}
	authors := first["authors"].([]any)
	if len(authors) != 2 || authors[0] != "Ann" {
		t.Errorf("authors = %v", authors)
	}
	if second := nodes[1].(map[string]any); len(second["authors"].([]any)) != 0 {
		t.Errorf("empty authors should stay empty, got %v", second["authors"])
	}

	e := edges[1].(map[string]any)
	if e["source"] != "b" || e["target"] != "a" {
		t.Errorf("edge params = %v", e)
	}
}

func TestBatchParams_Empty(t *testing.T) {
	nodes, edges := BatchParams(viz.Synthesize(nil))
	if nodes == nil || edges == nil || len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("BatchParams(empty) = %v, %v", nodes, edges)
	}
}

func TestChunk(t *testing.T) {
	items := make([]any, 250)
	batches := chunk(items, BatchSize)
	if len(batches) != 3 {
		t.Fatalf("len(batches) = %d, want 3", len(batches))
	}
	if len(batches[0]) != 100 || len(batches[2]) != 50 {
		t.Errorf("batch sizes = %d, %d, %d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if got := chunk(nil, BatchSize); len(got) != 0 {
		t.Errorf("chunk(nil) = %v", got)
	}
}

func TestPush_RejectsInvalidGraph(t *testing.T) {
	g := sampleGraph()
	g.Edges = append(g.Edges, viz.Edge{Source: "a", Target: "ghost"})

	// Validation runs before the session is touched.
	_, err := Push(context.Background(), nil, g)
	if !errors.Is(err, viz.ErrDanglingEdge) {
		t.Errorf("Push() error = %v, want ErrDanglingEdge", err)
	}
	if _, err := Push(context.Background(), nil, nil); err == nil {
		t.Error("Push(nil graph) should fail")
	}
}
