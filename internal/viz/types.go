// Package viz builds citation graphs from paper records and renders them
// for force-directed visualization.
package viz

import (
	"errors"
	"fmt"
)

// DefaultYear is used when a record's year has no leading integer.
const DefaultYear = 2024

// MaxMainPaperEdges caps the edges from the main paper to the papers after it.
const MaxMainPaperEdges = 7

// MaxMockEdgesPerNode is the exclusive bound on extra edges drawn per non-main node.
const MaxMockEdgesPerNode = 3

// ErrDanglingEdge is returned by Validate when an edge endpoint is not a node.
var ErrDanglingEdge = errors.New("edge references unknown node")

// Graph is a citation graph anchored on its main paper.
type Graph struct {
	MainPaper *Node `json:"mainPaper"`
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
}

// Node is a paper in the graph. X and Y start at the origin and are
// overwritten by the layout engine.
type Node struct {
	ID            string   `json:"id"`
	PaperID       string   `json:"paperId"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Year          int      `json:"year"`
	CitationCount int      `json:"citationCount"`
	Abstract      string   `json:"abstract"`
	URL           string   `json:"url"`
	IsMainPaper   bool     `json:"isMainPaper"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
}

// Edge is a directed citation-like relation between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Validate checks that every edge endpoint names a node in the graph.
func (g *Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}

	for i, e := range g.Edges {
		if !ids[e.Source] {
			return fmt.Errorf("%w: edge %d source %q", ErrDanglingEdge, i, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("%w: edge %d target %q", ErrDanglingEdge, i, e.Target)
		}
	}
	return nil
}

// OutDegree counts the edges leaving the node with the given id.
func (g *Graph) OutDegree(id string) int {
	n := 0
	for _, e := range g.Edges {
		if e.Source == id {
			n++
		}
	}
	return n
}
