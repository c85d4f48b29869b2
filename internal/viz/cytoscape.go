package viz

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data     CytoscapeNodeData `json:"data"`
	Position CytoscapePosition `json:"position"`
}

// CytoscapeNodeData contains the node data fields shown in tooltips.
type CytoscapeNodeData struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Title         string `json:"title"`
	Authors       string `json:"authors"` // "A, B, C"
	Year          int    `json:"year"`
	CitationCount int    `json:"citationCount"`
	URL           string `json:"url,omitempty"`
	IsMainPaper   bool   `json:"isMainPaper"`
}

// CytoscapePosition is the initial node position before layout.
type CytoscapePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ToCytoscape converts the graph to Cytoscape.js elements.
func (g *Graph) ToCytoscape() CytoscapeElements {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:            n.ID,
				Label:         nodeLabel(n),
				Title:         n.Title,
				Authors:       authorsToString(n.Authors),
				Year:          n.Year,
				CitationCount: n.CitationCount,
				URL:           n.URL,
				IsMainPaper:   n.IsMainPaper,
			},
			Position: CytoscapePosition{X: n.X, Y: n.Y},
		})
	}

	for i, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     edgeID(e.Source, e.Target, i),
				Source: e.Source,
				Target: e.Target,
			},
		})
	}

	return elements
}

// ToCytoscapeJSON converts the graph to Cytoscape.js JSON.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	jsonBytes, err := json.Marshal(g.ToCytoscape())
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID generates an edge ID for the current visualization session.
// IDs are based on slice position because duplicate edges are allowed.
func edgeID(source, target string, index int) string {
	return fmt.Sprintf("%s-%s-%d", source, target, index)
}

// nodeLabel is "FirstAuthor Year" when an author is known, else the id.
func nodeLabel(n Node) string {
	if len(n.Authors) == 0 {
		return n.ID
	}
	return fmt.Sprintf("%s %d", n.Authors[0], n.Year)
}
