package viz

import (
	"encoding/json"
	"fmt"
)

// Output formats accepted by Encode.
const (
	FormatGraph     = "graph"
	FormatCytoscape = "cytoscape"
)

// ValidFormats lists the accepted output formats, default first.
var ValidFormats = []string{FormatGraph, FormatCytoscape}

// Payload returns the value serialized for format: the graph itself as
// {mainPaper, nodes, edges}, or its Cytoscape.js elements.
// An empty format selects FormatGraph.
func (g *Graph) Payload(format string) (any, error) {
	switch format {
	case "", FormatGraph:
		return g, nil
	case FormatCytoscape:
		return g.ToCytoscape(), nil
	default:
		return nil, fmt.Errorf("unknown graph format %q (want one of %v)", format, ValidFormats)
	}
}

// Encode marshals the graph in the given format.
func (g *Graph) Encode(format string) ([]byte, error) {
	v, err := g.Payload(format)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s graph to JSON: %w", format, err)
	}
	return data, nil
}
