package viz

import (
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/paperview/paperview/internal/paper"
	"github.com/sirupsen/logrus"
)

// Rand is the randomness source for mock edges. *rand.Rand from
// math/rand/v2 satisfies it; a seeded one makes the edge set deterministic.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type synthConfig struct {
	rng Rand
	log logrus.FieldLogger
}

// Option configures Synthesize.
type Option func(*synthConfig)

// WithRand sets the randomness source for mock edges.
func WithRand(r Rand) Option {
	return func(c *synthConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithLogger sets the logger for synthesis diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *synthConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Synthesize converts records into a citation graph whose first record is
// the main paper.
//
// The edges are mock connectivity, not citation data: the main paper points
// at up to MaxMainPaperEdges of the records after it, and every other node
// draws [0, MaxMockEdgesPerNode) targets uniformly from all nodes, dropping
// (not redrawing) any draw that lands on itself.
//
// An empty input is logged and yields a graph with no main paper.
func Synthesize(records []paper.Record, opts ...Option) *Graph {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	cfg := synthConfig{rng: globalRand{}, log: discard}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(records) == 0 {
		cfg.log.Error("no paper data to build a graph from")
		return &Graph{MainPaper: nil, Nodes: []Node{}, Edges: []Edge{}}
	}

	cfg.log.WithField("papers", len(records)).Debug("building citation graph")

	nodes := make([]Node, len(records))
	for i, r := range records {
		nodes[i] = newPaperNode(r, i == 0)
	}

	edges := []Edge{}
	main := records[0].ID

	for i := 1; i < min(len(records), MaxMainPaperEdges+1); i++ {
		edges = append(edges, Edge{Source: main, Target: records[i].ID})
	}

	for i := 1; i < len(records); i++ {
		draws := cfg.rng.IntN(MaxMockEdgesPerNode)
		for j := 0; j < draws; j++ {
			target := cfg.rng.IntN(len(records))
			if target == i {
				continue
			}
			edges = append(edges, Edge{Source: records[i].ID, Target: records[target].ID})
		}
	}

	cfg.log.WithFields(logrus.Fields{
		"nodes": len(nodes),
		"edges": len(edges),
	}).Debug("citation graph built")

	return &Graph{
		MainPaper: &nodes[0],
		Nodes:     nodes,
		Edges:     edges,
	}
}

// newPaperNode creates a graph node from a record.
func newPaperNode(r paper.Record, isMain bool) Node {
	authors := r.Authors
	if authors == nil {
		authors = []string{}
	}
	return Node{
		ID:            r.ID,
		PaperID:       r.PaperID,
		Title:         r.Title,
		Authors:       authors,
		Year:          ParseYear(r.Year),
		CitationCount: r.Citations,
		Abstract:      r.Abstract,
		URL:           r.URL,
		IsMainPaper:   isMain,
	}
}

// ParseYear returns the integer at the start of s, or DefaultYear when there
// is none or it is zero.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return DefaultYear
	}

	year, err := strconv.Atoi(s[:end])
	if err != nil || year == 0 {
		return DefaultYear
	}
	return year
}

// authorsToString joins author names for labels and tooltips.
func authorsToString(authors []string) string {
	return strings.Join(authors, ", ")
}
