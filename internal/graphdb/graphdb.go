// Package graphdb writes citation graphs to Neo4j.
package graphdb

import (
	"context"
	"fmt"
	"io"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/paperview/paperview/internal/viz"
	"github.com/sirupsen/logrus"
)

// BatchSize is the number of nodes or edges sent per UNWIND statement.
const BatchSize = 100

const mergeNodesQuery = `
UNWIND $batch AS n
MERGE (p:Paper {id: n.id})
SET p.paperId = n.paperId,
    p.title = n.title,
    p.authors = n.authors,
    p.year = n.year,
    p.citationCount = n.citationCount,
    p.abstract = n.abstract,
    p.url = n.url,
    p.isMainPaper = n.isMainPaper
`

const mergeEdgesQuery = `
UNWIND $batch AS e
MATCH (s:Paper {id: e.source})
MATCH (t:Paper {id: e.target})
MERGE (s)-[:CITES]->(t)
`

// Config locates the Neo4j server.
type Config struct {
	URI      string
	User     string
	Password string
	Database string
}

// Sink owns a driver connected to one database.
type Sink struct {
	driver   neo4j.DriverWithContext
	database string
	log      logrus.FieldLogger
}

// PushResult counts what was sent.
type PushResult struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// Open creates a driver and verifies the server is reachable. log may be nil.
func Open(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Sink, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx) //nolint:errcheck
		return nil, fmt.Errorf("neo4j unreachable at %s: %w", cfg.URI, err)
	}

	return &Sink{driver: driver, database: cfg.Database, log: log}, nil
}

// Close releases the driver.
func (s *Sink) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Push writes g in a fresh write session. When clear is set the database is
// emptied first.
func (s *Sink) Push(ctx context.Context, g *viz.Graph, clear bool) (PushResult, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	if clear {
		if err := Clear(ctx, session); err != nil {
			return PushResult{}, err
		}
		s.log.Info("cleared neo4j database")
	}

	res, err := Push(ctx, session, g)
	if err != nil {
		s.log.WithError(err).Error("graph push failed")
		return res, err
	}
	s.log.WithFields(logrus.Fields{"nodes": res.Nodes, "edges": res.Edges}).Info("graph pushed to neo4j")
	return res, nil
}

// Clear deletes every node and relationship.
func Clear(ctx context.Context, session neo4j.SessionWithContext) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (n) DETACH DELETE n`, nil)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("clearing database: %w", err)
	}
	return nil
}

// Push MERGEs every node of g as (:Paper) and every edge as [:CITES] in a
// single write transaction. Duplicate edges collapse into one relationship.
func Push(ctx context.Context, session neo4j.SessionWithContext, g *viz.Graph) (PushResult, error) {
	if g == nil {
		return PushResult{}, fmt.Errorf("graph cannot be nil")
	}
	if err := g.Validate(); err != nil {
		return PushResult{}, err
	}

	nodes, edges := BatchParams(g)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, batch := range chunk(nodes, BatchSize) {
			if _, err := tx.Run(ctx, mergeNodesQuery, map[string]any{"batch": batch}); err != nil {
				return nil, fmt.Errorf("merging nodes: %w", err)
			}
		}
		for _, batch := range chunk(edges, BatchSize) {
			if _, err := tx.Run(ctx, mergeEdgesQuery, map[string]any{"batch": batch}); err != nil {
				return nil, fmt.Errorf("merging edges: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return PushResult{}, err
	}
	return PushResult{Nodes: len(nodes), Edges: len(edges)}, nil
}

// BatchParams converts g into the parameter maps of the UNWIND statements.
func BatchParams(g *viz.Graph) (nodes, edges []any) {
	nodes = make([]any, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		authors := make([]any, len(n.Authors))
		for i, a := range n.Authors {
			authors[i] = a
		}
		nodes = append(nodes, map[string]any{
			"id":            n.ID,
			"paperId":       n.PaperID,
			"title":         n.Title,
			"authors":       authors,
			"year":          int64(n.Year),
			"citationCount": int64(n.CitationCount),
			"abstract":      n.Abstract,
			"url":           n.URL,
			"isMainPaper":   n.IsMainPaper,
		})
	}

	edges = make([]any, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, map[string]any{
			"source": e.Source,
			"target": e.Target,
		})
	}
	return nodes, edges
}

// chunk splits items into consecutive batches of at most size.
func chunk(items []any, size int) [][]any {
	var batches [][]any
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
