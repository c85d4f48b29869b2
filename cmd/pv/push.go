package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/paperview/paperview/internal/graphdb"
	"github.com/paperview/paperview/internal/paper"
	"github.com/spf13/cobra"
)

var (
	pushSeed    uint64
	pushClear   bool
	pushBib     string
	pushTimeout time.Duration
)

func init() {
	pushCmd.Flags().Uint64Var(&pushSeed, "seed", 0, "Seed for mock edges")
	pushCmd.Flags().BoolVar(&pushClear, "clear", false, "Delete all nodes and relationships first")
	pushCmd.Flags().StringVar(&pushBib, "bib", "", "Build the graph from this BibTeX file instead of the library")
	pushCmd.Flags().DurationVar(&pushTimeout, "timeout", time.Minute, "Give up after this long")
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the citation graph to Neo4j",
	Long: `Build the citation graph from the library and MERGE it into Neo4j as
(:Paper)-[:CITES]->(:Paper).

Connection settings come from the config file or NEO4J_URI, NEO4J_USER and
NEO4J_PASSWORD (a .env file in the working directory is loaded).

Examples:
  pv push
  pv push --clear --seed 7
  pv push --bib refs.bib`,
	RunE: runPush,
}

func runPush(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	var records []paper.Record
	if pushBib != "" {
		records = mustParseBibTeX(cmd, pushBib, pushSeed)
	} else {
		db := mustOpenLibrary(cfg)
		var err error
		records, err = db.List(0)
		db.Close()
		if err != nil {
			exitWithError(ExitError, "listing papers: %v", err)
		}
	}
	if len(records) == 0 {
		exitWithError(ExitDataError, "no papers to push")
	}

	g := synthesize(cmd, records, pushSeed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	sink, err := graphdb.Open(ctx, graphdb.Config{
		URI:      cfg.Neo4jURI,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	}, log)
	if err != nil {
		exitWithError(ExitGraphDBError, "%v", err)
	}
	defer sink.Close(context.Background())

	res, err := sink.Push(ctx, g, pushClear)
	if err != nil {
		exitWithError(ExitGraphDBError, "pushing graph: %v", err)
	}

	if humanOutput {
		success("Pushed %d nodes and %d edges to %s", res.Nodes, res.Edges, cfg.Neo4jURI)
		return nil
	}
	return outputJSON(res)
}
