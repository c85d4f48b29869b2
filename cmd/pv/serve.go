package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/paperview/paperview/internal/i18n"
	"github.com/paperview/paperview/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveRoutes bool
	serveLayout string
	serveSeed   uint64
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve_addr from config)")
	serveCmd.Flags().BoolVar(&serveRoutes, "routes", false, "Print the page routes and exit")
	serveCmd.Flags().StringVar(&serveLayout, "layout", "force", "Graph layout: force, circle, or grid")
	serveCmd.Flags().Uint64Var(&serveSeed, "seed", 0, "Fix the mock edges of every served graph")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the home and workspace pages",
	Long: `Serve the home page (/) and the citation graph workspace (/workspace).

The workspace graph is built from the library, or from ?bib=<path>.
/graph.json, /healthz and /metrics are also served.

Examples:
  pv serve
  pv serve --addr 127.0.0.1:9000 --seed 7
  pv serve --routes`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveRoutes {
		routes := server.Routes()
		if humanOutput {
			for _, r := range routes {
				outputHuman("%-6s %-12s %s\n", r.Method, r.Path, r.Name)
			}
			return nil
		}
		return outputJSON(routes)
	}

	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	addr := serveAddr
	if addr == "" {
		addr = cfg.ServeAddr
	}

	if !verbose {
		log.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	deps := &server.Deps{
		Log:      log,
		Library:  db,
		Bundle:   i18n.MustNewBundle(),
		Language: newLocalizer(cfg).Language(),
		Layout:   serveLayout,
	}
	if cmd.Flags().Changed("seed") {
		deps.Seed = &serveSeed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if humanOutput {
		success("Serving on http://%s", addr)
	}
	if err := server.Run(ctx, addr, server.NewRouter(deps), log); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
