// Package main provides the pv CLI entry point.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/paperview/paperview/internal/config"
	"github.com/paperview/paperview/internal/i18n"
	"github.com/paperview/paperview/internal/notify"
	"github.com/paperview/paperview/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	noColor     bool
	configPath  string
)

// log receives diagnostics from the library packages. It writes to stderr so
// JSON on stdout stays machine-readable.
var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pv",
	Short: "Paper citation graph CLI",
	Long: `pv turns BibTeX bibliographies into interactive citation graphs.

Core features:
  - Parse @article entries into paper records
  - Build a citation graph and render it with Cytoscape.js
  - Keep a local SQLite library with full-text search
  - Push graphs to Neo4j
  - Serve the home and workspace pages
  - Talk to the paper analysis backend (upload, translate, chat)

All commands output JSON by default.
Use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (for PV_API_TOKEN, NEO4J_PASSWORD)
		_ = godotenv.Load()

		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		notify.Setup(notify.Options{NoColor: noColor || os.Getenv("NO_COLOR") != ""})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/pv/config.yml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenLibrary opens the SQLite library, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenLibrary(cfg *config.Config) *storage.DB {
	if err := os.MkdirAll(filepath.Dir(cfg.LibraryPath), 0755); err != nil {
		exitWithError(ExitConfigError, "creating library directory: %v", err)
	}
	db, err := storage.OpenDB(cfg.LibraryPath)
	if err != nil {
		exitWithError(ExitError, "opening library: %v", err)
	}
	return db
}

// newLocalizer returns a localizer persisting through the config file.
func newLocalizer(cfg *config.Config) *i18n.Localizer {
	bundle, err := i18n.NewBundle()
	if err != nil {
		exitWithError(ExitError, "loading locales: %v", err)
	}
	return i18n.NewLocalizer(bundle, cfg, i18n.LocaleFromEnv())
}

// seededRand returns a deterministic source for placeholder citations and
// mock edges.
func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
