package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jobboard-engine/internal/logging"
)

var (
	flagConfig  string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Browse and query scraped job listings",
	Long: `jobboard serves a searchable board over the job listings that the
scrapers write, and answers the same queries from the command line.

Examples:
  jobboard serve                         # HTML board + JSON API on app.port
  jobboard query --search golang --arrangement remote
  jobboard show 12                       # one job as JSON
  jobboard facets                        # sources and categories
  jobboard import scraped_jobs.json      # load a scrape into SQLite`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Console logging until the config picks the real level and format.
		return logging.Setup(nil, "info", false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default <data-dir>/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $JOBBOARD_DATA_DIR or .)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(facetsCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("jobboard failed")
		os.Exit(1)
	}
}
