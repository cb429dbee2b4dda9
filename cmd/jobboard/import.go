package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/store"
)

var importDB string

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace the SQLite job table with a scraper's JSON output",
	Long: `Replace the SQLite job table with a scraper's JSON output.

The file must hold a JSON array of job objects. The previous contents of
the table are dropped in the same transaction, so readers see either the
old set or the new one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "SQLite file (default source.path when source.kind=sqlite, else <data-dir>/jobs.db)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := importDB
	if dbPath == "" {
		if cfg.Source.Kind == config.SourceSQLite {
			dbPath = cfg.SourcePath()
		} else {
			dbPath = filepath.Join(cfg.App.DataDir, "jobs.db")
		}
	}

	recs, err := store.FileSource{Path: args[0]}.Load(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := store.Import(ctx, db.Pool, recs)
	if err != nil {
		return err
	}
	log.Info().Int("jobs", n).Str("db", dbPath).Str("from", args[0]).Msg("imported")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d jobs into %s\n", n, dbPath)
	return nil
}
