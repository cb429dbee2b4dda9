package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"jobboard-engine/internal/board"
	"jobboard-engine/internal/config"
	"jobboard-engine/internal/logging"
	"jobboard-engine/internal/normalize"
	"jobboard-engine/internal/store"
)

// defaultConfigPath is the shipped config copied into the data dir on
// first run.
var defaultConfigPath = filepath.Join("config", "config.yml")

// app is everything a command needs, built from the config.
type app struct {
	cfg     config.Config
	cfgPath string
	cfgVal  *atomic.Value

	source store.Source
	db     *store.DB
	cached *board.Cached
	board  board.Service
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if d := os.Getenv("JOBBOARD_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

func loadConfig() (config.Config, string, error) {
	dir := dataDir()
	path := flagConfig
	if path == "" {
		p, err := config.EnsureUserConfig(dir, defaultConfigPath)
		if err != nil {
			return config.Config{}, "", errors.Wrap(err, "config bootstrap")
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if flagDataDir != "" || os.Getenv("JOBBOARD_DATA_DIR") != "" {
		cfg.App.DataDir = dir
	}

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warn().Str("config", path).Msg(w)
	}
	if !vr.OK() {
		return config.Config{}, "", errors.Newf("invalid config %s:\n- %s", path, strings.Join(vr.Errors, "\n- "))
	}
	return cfg, path, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(nil, cfg.App.LogLevel, cfg.App.LogJSON); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, cfgPath: path, cfgVal: &atomic.Value{}}
	a.cfgVal.Store(cfg)

	if err := a.openSource(ctx); err != nil {
		return nil, err
	}

	n := normalize.New(cfg.Classifier())
	var repo board.Repository = board.OnDemand{Source: a.source, Normalizer: n}
	if cfg.Source.Refresh == config.RefreshCached {
		a.cached = board.NewCached(a.source, n, time.Duration(cfg.Source.CacheTTLSeconds)*time.Second)
		repo = a.cached
	}
	a.board = board.Service{Repo: repo, PageSize: cfg.Board.PageSize}

	log.Debug().
		Str("config", path).
		Str("source", a.source.Name()).
		Str("kind", cfg.Source.Kind).
		Str("refresh", cfg.Source.Refresh).
		Msg("job board ready")
	return a, nil
}

func (a *app) openSource(ctx context.Context) error {
	path := a.cfg.SourcePath()
	switch a.cfg.Source.Kind {
	case config.SourceDir:
		a.source = store.DirSource{Dir: path}
	case config.SourceSQLite:
		db, err := openStore(ctx, path)
		if err != nil {
			return err
		}
		a.db = db
		a.source = store.SQLiteSource{DB: db.Pool, Path: path}
	default:
		a.source = store.FileSource{Path: path}
	}
	return nil
}

func openStore(ctx context.Context, path string) (*store.DB, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db.Pool); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// lastModified is reported by /api/status. SQLite sources report the
// database file's mtime.
func (a *app) lastModified() (time.Time, bool) {
	switch s := a.source.(type) {
	case store.FileSource:
		return s.LastModified()
	case store.DirSource:
		return s.LastModified()
	default:
		return store.FileSource{Path: a.cfg.SourcePath()}.LastModified()
	}
}

func (a *app) Close() error {
	return a.db.Close()
}
