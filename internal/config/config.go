package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"jobboard-engine/internal/classify"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceDir    = "dir"
	SourceSQLite = "sqlite"
)

// Refresh policies.
const (
	RefreshOnDemand = "on_demand"
	RefreshCached   = "cached"
)

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		LogLevel string `yaml:"log_level" json:"log_level"`
		LogJSON  bool   `yaml:"log_json" json:"log_json"`
	} `yaml:"app" json:"app"`

	Source struct {
		Kind            string `yaml:"kind" json:"kind"`
		Path            string `yaml:"path" json:"path"`
		Refresh         string `yaml:"refresh" json:"refresh"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
		RefreshSeconds  int    `yaml:"refresh_seconds" json:"refresh_seconds"`
	} `yaml:"source" json:"source"`

	Board struct {
		PageSize int `yaml:"page_size" json:"page_size"`
	} `yaml:"board" json:"board"`

	HTTP struct {
		RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst      int     `yaml:"burst" json:"burst"`
	} `yaml:"http" json:"http"`

	Classify struct {
		Arrangement []classify.Rule `yaml:"arrangement" json:"arrangement"`
		JobType     []classify.Rule `yaml:"job_type" json:"job_type"`
	} `yaml:"classify" json:"classify"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 5000
	cfg.App.DataDir = "."
	cfg.App.LogLevel = "info"
	cfg.Source.Kind = SourceFile
	cfg.Source.Path = "scraped_jobs.json"
	cfg.Source.Refresh = RefreshOnDemand
	cfg.Board.PageSize = 20
	cfg.HTTP.RatePerSec = 20
	cfg.HTTP.Burst = 40
	cfg.Classify.Arrangement = classify.DefaultArrangements()
	cfg.Classify.JobType = classify.DefaultJobTypes()
	return cfg
}

// Load reads the YAML file at path over Default(), so omitted keys keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// SourcePath resolves source.path against app.data_dir when it is relative.
func (c Config) SourcePath() string {
	if c.Source.Path == "" || filepath.IsAbs(c.Source.Path) {
		return c.Source.Path
	}
	return filepath.Join(c.App.DataDir, c.Source.Path)
}

// Classifier builds the rule tables. An empty table falls back to the
// built-in keywords.
func (c Config) Classifier() classify.Classifier {
	out := classify.Default()
	if len(c.Classify.Arrangement) > 0 {
		out.Arrangements = classify.Table(c.Classify.Arrangement)
	}
	if len(c.Classify.JobType) > 0 {
		out.JobTypes = classify.Table(c.Classify.JobType)
	}
	return out
}
