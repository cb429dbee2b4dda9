package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// SaveAtomic validates cfg and writes it through a temp file, keeping the
// previous version as path+".bak".
func SaveAtomic(path string, cfg Config) error {
	cfg, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return errors.Newf("config validation failed:\n- %s", strings.Join(res.Errors, "\n- "))
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return errors.Wrapf(os.Rename(tmp, path), "replace %s", path)
}
