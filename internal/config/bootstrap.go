package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileName is the user config file kept in the data dir.
const FileName = "config.yml"

// EnsureUserConfig returns the path of the user config in dataDir, creating
// it on first run from defaultPath, or from Default() when defaultPath does
// not exist either.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, FileName)

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "stat %s", userPath)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create data dir %s", dataDir)
	}

	src, err := os.Open(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.App.DataDir = dataDir
		return userPath, SaveAtomic(userPath, cfg)
	}
	if err != nil {
		return "", errors.Wrapf(err, "open default config %s", defaultPath)
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", userPath)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrapf(err, "copy default config to %s", userPath)
	}
	return userPath, nil
}
