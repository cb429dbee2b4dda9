package store

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"jobboard-engine/internal/domain"
)

// lockRetry is how often a blocked reader re-checks the scraper's lock.
const lockRetry = 50 * time.Millisecond

// FileSource reads a single JSON array, the format the scrapers write to
// scraped_jobs.json. Scrapers hold an exclusive lock on Path+".lock" while
// writing; readers take the shared side.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Load(ctx context.Context) ([]domain.RawJob, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, errors.Wrapf(err, "job file %s", s.Path)
	}

	lk := flock.New(s.Path + ".lock")
	locked, err := lk.TryRLockContext(ctx, lockRetry)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, errors.Wrapf(err, "lock %s", s.Path)
	case err != nil:
		// Read-only directories cannot hold a lock file; read unguarded.
		log.Debug().Err(err).Str("path", s.Path).Msg("job file lock unavailable")
	case locked:
		defer func() { _ = lk.Unlock() }()
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	defer f.Close()

	recs, err := DecodeRecords(f)
	if err != nil {
		return nil, errors.Wrapf(err, "job file %s", s.Path)
	}
	return recs, nil
}

// LastModified reports the file's mtime, or false when it does not exist.
func (s FileSource) LastModified() (time.Time, bool) {
	fi, err := os.Stat(s.Path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}
