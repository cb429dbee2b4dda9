package store

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/domain"
)

// DirSource merges every *.json array in Dir, one file per scraper. Files
// are concatenated in lexical order so positions stay stable between loads.
type DirSource struct {
	Dir string
	// Workers bounds concurrent file reads; <= 0 means 4.
	Workers int
}

func (s DirSource) Name() string { return s.Dir }

func (s DirSource) files() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", s.Dir)
	}
	slices.Sort(paths)
	return paths, nil
}

// Load skips files that fail to read or parse. It only fails when the
// directory itself cannot be listed or ctx is done.
func (s DirSource) Load(ctx context.Context) ([]domain.RawJob, error) {
	paths, err := s.files()
	if err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}

	parts := make([][]domain.RawJob, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			recs, err := FileSource{Path: p}.Load(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("file", p).Msg("skipping job file")
				return nil
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "load %s", s.Dir)
	}

	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]domain.RawJob, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// LastModified is the newest mtime among the directory's job files.
func (s DirSource) LastModified() (time.Time, bool) {
	paths, err := s.files()
	if err != nil {
		return time.Time{}, false
	}
	var newest time.Time
	var found bool
	for _, p := range paths {
		if t, ok := (FileSource{Path: p}).LastModified(); ok {
			found = true
			if t.After(newest) {
				newest = t
			}
		}
	}
	return newest, found
}
