// Package store reads scraped job records from where the scrapers leave
// them: a JSON file, a directory of JSON files, or a SQLite table.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"jobboard-engine/internal/domain"
)

// Source yields raw records in a stable order. Position in the returned
// slice is the record's identity.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.RawJob, error)
}

// DecodeRecords parses a JSON array of objects. Numbers are kept as
// json.Number so salaries and ids print the way the scraper wrote them.
func DecodeRecords(r io.Reader) ([]domain.RawJob, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var out []domain.RawJob
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode records")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode records: trailing data after array")
	}
	if out == nil {
		out = []domain.RawJob{}
	}
	return out, nil
}

func decodeRecord(body []byte) (domain.RawJob, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var r domain.RawJob
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}
