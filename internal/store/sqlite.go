package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"jobboard-engine/internal/domain"
)

// SQLiteSource reads records from the raw_jobs table in position order.
type SQLiteSource struct {
	DB   *sql.DB
	Path string
}

func (s SQLiteSource) Name() string { return "sqlite:" + s.Path }

func (s SQLiteSource) Load(ctx context.Context) ([]domain.RawJob, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT position, body FROM raw_jobs ORDER BY position;`)
	if err != nil {
		return nil, errors.Wrap(err, "query raw_jobs")
	}
	defer rows.Close()

	out := []domain.RawJob{}
	for rows.Next() {
		var pos int64
		var body string
		if err := rows.Scan(&pos, &body); err != nil {
			return nil, errors.Wrap(err, "scan raw_jobs")
		}
		r, err := decodeRecord([]byte(body))
		if err != nil {
			return nil, errors.Wrapf(err, "raw_jobs position %d", pos)
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate raw_jobs")
}

// Import replaces the contents of raw_jobs with recs in one transaction.
// Positions are the indexes in recs.
func Import(ctx context.Context, db *sql.DB, recs []domain.RawJob) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "import: begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM raw_jobs;`); err != nil {
		return 0, errors.Wrap(err, "import: clear raw_jobs")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO raw_jobs (position, body) VALUES (?, ?);`)
	if err != nil {
		return 0, errors.Wrap(err, "import: prepare")
	}
	defer stmt.Close()

	for i, r := range recs {
		if r == nil {
			r = domain.RawJob{}
		}
		b, err := json.Marshal(r)
		if err != nil {
			return 0, errors.Wrapf(err, "import: encode record %d", i)
		}
		if _, err := stmt.ExecContext(ctx, i, string(b)); err != nil {
			return 0, errors.Wrapf(err, "import: insert record %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "import: commit")
	}
	return len(recs), nil
}
