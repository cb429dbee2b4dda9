package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

const schemaVersion = 1

// Migrate brings the database up to the current schema. It is safe to call
// on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "migrate: begin")
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return errors.Wrap(err, "migrate: read user_version")
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	// body holds one scraped record as a JSON object; position is its index
	// in the scraper output and becomes the job id.
	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS raw_jobs (
  position INTEGER PRIMARY KEY,
  body TEXT NOT NULL
);
`); err != nil {
		return errors.Wrap(err, "migrate: create raw_jobs")
	}

	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return errors.Wrap(err, "migrate: set user_version")
	}
	return tx.Commit()
}
