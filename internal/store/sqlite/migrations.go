package sqlite

import (
	"context"
	"database/sql"
)

// applyMigrations runs schema initialization for the SQLite database.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}

// url_id carries the uniqueness constraint that closes the probe/insert race.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS links (
  seq                INTEGER PRIMARY KEY AUTOINCREMENT,
  url_id             TEXT    NOT NULL UNIQUE,
  target_url         TEXT    NOT NULL,
  created_at         INTEGER NOT NULL,
  expires_after      INTEGER NOT NULL DEFAULT 0 CHECK (expires_after >= 0),
  redirect_count     INTEGER NOT NULL DEFAULT 0 CHECK (redirect_count >= 0),
  creator_ip         TEXT    NOT NULL DEFAULT '',
  creator_user_agent TEXT    NULL
);
`
