package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
)

// Store implements core.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite DB at path and applies migrations.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		path = filepath.Clean(path)
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps :memory: alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, _ = db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;")
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode = WAL;")

	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying DB.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Insert stores a new record. Returns core.ErrConflict if url_id is taken.
func (s *Store) Insert(ctx context.Context, r *core.Record) error {
	const q = `
INSERT INTO links(url_id, target_url, created_at, expires_after, redirect_count, creator_ip, creator_user_agent)
VALUES (?, ?, ?, ?, ?, ?, ?);`
	var ua sql.NullString
	if r.Creator.UserAgent != "" {
		ua = sql.NullString{String: r.Creator.UserAgent, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, q, r.ID, r.TargetURL, r.CreatedAt, r.ExpiresAfter, r.Redirects, r.Creator.IP, ua)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

// Exists reports whether url_id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT 1 FROM links WHERE url_id = ? LIMIT 1;`
	var one int
	err := s.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const selectCols = `url_id, target_url, created_at, expires_after, redirect_count, creator_ip, creator_user_agent`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (core.Record, error) {
	var rec core.Record
	var ua sql.NullString
	err := row.Scan(&rec.ID, &rec.TargetURL, &rec.CreatedAt, &rec.ExpiresAfter, &rec.Redirects, &rec.Creator.IP, &ua)
	if ua.Valid {
		rec.Creator.UserAgent = ua.String
	}
	return rec, err
}

// FindByID returns the record for id (expired included).
func (s *Store) FindByID(ctx context.Context, id string) (*core.Record, error) {
	q := `SELECT ` + selectCols + ` FROM links WHERE url_id = ? LIMIT 1;`
	rec, err := scanRecord(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// IncrementRedirects adds one to the counter in a single UPDATE.
// If the id doesn't exist, return ErrNotFound so the caller can log it.
func (s *Store) IncrementRedirects(ctx context.Context, id string) error {
	const q = `UPDATE links SET redirect_count = redirect_count + 1 WHERE url_id = ?;`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	q := `SELECT ` + selectCols + ` FROM links ORDER BY seq;`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended codes disabled; values are validated before insert, so
		// the only reachable constraint is the unique url_id.
		return true
	}
	return false
}

// Compile-time check: *Store implements core.Store.
var _ core.Store = (*Store)(nil)
