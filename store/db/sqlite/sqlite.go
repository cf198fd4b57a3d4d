package sqlite

import (
	"context"
	"database/sql"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
	"github.com/pkg/errors"

	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/store"
)

// ============================================================================
// SQLITE SUPPORT (Default - Development & Single-User)
// ============================================================================
// SQLite is the default driver: zero-setup, single file under the data dir.
// Vector memory runs in-process with SQLite; use PostgreSQL with pgvector
// for a persistent vector index.
// ============================================================================

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database instance with the given profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// Open the SQLite connection.
	// journal_mode=WAL allows concurrent readers during writes.
	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// SQLite allows a single writer; serialize access through one connection.
	db.SetMaxOpenConns(1)

	driver := DB{db: db, profile: profile}
	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS email (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT NOT NULL UNIQUE,
			created_ts BIGINT NOT NULL,
			sender TEXT NOT NULL,
			sender_email TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL,
			content TEXT NOT NULL,
			preview TEXT NOT NULL DEFAULT '',
			deadline TEXT NOT NULL DEFAULT 'No deadline',
			type TEXT NOT NULL DEFAULT 'Email',
			time_label TEXT NOT NULL DEFAULT '',
			urgency INTEGER NOT NULL DEFAULT 0,
			ai_summary TEXT NOT NULL DEFAULT '',
			thread TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email_created_ts ON email (created_ts)`,
		`CREATE TABLE IF NOT EXISTS schedule (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT NOT NULL UNIQUE,
			created_ts BIGINT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schedule_date ON schedule (date)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to migrate schema")
		}
	}
	return nil
}
