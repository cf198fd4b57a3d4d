package postgres

import (
	"context"
	"database/sql"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/store"
)

// ============================================================================
// POSTGRESQL SUPPORT (Production)
// ============================================================================
// PostgreSQL is the production driver. With the pgvector extension installed
// the semantic memory index is persisted here as well; without it the
// in-process index is used.
// ============================================================================

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection with the given profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// Single-user personal assistant: small pool, long-lived connections.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
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
			id SERIAL PRIMARY KEY,
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
			id SERIAL PRIMARY KEY,
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
