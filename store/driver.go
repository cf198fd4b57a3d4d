package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Email model related methods.
	CreateEmail(ctx context.Context, create *Email) (*Email, error)
	ListEmails(ctx context.Context, find *FindEmail) ([]*Email, error)
	UpdateEmail(ctx context.Context, update *UpdateEmail) (*Email, error)
	DeleteEmail(ctx context.Context, delete *DeleteEmail) error

	// Schedule model related methods.
	CreateSchedule(ctx context.Context, create *Schedule) (*Schedule, error)
	ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error)
	DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error
}
