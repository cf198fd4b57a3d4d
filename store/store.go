package store

import (
	"context"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) CreateEmail(ctx context.Context, create *Email) (*Email, error) {
	return s.driver.CreateEmail(ctx, create)
}

// ListEmails returns emails sorted newest first.
func (s *Store) ListEmails(ctx context.Context, find *FindEmail) ([]*Email, error) {
	return s.driver.ListEmails(ctx, find)
}

// GetEmail returns a single email by ID, or a NOT_FOUND error.
func (s *Store) GetEmail(ctx context.Context, id int32) (*Email, error) {
	emails, err := s.driver.ListEmails(ctx, &FindEmail{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, errors.NotFound("email not found")
	}
	return emails[0], nil
}

func (s *Store) UpdateEmail(ctx context.Context, update *UpdateEmail) (*Email, error) {
	email, err := s.driver.UpdateEmail(ctx, update)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, errors.NotFound("email not found")
	}
	return email, nil
}

func (s *Store) DeleteEmail(ctx context.Context, delete *DeleteEmail) error {
	return s.driver.DeleteEmail(ctx, delete)
}

func (s *Store) CreateSchedule(ctx context.Context, create *Schedule) (*Schedule, error) {
	return s.driver.CreateSchedule(ctx, create)
}

// ListSchedules returns events sorted by date then start time.
func (s *Store) ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error) {
	return s.driver.ListSchedules(ctx, find)
}

func (s *Store) DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error {
	return s.driver.DeleteSchedule(ctx, delete)
}
