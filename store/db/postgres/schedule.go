package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/store"
)

func (d *DB) CreateSchedule(ctx context.Context, create *store.Schedule) (*store.Schedule, error) {
	fields := []string{"uid", "created_ts", "title", "description", "start_time", "end_time", "date"}
	args := []any{
		create.UID, create.CreatedTs, create.Title, create.Description,
		create.StartTime, create.EndTime, create.Date,
	}

	stmt := `INSERT INTO schedule (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return create, nil
}

func (d *DB) ListSchedules(ctx context.Context, find *store.FindSchedule) ([]*store.Schedule, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "schedule.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "schedule.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Date; v != nil {
		where, args = append(where, "schedule.date = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, title, description, start_time, end_time, date
		FROM schedule
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date ASC, start_time ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Schedule, 0)
	for rows.Next() {
		var schedule store.Schedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.UID,
			&schedule.CreatedTs,
			&schedule.Title,
			&schedule.Description,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		list = append(list, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteSchedule(ctx context.Context, delete *store.DeleteSchedule) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM schedule WHERE id = $1`, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound(fmt.Sprintf("schedule %d not found", delete.ID))
	}
	return nil
}
