package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/memag-ai/memag/store"
)

func (d *DB) CreateEmail(ctx context.Context, create *store.Email) (*store.Email, error) {
	fields := []string{
		"uid", "created_ts", "sender", "sender_email", "subject", "content",
		"preview", "deadline", "type", "time_label", "urgency", "ai_summary", "thread",
	}
	args := []any{
		create.UID, create.CreatedTs, create.Sender, create.SenderEmail, create.Subject, create.Content,
		create.Preview, create.Deadline, create.Type, create.TimeLabel, create.Urgency,
		marshalSummary(create.AISummary), marshalThread(create.Thread),
	}

	stmt := `INSERT INTO email (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create email: %w", err)
	}

	return create, nil
}

func (d *DB) ListEmails(ctx context.Context, find *store.FindEmail) ([]*store.Email, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "email.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "email.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, created_ts, sender, sender_email, subject, content,
			preview, deadline, type, time_label, urgency, ai_summary, thread
		FROM email
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Email, 0)
	for rows.Next() {
		var email store.Email
		var aiSummary, thread string
		if err := rows.Scan(
			&email.ID,
			&email.UID,
			&email.CreatedTs,
			&email.Sender,
			&email.SenderEmail,
			&email.Subject,
			&email.Content,
			&email.Preview,
			&email.Deadline,
			&email.Type,
			&email.TimeLabel,
			&email.Urgency,
			&aiSummary,
			&thread,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		email.AISummary = unmarshalSummary(aiSummary)
		email.Thread = unmarshalThread(thread)
		list = append(list, &email)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateEmail updates only the columns set on the update struct.
func (d *DB) UpdateEmail(ctx context.Context, update *store.UpdateEmail) (*store.Email, error) {
	set, args := []string{}, []any{}

	if v := update.Urgency; v != nil {
		set, args = append(set, "urgency = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Deadline; v != nil {
		set, args = append(set, "deadline = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Type; v != nil {
		set, args = append(set, "type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.AISummary; v != nil {
		set, args = append(set, "ai_summary = "+placeholder(len(args)+1)), append(args, marshalSummary(v))
	}
	if v := update.Thread; v != nil {
		set, args = append(set, "thread = "+placeholder(len(args)+1)), append(args, marshalThread(*v))
	}

	if len(set) > 0 {
		stmt := `UPDATE email SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)+1)
		args = append(args, update.ID)
		if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
			return nil, fmt.Errorf("failed to update email: %w", err)
		}
	}

	emails, err := d.ListEmails(ctx, &store.FindEmail{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, nil
	}
	return emails[0], nil
}

func (d *DB) DeleteEmail(ctx context.Context, delete *store.DeleteEmail) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM email WHERE id = $1`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete email: %w", err)
	}
	return nil
}
