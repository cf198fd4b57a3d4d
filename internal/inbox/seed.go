package inbox

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/memag-ai/memag/store"
)

// demoEmail is one row of the demo inbox.
type demoEmail struct {
	sender, senderEmail, subject, content, deadline, timeLabel string
}

var demoEmails = []demoEmail{
	{
		sender:      "Sarah Chen",
		senderEmail: "sarah.chen@company.com",
		subject:     "Q4 board meeting prep - need your input",
		content:     "Hi,\n\nThe Q4 board meeting is tomorrow at 10 AM and I still need:\n- final revenue projections\n- the hiring plan update\n- your slide on product strategy\n\nThis is urgent, the deck goes out tonight.\n\nSarah",
		deadline:    "Today 6 PM",
		timeLabel:   "2 hours ago",
	},
	{
		sender:      "Mike Rodriguez",
		senderEmail: "mike.rodriguez@company.com",
		subject:     "Investor update draft - review needed",
		content:     "Hey,\n\nAttached is the draft investor update for the Series B follow-on conversations. Please review:\n- the burn rate section\n- the runway projection\n\nWould like your sign off by tomorrow.\n\nMike",
		deadline:    "Tomorrow 12 PM",
		timeLabel:   "4 hours ago",
	},
	{
		sender:      "David Park",
		senderEmail: "david.park@company.com",
		subject:     "Release blocked - waiting on infra approval",
		content:     "The v2.4 release is blocked on the infra budget approval. The team is waiting on your decision before we can provision the new cluster.\n\nDavid",
		deadline:    "This week",
		timeLabel:   "Yesterday",
	},
	{
		sender:      "Emily Watson",
		senderEmail: "emily.watson@company.com",
		subject:     "Schedule a call: performance review cycle",
		content:     "Hi,\n\nCan we schedule a call this week to align on the performance review cycle? I want to walk you through the new rubric before we announce it.\n\nEmily",
		deadline:    "This week",
		timeLabel:   "Yesterday",
	},
	{
		sender:      "Lisa Anderson",
		senderEmail: "lisa.anderson@company.com",
		subject:     "Marketing metrics update",
		content:     "Monthly marketing update:\n- website traffic up 12%\n- CAC down 8%\n- two new case studies published\n\nFull report in the dashboard. No action needed.\n\nLisa",
		deadline:    "No deadline",
		timeLabel:   "2 days ago",
	},
}

type demoEvent struct {
	title, description, startTime, endTime, date string
}

var demoEvents = []demoEvent{
	{
		title:       "Q4 board meeting",
		description: "Quarterly board review: revenue, hiring, product strategy",
		startTime:   "10:00",
		endTime:     "12:00",
		date:        time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	},
	{
		title:       "1:1 with David",
		description: "Weekly engineering sync",
		startTime:   "14:00",
		endTime:     "14:30",
		date:        time.Now().Format("2006-01-02"),
	},
	{
		title:       "Investor call",
		description: "Series B follow-on discussion with existing investors",
		startTime:   "16:00",
		endTime:     "17:00",
		date:        time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	},
}

// SeedDemoData populates the demo inbox and calendar. Idempotent: it does
// nothing when any emails already exist.
func (s *Service) SeedDemoData(ctx context.Context) error {
	existing, err := s.store.ListEmails(ctx, &store.FindEmail{})
	if err != nil {
		return errors.Wrap(err, "failed to check for existing emails")
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().Unix()
	for i, d := range demoEmails {
		email := &store.Email{
			UID:         shortuuid.New(),
			CreatedTs:   now - int64(i*3600),
			Sender:      d.sender,
			SenderEmail: d.senderEmail,
			Subject:     d.subject,
			Content:     d.content,
			Preview:     derivePreview(d.content),
			Deadline:    d.deadline,
			Type:        classifyType(d.subject, d.content),
			TimeLabel:   d.timeLabel,
		}
		created, err := s.store.CreateEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to seed demo email")
		}
		if s.memory != nil {
			blob := "Email from " + created.Sender + ": " + created.Subject + ". " + created.Preview
			_ = s.memory.Store(ctx, blob)
		}
	}

	for _, d := range demoEvents {
		_, err := s.store.CreateSchedule(ctx, &store.Schedule{
			UID:         shortuuid.New(),
			CreatedTs:   now,
			Title:       d.title,
			Description: d.description,
			StartTime:   d.startTime,
			EndTime:     d.endTime,
			Date:        d.date,
		})
		if err != nil {
			return errors.Wrap(err, "failed to seed demo event")
		}
	}
	return nil
}
