// Package summary generates per-email summaries and the inbox dashboard
// briefing, with deterministic fallbacks when the LLM is unreachable.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/memag-ai/memag/store"
)

// Thresholds used by the deterministic dashboard fallback.
const (
	highPriorityThreshold = 85
	meetingRequestType    = "Meeting request"
)

// Gateway is the LLM surface the summarizer needs.
type Gateway interface {
	IsAvailable() bool
	GenerateStructured(ctx context.Context, prompt string, out any) error
}

// Briefing is the morning dashboard summary of the inbox.
type Briefing struct {
	Summary           string `json:"summary"`
	HighPriorityCount int    `json:"high_priority_count"`
	MeetingRequests   int    `json:"meeting_requests"`
	TimeSensitive     int    `json:"time_sensitive"`
}

// Summarizer produces email summaries and dashboard briefings.
type Summarizer struct {
	gateway Gateway
}

// NewSummarizer creates a summarizer over the given gateway.
func NewSummarizer(gateway Gateway) *Summarizer {
	return &Summarizer{gateway: gateway}
}

// SummarizeEmail extracts key points and suggested actions from one email.
// Never errors: LLM failures fall back to a keyword-driven summary.
func (s *Summarizer) SummarizeEmail(ctx context.Context, sender, subject, content string) *store.EmailSummary {
	if s.gateway != nil && s.gateway.IsAvailable() {
		prompt := fmt.Sprintf(emailSummaryPromptTemplate, sender, subject, content)
		var result store.EmailSummary
		if err := s.gateway.GenerateStructured(ctx, prompt, &result); err == nil && len(result.KeyPoints) > 0 {
			return &result
		} else if err != nil {
			slog.Warn("LLM email summary failed, using fallback", "error", err)
		}
	}
	return fallbackEmailSummary(sender, subject, content)
}

const emailSummaryPromptTemplate = `Summarize the email below.

Email:
  From: %s
  Subject: %s
  Body: %s

Respond with ONLY a JSON object:
{"key_points": ["<2-4 short points>"], "suggested_actions": ["<2-3 short actions>"]}`

// fallbackEmailSummary lifts bullet lines as key points and derives
// actions from subject keywords.
func fallbackEmailSummary(sender, subject, content string) *store.EmailSummary {
	var points []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, marker) {
				point := strings.TrimSpace(strings.TrimPrefix(line, marker))
				if point != "" {
					points = append(points, point)
				}
				break
			}
		}
		if len(points) == 4 {
			break
		}
	}
	if len(points) == 0 {
		points = []string{
			fmt.Sprintf("Email from %s regarding %s", sender, subject),
			"No itemized points detected in the body",
		}
	}

	var actions []string
	lowerSubject := strings.ToLower(subject)
	if strings.Contains(lowerSubject, "meeting") || strings.Contains(lowerSubject, "sync") {
		actions = append(actions, "Confirm availability and respond with preferred time")
	}
	if strings.Contains(lowerSubject, "review") {
		actions = append(actions, "Review the referenced materials")
	}
	if strings.Contains(lowerSubject, "update") {
		actions = append(actions, "Read the update and acknowledge")
	}
	if len(actions) > 3 {
		actions = actions[:3]
	}
	if len(actions) == 0 {
		actions = []string{"Read and respond if a reply is expected"}
	}

	return &store.EmailSummary{KeyPoints: points, SuggestedActions: actions}
}

// SummarizeDashboard produces the morning briefing over the current inbox.
// Never errors: LLM failures fall back to deterministic counting.
func (s *Summarizer) SummarizeDashboard(ctx context.Context, emails []*store.Email) *Briefing {
	if len(emails) == 0 {
		return &Briefing{Summary: "No emails in inbox"}
	}

	if s.gateway != nil && s.gateway.IsAvailable() {
		var result Briefing
		if err := s.gateway.GenerateStructured(ctx, renderDashboardPrompt(emails), &result); err == nil && result.Summary != "" {
			return &result
		} else if err != nil {
			slog.Warn("LLM dashboard summary failed, using fallback", "error", err)
		}
	}
	return fallbackBriefing(emails)
}

const dashboardPromptTemplate = `You are a personal assistant writing a short morning briefing. Summarize the inbox below: what needs attention first and why.

Inbox:
%s
Respond with ONLY a JSON object:
{"summary": "<2-3 sentences>", "high_priority_count": <int>, "meeting_requests": <int>, "time_sensitive": <int>}`

func renderDashboardPrompt(emails []*store.Email) string {
	var b strings.Builder
	for _, e := range emails {
		fmt.Fprintf(&b, "  - From %s: %q (type: %s, deadline: %s, urgency: %d)\n",
			e.Sender, e.Subject, e.Type, e.Deadline, e.Urgency)
	}
	return fmt.Sprintf(dashboardPromptTemplate, b.String())
}

// fallbackBriefing counts high-priority, meeting-request, and
// time-sensitive emails and describes the top items in plain language.
func fallbackBriefing(emails []*store.Email) *Briefing {
	briefing := &Briefing{}
	var highlights []string

	for _, e := range emails {
		if e.Urgency >= highPriorityThreshold {
			briefing.HighPriorityCount++
			if len(highlights) < 2 {
				highlights = append(highlights, fmt.Sprintf("%s from %s", e.Subject, e.Sender))
			}
		}
		if e.Type == meetingRequestType {
			briefing.MeetingRequests++
		}
		deadline := strings.ToLower(e.Deadline)
		if strings.Contains(deadline, "today") || strings.Contains(deadline, "tomorrow") || strings.Contains(deadline, "asap") {
			briefing.TimeSensitive++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d emails in your inbox", len(emails))
	if briefing.HighPriorityCount > 0 {
		fmt.Fprintf(&b, ", %d high priority", briefing.HighPriorityCount)
	}
	if briefing.TimeSensitive > 0 {
		fmt.Fprintf(&b, ", %d time-sensitive", briefing.TimeSensitive)
	}
	b.WriteString(".")
	if len(highlights) > 0 {
		fmt.Fprintf(&b, " Needs attention first: %s.", strings.Join(highlights, "; "))
	}
	briefing.Summary = b.String()
	return briefing
}
