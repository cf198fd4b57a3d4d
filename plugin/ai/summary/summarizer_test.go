package summary

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/store"
)

type stubGateway struct {
	available bool
	response  string
	err       error
}

func (s *stubGateway) IsAvailable() bool { return s.available }

func (s *stubGateway) GenerateStructured(_ context.Context, _ string, out any) error {
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.response), out)
}

func TestSummarizeEmailFallbackExtractsBullets(t *testing.T) {
	s := NewSummarizer(&stubGateway{})

	content := "Agenda:\n- revenue numbers\n- hiring plan\n- product roadmap\n- budget cuts\n- extra item"
	result := s.SummarizeEmail(context.Background(), "Sarah Chen", "Board meeting review", content)

	require.NotNil(t, result)
	assert.Len(t, result.KeyPoints, 4)
	assert.Equal(t, "revenue numbers", result.KeyPoints[0])
	assert.NotContains(t, result.KeyPoints, "extra item")
	assert.Contains(t, result.SuggestedActions[0], "Review")
}

func TestSummarizeEmailFallbackWithoutBullets(t *testing.T) {
	s := NewSummarizer(&stubGateway{})

	result := s.SummarizeEmail(context.Background(), "Mike Rodriguez", "Quick question", "Do you have five minutes?")
	require.NotNil(t, result)
	assert.NotEmpty(t, result.KeyPoints)
	assert.Contains(t, result.KeyPoints[0], "Mike Rodriguez")
	require.NotEmpty(t, result.SuggestedActions)
}

func TestSummarizeEmailMeetingSubjectAction(t *testing.T) {
	s := NewSummarizer(&stubGateway{err: errors.ProviderError("down", nil), available: true})

	result := s.SummarizeEmail(context.Background(), "David Park", "Team sync meeting", "")
	require.NotEmpty(t, result.SuggestedActions)
	assert.Contains(t, result.SuggestedActions[0], "Confirm availability")
}

func TestSummarizeEmailUsesLLM(t *testing.T) {
	gw := &stubGateway{
		available: true,
		response:  `{"key_points": ["budget approved"], "suggested_actions": ["notify the team"]}`,
	}
	s := NewSummarizer(gw)

	result := s.SummarizeEmail(context.Background(), "A", "B", "C")
	assert.Equal(t, []string{"budget approved"}, result.KeyPoints)
	assert.Equal(t, []string{"notify the team"}, result.SuggestedActions)
}

func TestSummarizeDashboardEmptyInbox(t *testing.T) {
	s := NewSummarizer(&stubGateway{available: true})

	briefing := s.SummarizeDashboard(context.Background(), nil)
	assert.Equal(t, "No emails in inbox", briefing.Summary)
	assert.Zero(t, briefing.HighPriorityCount)
	assert.Zero(t, briefing.MeetingRequests)
	assert.Zero(t, briefing.TimeSensitive)
}

func TestSummarizeDashboardFallbackCounts(t *testing.T) {
	s := NewSummarizer(&stubGateway{err: errors.Timeout("slow"), available: true})

	emails := []*store.Email{
		{Sender: "Sarah Chen", Subject: "Board prep", Urgency: 90, Type: "Urgent", Deadline: "Today 3 PM"},
		{Sender: "David Park", Subject: "1:1", Urgency: 60, Type: "Meeting request", Deadline: "Tomorrow"},
		{Sender: "Newsletter", Subject: "Digest", Urgency: 30, Type: "FYI", Deadline: "No deadline"},
	}

	briefing := s.SummarizeDashboard(context.Background(), emails)
	assert.Equal(t, 1, briefing.HighPriorityCount)
	assert.Equal(t, 1, briefing.MeetingRequests)
	assert.Equal(t, 2, briefing.TimeSensitive)
	assert.Contains(t, briefing.Summary, "3 emails")
	assert.Contains(t, briefing.Summary, "Board prep")
}
