package inbox

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/store"
	"github.com/memag-ai/memag/store/db/sqlite"
)

type recordingMemory struct{ blobs []string }

func (m *recordingMemory) Store(_ context.Context, text string) error {
	m.blobs = append(m.blobs, text)
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{
		Mode:   "prod",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "memag_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	require.NoError(t, driver.Migrate(context.Background()))
	t.Cleanup(func() { _ = driver.Close() })
	return store.New(driver, p)
}

func TestProcessEmail(t *testing.T) {
	ctx := context.Background()
	mem := &recordingMemory{}
	svc := NewService(newTestStore(t), mem)

	created, err := svc.ProcessEmail(ctx, &IncomingEmail{
		Sender:      "Sarah Chen",
		SenderEmail: "sarah.chen@company.com",
		Subject:     "Urgent: board deck tonight",
		Content:     strings.Repeat("We need the final numbers. ", 10),
		Deadline:    "Today 6 PM",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, "Urgent", created.Type)

	// Preview is capped with an ellipsis.
	assert.True(t, strings.HasSuffix(created.Preview, "..."))
	assert.LessOrEqual(t, len([]rune(created.Preview)), previewLength+3)

	// Indexed into memory.
	require.Len(t, mem.blobs, 1)
	assert.Contains(t, mem.blobs[0], "Email from Sarah Chen")
	assert.Contains(t, mem.blobs[0], "board deck")
}

func TestProcessEmailDefaultsDeadline(t *testing.T) {
	svc := NewService(newTestStore(t), nil)

	created, err := svc.ProcessEmail(context.Background(), &IncomingEmail{
		Sender:  "Someone",
		Subject: "FYI",
		Content: "short note",
	})
	require.NoError(t, err)
	assert.Equal(t, "No deadline", created.Deadline)
	assert.Equal(t, "short note", created.Preview)
}

func TestClassifyType(t *testing.T) {
	testCases := []struct {
		subject  string
		content  string
		expected string
	}{
		{"Team sync next week", "", "Meeting request"},
		{"Urgent: prod incident", "", "Urgent"},
		{"Checking in", "just a friendly reminder", "Follow-up"},
		{"Monthly newsletter", "all quiet", "FYI"},
		// Meeting wins over urgent when both appear.
		{"Urgent meeting request", "", "Meeting request"},
	}

	for _, tc := range testCases {
		t.Run(tc.subject, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyType(tc.subject, tc.content))
		})
	}
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewService(st, &recordingMemory{})

	require.NoError(t, svc.SeedDemoData(ctx))
	emails, err := st.ListEmails(ctx, &store.FindEmail{})
	require.NoError(t, err)
	assert.Len(t, emails, 5)

	schedules, err := st.ListSchedules(ctx, &store.FindSchedule{})
	require.NoError(t, err)
	assert.Len(t, schedules, 3)

	// Re-seeding must not duplicate anything.
	require.NoError(t, svc.SeedDemoData(ctx))
	emails, err = st.ListEmails(ctx, &store.FindEmail{})
	require.NoError(t, err)
	assert.Len(t, emails, 5)
}
