package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/inbox"
	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/plugin/ai"
	"github.com/memag-ai/memag/plugin/ai/agent"
	"github.com/memag-ai/memag/plugin/ai/memory"
	"github.com/memag-ai/memag/plugin/ai/priority"
	"github.com/memag-ai/memag/plugin/ai/reply"
	"github.com/memag-ai/memag/plugin/ai/summary"
	"github.com/memag-ai/memag/plugin/ai/vector"
	"github.com/memag-ai/memag/store"
	"github.com/memag-ai/memag/store/db/sqlite"
)

// newTestAPI builds the full service stack over sqlite with no LLM
// provider configured, so every AI path exercises its fallback.
func newTestAPI(t *testing.T) (*echo.Echo, *APIV1Service) {
	t.Helper()

	p := &profile.Profile{
		Mode:     "prod",
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "memag_test.db"),
		UserName: "Pratik",
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	require.NoError(t, driver.Migrate(context.Background()))
	t.Cleanup(func() { _ = driver.Close() })
	st := store.New(driver, p)

	gateway := ai.NewGateway(p)
	memoryService := memory.NewService(gateway, vector.NewMemoryIndex(), 3)
	graph, err := agent.NewGraph(agent.NewSupervisor(gateway), map[agent.Route]agent.Worker{
		agent.RouteMemory: agent.NewMemoryWorker(gateway, memoryService),
		agent.RouteEmail:  agent.NewEmailWorker(gateway, st),
	})
	require.NoError(t, err)

	api := NewAPIV1Service(
		p, st,
		inbox.NewService(st, memoryService),
		priority.NewEngine(gateway, st),
		graph,
		reply.NewGenerator(gateway, memoryService, p.UserName),
		summary.NewSummarizer(gateway),
		memoryService,
	)

	e := echo.New()
	api.RegisterRoutes(e)
	return e, api
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEmailLifecycle(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodPost, "/api/emails", `{
		"sender": "Sarah Chen",
		"sender_email": "sarah.chen@company.com",
		"subject": "Urgent: board deck",
		"content": "- finalize numbers\n- send deck",
		"deadline": "Today 6 PM"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id, ok := created["id"].(string)
	require.True(t, ok, "id must render as a string")
	assert.Equal(t, "Urgent", created["type"])

	rec = doRequest(e, http.MethodGet, "/api/emails/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Summarize runs the fallback path and persists summary + urgency.
	rec = doRequest(e, http.MethodPost, "/api/emails/"+id+"/summarize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summarized map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summarized))
	assert.NotNil(t, summarized["ai_summary"])
	assert.Greater(t, summarized["urgency"].(float64), float64(0))

	rec = doRequest(e, http.MethodPost, "/api/emails/"+id+"/reply", `{"tone": "formal"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var replied map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replied))
	assert.Equal(t, "formal", replied["tone"])
	assert.Contains(t, replied["draft"], "Pratik")
}

func TestGetEmailNotFound(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodGet, "/api/emails/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/emails/notanumber", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEmailValidation(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodPost, "/api/emails", `{"subject": "no sender"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistantQueryFallsBackWithoutProvider(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodPost, "/api/assistant/query", `{"query": "what is urgent today?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(agent.RouteFinish), resp["route"])
	assert.NotEmpty(t, resp["response"])

	rec = doRequest(e, http.MethodPost, "/api/assistant/query", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriorityScoresEndpoint(t *testing.T) {
	e, api := newTestAPI(t)
	require.NoError(t, api.Inbox.SeedDemoData(context.Background()))

	rec := doRequest(e, http.MethodGet, "/api/priority/scores?use_ai=false", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scores []priority.RankedEmail `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Scores, 5)
	for i, s := range resp.Scores {
		assert.Equal(t, i+1, s.Rank)
	}

	rec = doRequest(e, http.MethodGet, "/api/priority/scores?use_ai=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriorityExplainEndpoint(t *testing.T) {
	e, api := newTestAPI(t)
	require.NoError(t, api.Inbox.SeedDemoData(context.Background()))

	emails, err := api.Store.ListEmails(context.Background(), &store.FindEmail{})
	require.NoError(t, err)
	require.NotEmpty(t, emails)

	rec := doRequest(e, http.MethodGet, "/api/priority/explain/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var explanation priority.Explanation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &explanation))
	assert.Equal(t, explanation.DeadlineWeight+explanation.SenderWeight+explanation.AIUrgency, explanation.TotalScore)

	rec = doRequest(e, http.MethodGet, "/api/priority/explain/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardSummaryEmptyInbox(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var briefing summary.Briefing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &briefing))
	assert.Equal(t, "No emails in inbox", briefing.Summary)
	assert.Zero(t, briefing.HighPriorityCount)
}

func TestScheduleEndpoints(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodPost, "/api/schedule", `{
		"title": "Investor call",
		"start_time": "16:00",
		"end_time": "17:00",
		"date": "2026-09-01"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	rec = doRequest(e, http.MethodGet, "/api/schedule?date=2026-09-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Investor call")

	rec = doRequest(e, http.MethodDelete, "/api/schedule/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/schedule/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/schedule", `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemoryEndpoints(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodPost, "/api/memory", `{"text": "Pratik prefers morning meetings"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/memory/search?q=morning+meetings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "morning meetings")

	rec = doRequest(e, http.MethodGet, "/api/memory/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/memory", `{"text": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
