// Package v1 exposes the assistant's REST API over echo.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/internal/inbox"
	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/plugin/ai/agent"
	"github.com/memag-ai/memag/plugin/ai/memory"
	"github.com/memag-ai/memag/plugin/ai/priority"
	"github.com/memag-ai/memag/plugin/ai/reply"
	"github.com/memag-ai/memag/plugin/ai/summary"
	"github.com/memag-ai/memag/server/middleware"
	"github.com/memag-ai/memag/store"
)

// APIV1Service wires the feature services to HTTP routes. Handlers stay
// thin: parse, delegate, map errors. AI failures never reach this layer;
// feature services convert them to fallbacks internally.
type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	Inbox      *inbox.Service
	Engine     *priority.Engine
	Graph      *agent.Graph
	Reply      *reply.Generator
	Summarizer *summary.Summarizer
	Memory     *memory.Service
}

// NewAPIV1Service creates the API service.
func NewAPIV1Service(
	profile *profile.Profile,
	st *store.Store,
	inboxService *inbox.Service,
	engine *priority.Engine,
	graph *agent.Graph,
	replyGenerator *reply.Generator,
	summarizer *summary.Summarizer,
	memoryService *memory.Service,
) *APIV1Service {
	return &APIV1Service{
		Profile:    profile,
		Store:      st,
		Inbox:      inboxService,
		Engine:     engine,
		Graph:      graph,
		Reply:      replyGenerator,
		Summarizer: summarizer,
		Memory:     memoryService,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	rateLimiter := middleware.NewRateLimiter()
	api := e.Group("/api", rateLimiter.Middleware())

	api.POST("/assistant/query", s.HandleAssistantQuery)

	api.GET("/priority/scores", s.HandlePriorityScores)
	api.GET("/priority/explain/:id", s.HandlePriorityExplain)

	api.GET("/dashboard/summary", s.HandleDashboardSummary)

	api.POST("/emails", s.HandleCreateEmail)
	api.GET("/emails", s.HandleListEmails)
	api.GET("/emails/:id", s.HandleGetEmail)
	api.POST("/emails/:id/summarize", s.HandleSummarizeEmail)
	api.POST("/emails/:id/reply", s.HandleReplyEmail)

	api.GET("/schedule", s.HandleListSchedule)
	api.POST("/schedule", s.HandleCreateSchedule)
	api.GET("/schedule/today", s.HandleTodaySchedule)
	api.DELETE("/schedule/:id", s.HandleDeleteSchedule)

	api.POST("/memory", s.HandleStoreMemory)
	api.GET("/memory/search", s.HandleSearchMemory)
}

// mapError converts feature errors into HTTP errors. Unrecognized errors
// become 500s via echo's default handler.
func mapError(err error) error {
	switch {
	case errors.IsCode(err, errors.ErrCodeNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.IsCode(err, errors.ErrCodeInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
