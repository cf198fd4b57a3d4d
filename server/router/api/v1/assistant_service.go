package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type assistantQueryRequest struct {
	Query string `json:"query"`
}

type assistantQueryResponse struct {
	Response string   `json:"response"`
	Route    string   `json:"route"`
	Memories []string `json:"memories,omitempty"`
}

// HandleAssistantQuery routes a free-text query through the agent graph.
func (s *APIV1Service) HandleAssistantQuery(c echo.Context) error {
	var req assistantQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	state, err := s.Graph.Run(c.Request().Context(), req.Query)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, assistantQueryResponse{
		Response: state.Output,
		Route:    string(state.Route),
		Memories: state.Memories,
	})
}
