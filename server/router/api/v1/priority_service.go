package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HandlePriorityScores scores the whole inbox and returns the ranked list.
// use_ai=false skips the LLM urgency factor.
func (s *APIV1Service) HandlePriorityScores(c echo.Context) error {
	useAI := true
	if raw := c.QueryParam("use_ai"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "use_ai must be a boolean")
		}
		useAI = parsed
	}

	ranked, err := s.Engine.ScoreAll(c.Request().Context(), useAI)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"scores": ranked})
}

// HandlePriorityExplain returns the factor breakdown for one email.
func (s *APIV1Service) HandlePriorityExplain(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email id")
	}

	explanation, err := s.Engine.Explain(c.Request().Context(), int32(id))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, explanation)
}
