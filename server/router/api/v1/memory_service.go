package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type storeMemoryRequest struct {
	Text string `json:"text"`
}

// HandleStoreMemory indexes a text blob into semantic memory.
func (s *APIV1Service) HandleStoreMemory(c echo.Context) error {
	var req storeMemoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	if err := s.Memory.Store(c.Request().Context(), req.Text); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"stored": true})
}

// HandleSearchMemory returns stored texts most similar to ?q=.
func (s *APIV1Service) HandleSearchMemory(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	results, err := s.Memory.Search(c.Request().Context(), query, 0)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}
