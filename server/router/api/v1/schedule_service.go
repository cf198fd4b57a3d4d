package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/memag-ai/memag/store"
)

type scheduleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Date        string `json:"date"`
}

func convertSchedule(schedule *store.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:          fmt.Sprintf("%d", schedule.ID),
		Title:       schedule.Title,
		Description: schedule.Description,
		StartTime:   schedule.StartTime,
		EndTime:     schedule.EndTime,
		Date:        schedule.Date,
	}
}

type createScheduleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Date        string `json:"date"`
}

// HandleListSchedule returns all events, optionally filtered by ?date=.
func (s *APIV1Service) HandleListSchedule(c echo.Context) error {
	find := &store.FindSchedule{}
	if date := c.QueryParam("date"); date != "" {
		find.Date = &date
	}

	schedules, err := s.Store.ListSchedules(c.Request().Context(), find)
	if err != nil {
		return mapError(err)
	}

	responses := make([]scheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, convertSchedule(schedule))
	}
	return c.JSON(http.StatusOK, map[string]any{"events": responses})
}

// HandleCreateSchedule creates a calendar event. Overlapping events are
// allowed.
func (s *APIV1Service) HandleCreateSchedule(c echo.Context) error {
	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Title == "" || req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and date are required")
	}

	created, err := s.Store.CreateSchedule(c.Request().Context(), &store.Schedule{
		UID:         shortuuid.New(),
		CreatedTs:   time.Now().Unix(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Date:        req.Date,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, convertSchedule(created))
}

// HandleTodaySchedule returns today's events.
func (s *APIV1Service) HandleTodaySchedule(c echo.Context) error {
	today := time.Now().Format("2006-01-02")
	schedules, err := s.Store.ListSchedules(c.Request().Context(), &store.FindSchedule{Date: &today})
	if err != nil {
		return mapError(err)
	}

	responses := make([]scheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, convertSchedule(schedule))
	}
	return c.JSON(http.StatusOK, map[string]any{"date": today, "events": responses})
}

// HandleDeleteSchedule deletes one event by ID.
func (s *APIV1Service) HandleDeleteSchedule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid schedule id")
	}

	if err := s.Store.DeleteSchedule(c.Request().Context(), &store.DeleteSchedule{ID: int32(id)}); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
