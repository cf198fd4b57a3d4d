package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/memag-ai/memag/internal/inbox"
	"github.com/memag-ai/memag/plugin/ai/reply"
	"github.com/memag-ai/memag/store"
)

// emailResponse is the boundary representation of an email. IDs render as
// strings.
type emailResponse struct {
	ID          string                `json:"id"`
	Sender      string                `json:"sender"`
	SenderEmail string                `json:"sender_email"`
	Subject     string                `json:"subject"`
	Content     string                `json:"content"`
	Preview     string                `json:"preview"`
	Deadline    string                `json:"deadline"`
	Type        string                `json:"type"`
	TimeLabel   string                `json:"time_label"`
	Urgency     int32                 `json:"urgency"`
	AISummary   *store.EmailSummary   `json:"ai_summary,omitempty"`
	Thread      []store.ThreadMessage `json:"thread,omitempty"`
}

func convertEmail(email *store.Email) emailResponse {
	return emailResponse{
		ID:          fmt.Sprintf("%d", email.ID),
		Sender:      email.Sender,
		SenderEmail: email.SenderEmail,
		Subject:     email.Subject,
		Content:     email.Content,
		Preview:     email.Preview,
		Deadline:    email.Deadline,
		Type:        email.Type,
		TimeLabel:   email.TimeLabel,
		Urgency:     email.Urgency,
		AISummary:   email.AISummary,
		Thread:      email.Thread,
	}
}

func parseEmailID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid email id")
	}
	return int32(id), nil
}

// HandleCreateEmail ingests a new email through the inbox pipeline.
func (s *APIV1Service) HandleCreateEmail(c echo.Context) error {
	var req inbox.IncomingEmail
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Sender == "" || req.Subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sender and subject are required")
	}

	created, err := s.Inbox.ProcessEmail(c.Request().Context(), &req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, convertEmail(created))
}

// HandleListEmails returns the inbox, newest first.
func (s *APIV1Service) HandleListEmails(c echo.Context) error {
	emails, err := s.Store.ListEmails(c.Request().Context(), &store.FindEmail{})
	if err != nil {
		return mapError(err)
	}

	responses := make([]emailResponse, 0, len(emails))
	for _, email := range emails {
		responses = append(responses, convertEmail(email))
	}
	return c.JSON(http.StatusOK, map[string]any{"emails": responses})
}

// HandleGetEmail returns one email by ID.
func (s *APIV1Service) HandleGetEmail(c echo.Context) error {
	id, err := parseEmailID(c)
	if err != nil {
		return err
	}

	email, err := s.Store.GetEmail(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, convertEmail(email))
}

// HandleSummarizeEmail summarizes and re-scores one email in parallel,
// then merges both results into a single column-scoped update.
func (s *APIV1Service) HandleSummarizeEmail(c echo.Context) error {
	id, err := parseEmailID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	email, err := s.Store.GetEmail(ctx, id)
	if err != nil {
		return mapError(err)
	}

	var (
		emailSummary *store.EmailSummary
		urgency      int32
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		emailSummary = s.Summarizer.SummarizeEmail(gctx, email.Sender, email.Subject, email.Content)
		return nil
	})
	g.Go(func() error {
		urgency = int32(s.Engine.Score(gctx, email).TotalScore)
		return nil
	})
	// Neither branch errors; the group still bounds them to the request ctx.
	_ = g.Wait()

	updated, err := s.Store.UpdateEmail(ctx, &store.UpdateEmail{
		ID:        email.ID,
		Urgency:   &urgency,
		AISummary: emailSummary,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, convertEmail(updated))
}

type replyRequest struct {
	Tone string `json:"tone"`
}

// HandleReplyEmail drafts a reply to one email in the requested tone.
func (s *APIV1Service) HandleReplyEmail(c echo.Context) error {
	id, err := parseEmailID(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	ctx := c.Request().Context()
	email, err := s.Store.GetEmail(ctx, id)
	if err != nil {
		return mapError(err)
	}

	tone := reply.NormalizeTone(reply.Tone(req.Tone))
	draft := s.Reply.Generate(ctx, email.Sender, email.Subject, email.Content, tone)
	return c.JSON(http.StatusOK, map[string]any{
		"email_id": fmt.Sprintf("%d", email.ID),
		"tone":     string(tone),
		"draft":    draft,
	})
}

// HandleDashboardSummary returns the morning briefing over the inbox.
func (s *APIV1Service) HandleDashboardSummary(c echo.Context) error {
	ctx := c.Request().Context()
	emails, err := s.Store.ListEmails(ctx, &store.FindEmail{})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, s.Summarizer.SummarizeDashboard(ctx, emails))
}
