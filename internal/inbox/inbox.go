// Package inbox handles email intake: preview derivation, rule-based type
// classification, persistence, and best-effort semantic indexing.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/memag-ai/memag/store"
)

// previewLength caps the derived preview text.
const previewLength = 100

// MemoryStorer indexes a text blob for later similarity search.
type MemoryStorer interface {
	Store(ctx context.Context, text string) error
}

// Service processes incoming emails.
type Service struct {
	store  *store.Store
	memory MemoryStorer
}

// NewService creates an inbox service.
func NewService(st *store.Store, memory MemoryStorer) *Service {
	return &Service{store: st, memory: memory}
}

// IncomingEmail is the intake payload before enrichment.
type IncomingEmail struct {
	Sender      string `json:"sender"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	Deadline    string `json:"deadline"`
}

// ProcessEmail derives a preview, classifies the email type, persists the
// email, and indexes it into semantic memory. Memory indexing is
// best-effort; its failure never fails the intake.
func (s *Service) ProcessEmail(ctx context.Context, in *IncomingEmail) (*store.Email, error) {
	deadline := strings.TrimSpace(in.Deadline)
	if deadline == "" {
		deadline = "No deadline"
	}

	email := &store.Email{
		UID:         shortuuid.New(),
		CreatedTs:   time.Now().Unix(),
		Sender:      strings.TrimSpace(in.Sender),
		SenderEmail: strings.TrimSpace(in.SenderEmail),
		Subject:     strings.TrimSpace(in.Subject),
		Content:     in.Content,
		Preview:     derivePreview(in.Content),
		Deadline:    deadline,
		Type:        classifyType(in.Subject, in.Content),
		TimeLabel:   "Just now",
	}

	created, err := s.store.CreateEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.memory != nil {
		blob := fmt.Sprintf("Email from %s: %s. %s", created.Sender, created.Subject, created.Preview)
		if err := s.memory.Store(ctx, blob); err != nil {
			slog.Warn("failed to index email into memory", "uid", created.UID, "error", err)
		}
	}
	return created, nil
}

// derivePreview returns the first previewLength characters of the content
// with an ellipsis when truncated.
func derivePreview(content string) string {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}

// classifyType applies keyword rules over subject and content, most
// specific category first.
func classifyType(subject, content string) string {
	text := strings.ToLower(subject + " " + content)

	for _, kw := range []string{"meeting", "sync", "calendar", "invite", "schedule a call"} {
		if strings.Contains(text, kw) {
			return "Meeting request"
		}
	}
	for _, kw := range []string{"urgent", "asap", "critical", "immediately"} {
		if strings.Contains(text, kw) {
			return "Urgent"
		}
	}
	for _, kw := range []string{"follow up", "follow-up", "reminder", "checking in", "pending"} {
		if strings.Contains(text, kw) {
			return "Follow-up"
		}
	}
	return "FYI"
}
