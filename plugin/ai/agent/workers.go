package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/memag-ai/memag/store"
)

// Worker executes one node of the graph. Run returns an error only for
// programming bugs; LLM failures are absorbed into an apology output.
type Worker interface {
	Run(ctx context.Context, state *State) error
}

const (
	memoryApology = "I'm sorry, I couldn't look that up in your personal context right now. Please try again in a moment."
	emailApology  = "I'm sorry, I couldn't check your inbox right now. Please try again in a moment."

	// emailWorkerLimit caps the inbox snapshot handed to the model.
	emailWorkerLimit = 5
)

// MemorySearcher retrieves stored context snippets by similarity.
type MemorySearcher interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// MemoryWorker answers personal-context questions grounded in retrieved
// memory snippets.
type MemoryWorker struct {
	gateway Gateway
	memory  MemorySearcher
}

// NewMemoryWorker creates a memory worker.
func NewMemoryWorker(gateway Gateway, memory MemorySearcher) *MemoryWorker {
	return &MemoryWorker{gateway: gateway, memory: memory}
}

// Run searches memory on the last user message, appends the snippets to
// state, and produces a grounded answer. Always sets Route to Finish.
func (w *MemoryWorker) Run(ctx context.Context, state *State) error {
	defer func() { state.Route = RouteFinish }()

	question := state.LastUserMessage()
	if w.memory != nil {
		snippets, err := w.memory.Search(ctx, question, 0)
		if err != nil {
			slog.Warn("memory search failed", "error", err)
		} else {
			state.Memories = append(state.Memories, snippets...)
		}
	}

	answer, err := w.gateway.GenerateText(ctx, renderMemoryAnswerPrompt(state.Memories, question))
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			slog.Warn("memory worker answer failed", "error", err)
		}
		answer = memoryApology
	}

	state.AddMessage("assistant", answer)
	state.Output = answer
	return nil
}

// EmailWorker answers inbox questions over a snapshot of the most recent
// emails with their urgency scores.
type EmailWorker struct {
	gateway Gateway
	store   *store.Store
}

// NewEmailWorker creates an email worker.
func NewEmailWorker(gateway Gateway, st *store.Store) *EmailWorker {
	return &EmailWorker{gateway: gateway, store: st}
}

// Run loads the most recent emails and produces an answer referencing
// them. Always sets Route to Finish.
func (w *EmailWorker) Run(ctx context.Context, state *State) error {
	defer func() { state.Route = RouteFinish }()

	question := state.LastUserMessage()

	var inbox []string
	if w.store != nil {
		limit := emailWorkerLimit
		emails, err := w.store.ListEmails(ctx, &store.FindEmail{Limit: &limit})
		if err != nil {
			slog.Warn("email worker inbox load failed", "error", err)
		} else {
			for _, e := range emails {
				inbox = append(inbox, fmt.Sprintf("From %s: %q (deadline: %s, urgency: %d)",
					e.Sender, e.Subject, e.Deadline, e.Urgency))
			}
		}
	}

	answer, err := w.gateway.GenerateText(ctx, renderEmailAnswerPrompt(inbox, question))
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			slog.Warn("email worker answer failed", "error", err)
		}
		answer = emailApology
	}

	state.AddMessage("assistant", answer)
	state.Output = answer
	return nil
}
