package agent

import (
	"context"
	"log/slog"

	"github.com/memag-ai/memag/plugin/ai/timeout"
)

// Gateway is the LLM surface the agent layer needs.
type Gateway interface {
	IsAvailable() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt string, out any) error
}

// Supervisor decides which worker handles the current conversation.
type Supervisor struct {
	gateway Gateway
}

// NewSupervisor creates a supervisor over the given gateway.
func NewSupervisor(gateway Gateway) *Supervisor {
	return &Supervisor{gateway: gateway}
}

type routingDecision struct {
	Next      string `json:"next"`
	Reasoning string `json:"reasoning"`
}

// Route picks the next worker for the conversation in state. Any failure,
// including an unavailable gateway or an unrecognized answer, resolves to
// RouteFinish: a misroute must degrade the answer, never crash the run.
func (s *Supervisor) Route(ctx context.Context, state *State) Route {
	if s.gateway == nil || !s.gateway.IsAvailable() {
		return RouteFinish
	}

	ctx, cancel := context.WithTimeout(ctx, timeout.RoutingTimeout)
	defer cancel()

	var decision routingDecision
	if err := s.gateway.GenerateStructured(ctx, renderSupervisorPrompt(state.Messages), &decision); err != nil {
		slog.Warn("supervisor routing failed, finishing", "error", err)
		return RouteFinish
	}

	switch Route(decision.Next) {
	case RouteMemory:
		return RouteMemory
	case RouteEmail:
		return RouteEmail
	case RouteFinish:
		return RouteFinish
	default:
		slog.Warn("supervisor returned unknown route, finishing", "next", decision.Next)
		return RouteFinish
	}
}
