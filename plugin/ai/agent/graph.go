package agent

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/memag-ai/memag/internal/observability"
	"github.com/memag-ai/memag/plugin/ai/timeout"
)

// finishOutput is emitted when the supervisor declines to route anywhere.
const finishOutput = "I'm not sure how to help with that. I can answer questions about your personal context or your inbox."

// Graph wires the supervisor to its workers through an enum-keyed
// transition table. The topology is fixed: supervisor picks exactly one
// worker (or finishes), the worker always finishes. Single hop.
type Graph struct {
	supervisor *Supervisor
	workers    map[Route]Worker
}

// NewGraph builds the graph and validates the transition table: every
// routable node must have a worker, and no worker may sit on an unknown
// route. Misconfiguration is a startup error, not a runtime surprise.
func NewGraph(supervisor *Supervisor, workers map[Route]Worker) (*Graph, error) {
	if supervisor == nil {
		return nil, errors.New("graph requires a supervisor")
	}
	for _, route := range []Route{RouteMemory, RouteEmail} {
		if workers[route] == nil {
			return nil, errors.Errorf("graph is missing a worker for route %q", route)
		}
	}
	for route := range workers {
		switch route {
		case RouteMemory, RouteEmail:
		default:
			return nil, errors.Errorf("graph has a worker for unknown route %q", route)
		}
	}
	return &Graph{supervisor: supervisor, workers: workers}, nil
}

// Run executes one query through the graph: seed a user message, let the
// supervisor route, run the chosen worker, finish. LLM failures never
// surface as errors; they degrade to fallback output.
func (g *Graph) Run(ctx context.Context, query string) (*State, error) {
	rc := observability.NewRequestContext(nil, "assistant_query")

	state := &State{Route: RouteSupervisor}
	state.AddMessage("user", query)

	state.Route = g.supervisor.Route(ctx, state)
	rc.Debug("supervisor routed query", slog.String("route", string(state.Route)))
	if state.Route == RouteFinish {
		state.Output = finishOutput
		state.AddMessage("assistant", state.Output)
		rc.Info("query finished without worker", slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
		return state, nil
	}

	worker, ok := g.workers[state.Route]
	if !ok {
		// Unreachable when NewGraph validated the table.
		return nil, errors.Errorf("no worker registered for route %q", state.Route)
	}

	workerCtx, cancel := context.WithTimeout(ctx, timeout.WorkerTimeout)
	defer cancel()
	if err := worker.Run(workerCtx, state); err != nil {
		return nil, err
	}
	rc.Info("query handled",
		slog.String("route", string(state.Route)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	)
	return state, nil
}
