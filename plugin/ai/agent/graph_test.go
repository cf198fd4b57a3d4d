package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
)

// scriptedGateway answers structured calls with route and text calls with
// answer; either can be forced to fail.
type scriptedGateway struct {
	available bool
	route     string
	answer    string
	routeErr  error
	answerErr error
}

func (g *scriptedGateway) IsAvailable() bool { return g.available }

func (g *scriptedGateway) GenerateText(context.Context, string) (string, error) {
	if g.answerErr != nil {
		return "", g.answerErr
	}
	return g.answer, nil
}

func (g *scriptedGateway) GenerateStructured(_ context.Context, _ string, out any) error {
	if g.routeErr != nil {
		return g.routeErr
	}
	raw, _ := json.Marshal(map[string]string{"next": g.route, "reasoning": "scripted"})
	return json.Unmarshal(raw, out)
}

type staticMemory struct{ snippets []string }

func (m staticMemory) Search(context.Context, string, int) ([]string, error) {
	return m.snippets, nil
}

func newTestGraph(t *testing.T, gw Gateway) *Graph {
	t.Helper()
	graph, err := NewGraph(NewSupervisor(gw), map[Route]Worker{
		RouteMemory: NewMemoryWorker(gw, staticMemory{snippets: []string{"Sarah Chen is the Chief of Staff"}}),
		RouteEmail:  NewEmailWorker(gw, nil),
	})
	require.NoError(t, err)
	return graph
}

func TestNewGraphValidatesTransitionTable(t *testing.T) {
	gw := &scriptedGateway{}

	_, err := NewGraph(NewSupervisor(gw), map[Route]Worker{RouteMemory: NewMemoryWorker(gw, nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a worker")

	_, err = NewGraph(NewSupervisor(gw), map[Route]Worker{
		RouteMemory: NewMemoryWorker(gw, nil),
		RouteEmail:  NewEmailWorker(gw, nil),
		Route("x"):  NewEmailWorker(gw, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown route")

	_, err = NewGraph(nil, nil)
	require.Error(t, err)
}

func TestRunRoutesToMemoryWorker(t *testing.T) {
	gw := &scriptedGateway{available: true, route: "memory", answer: "Sarah Chen is your Chief of Staff."}
	graph := newTestGraph(t, gw)

	state, err := graph.Run(context.Background(), "Who is Sarah Chen?")
	require.NoError(t, err)
	assert.Equal(t, RouteFinish, state.Route)
	assert.Equal(t, "Sarah Chen is your Chief of Staff.", state.Output)
	assert.Contains(t, state.Memories, "Sarah Chen is the Chief of Staff")

	// user question plus assistant answer, append-only.
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "user", state.Messages[0].Role)
	assert.Equal(t, "assistant", state.Messages[1].Role)
}

func TestRunFinishesWhenGatewayUnavailable(t *testing.T) {
	graph := newTestGraph(t, &scriptedGateway{available: false})

	state, err := graph.Run(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, RouteFinish, state.Route)
	assert.NotEmpty(t, state.Output)
}

// A failing routing call must resolve to FINISH, never an error.
func TestRunFinishesOnRoutingFailure(t *testing.T) {
	gw := &scriptedGateway{available: true, routeErr: errors.ProviderError("routing down", nil)}
	graph := newTestGraph(t, gw)

	state, err := graph.Run(context.Background(), "what's urgent?")
	require.NoError(t, err)
	assert.Equal(t, RouteFinish, state.Route)
	assert.NotEmpty(t, state.Output)
}

func TestRunFinishesOnUnknownRoute(t *testing.T) {
	gw := &scriptedGateway{available: true, route: "calendar"}
	graph := newTestGraph(t, gw)

	state, err := graph.Run(context.Background(), "book a meeting")
	require.NoError(t, err)
	assert.Equal(t, RouteFinish, state.Route)
}

func TestMemoryWorkerApologizesOnAnswerFailure(t *testing.T) {
	gw := &scriptedGateway{available: true, answerErr: errors.Timeout("slow model")}
	worker := NewMemoryWorker(gw, staticMemory{})

	state := &State{}
	state.AddMessage("user", "what do I like?")
	require.NoError(t, worker.Run(context.Background(), state))

	assert.Equal(t, RouteFinish, state.Route)
	assert.Equal(t, memoryApology, state.Output)
}

func TestEmailWorkerApologizesOnAnswerFailure(t *testing.T) {
	gw := &scriptedGateway{available: true, answerErr: errors.ProviderError("boom", nil)}
	worker := NewEmailWorker(gw, nil)

	state := &State{}
	state.AddMessage("user", "what's in my inbox?")
	require.NoError(t, worker.Run(context.Background(), state))

	assert.Equal(t, RouteFinish, state.Route)
	assert.Equal(t, emailApology, state.Output)
}

func TestLastUserMessage(t *testing.T) {
	state := &State{}
	assert.Empty(t, state.LastUserMessage())

	state.AddMessage("user", "first")
	state.AddMessage("assistant", "reply")
	state.AddMessage("user", "second")
	assert.Equal(t, "second", state.LastUserMessage())
}
