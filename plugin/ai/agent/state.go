// Package agent implements the supervisor/worker orchestration graph that
// routes free-text assistant queries to the right capability.
package agent

// Route identifies the next node the graph should execute.
type Route string

const (
	// RouteSupervisor is the entry node that decides where a query goes.
	RouteSupervisor Route = "supervisor"
	// RouteMemory handles personal-context questions via semantic memory.
	RouteMemory Route = "memory"
	// RouteEmail handles inbox and priority questions.
	RouteEmail Route = "email"
	// RouteFinish terminates the run.
	RouteFinish Route = "FINISH"
)

// Message is one role-tagged conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the mutable context threaded through a graph run. Messages is
// append-only; Memories accumulates retrieved snippets without dedup.
type State struct {
	Messages []Message `json:"messages"`
	Memories []string  `json:"memories"`
	Route    Route     `json:"route"`
	Output   string    `json:"output"`
}

// AddMessage appends a conversation entry.
func (s *State) AddMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// LastUserMessage returns the content of the most recent user message, or
// the empty string when there is none.
func (s *State) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == "user" {
			return s.Messages[i].Content
		}
	}
	return ""
}
