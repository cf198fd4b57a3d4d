package sqlite

import (
	"encoding/json"
	"strings"

	"github.com/memag-ai/memag/store"
)

// placeholders returns n SQLite placeholders.
func placeholders(n int) string {
	list := make([]string, n)
	for i := range list {
		list[i] = "?"
	}
	return strings.Join(list, ", ")
}

func marshalSummary(summary *store.EmailSummary) string {
	if summary == nil {
		return ""
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return ""
	}
	return string(raw)
}

func unmarshalSummary(raw string) *store.EmailSummary {
	if raw == "" {
		return nil
	}
	var summary store.EmailSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func marshalThread(thread []store.ThreadMessage) string {
	if thread == nil {
		thread = []store.ThreadMessage{}
	}
	raw, err := json.Marshal(thread)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func unmarshalThread(raw string) []store.ThreadMessage {
	thread := []store.ThreadMessage{}
	if raw == "" {
		return thread
	}
	_ = json.Unmarshal([]byte(raw), &thread)
	return thread
}
