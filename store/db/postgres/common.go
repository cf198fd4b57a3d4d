package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/memag-ai/memag/store"
)

// placeholder returns the n-th PostgreSQL placeholder ($1-based).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n PostgreSQL placeholders.
func placeholders(n int) string {
	list := make([]string, n)
	for i := range list {
		list[i] = placeholder(i + 1)
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
