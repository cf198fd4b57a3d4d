// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

const (
	// WorkerTimeout is the timeout for a single graph worker invocation.
	WorkerTimeout = 2 * time.Minute

	// RoutingTimeout is the timeout for supervisor route classification.
	RoutingTimeout = 15 * time.Second

	// EmbeddingTimeout is the timeout for embedding generation.
	EmbeddingTimeout = 30 * time.Second

	// MaxScoringConcurrency bounds parallel LLM calls during bulk scoring.
	MaxScoringConcurrency = 4

	// MaxTruncateLength caps long strings embedded in prompts and logs.
	MaxTruncateLength = 200
)
