// Package vector provides the similarity index backing semantic memory.
package vector

import "context"

// Index stores embedding vectors alongside their source text and answers
// nearest-neighbour queries.
type Index interface {
	// Add stores a vector with its source text under the given document ID.
	Add(ctx context.Context, docID string, vec []float32, text string) error

	// Search returns the k most similar entries, best first.
	Search(ctx context.Context, vec []float32, k int) ([]Result, error)
}

// Result is a single similarity search hit.
type Result struct {
	DocID string  `json:"doc_id"`
	Text  string  `json:"text"`
	Score float32 `json:"score"` // cosine similarity, higher = closer
}
