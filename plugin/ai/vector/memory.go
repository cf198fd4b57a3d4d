package vector

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is an in-process cosine similarity index. It is the default
// index when running on SQLite, where no pgvector equivalent exists.
// Thread-safe for concurrent access.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[string]*storedEntry
}

type storedEntry struct {
	vector []float32
	text   string
}

// NewMemoryIndex creates an empty in-process index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		entries: make(map[string]*storedEntry),
	}
}

// Add stores a vector with its source text under the given document ID.
func (m *MemoryIndex) Add(_ context.Context, docID string, vec []float32, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	vecCopy := make([]float32, len(vec))
	copy(vecCopy, vec)
	m.entries[docID] = &storedEntry{vector: vecCopy, text: text}
	return nil
}

// Search returns the k most similar entries, best first.
func (m *MemoryIndex) Search(_ context.Context, vec []float32, k int) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]Result, 0, len(m.entries))
	for docID, entry := range m.entries {
		results = append(results, Result{
			DocID: docID,
			Text:  entry.text,
			Score: CosineSimilarity(vec, entry.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of stored entries.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched or zero-length vectors.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
