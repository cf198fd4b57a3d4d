// Package memory provides the semantic memory service used for
// context-grounded answers and reply generation.
package memory

import (
	"context"
	"hash/fnv"
	"log/slog"
	"math"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/memag-ai/memag/plugin/ai/timeout"
	"github.com/memag-ai/memag/plugin/ai/vector"
)

// hashDimensions is the dimensionality of the degraded hash embedding used
// when no embedding provider is configured.
const hashDimensions = 256

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service stores opaque text blobs and retrieves the most semantically
// similar prior texts. It owns no domain objects.
type Service struct {
	embedder Embedder
	index    vector.Index
	topK     int
}

// NewService creates a memory service over the given embedder and index.
func NewService(embedder Embedder, index vector.Index, topK int) *Service {
	if topK <= 0 {
		topK = 3
	}
	return &Service{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Store indexes a text blob for later similarity search.
func (s *Service) Store(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	vec := s.embed(ctx, text)
	return s.index.Add(ctx, shortuuid.New(), vec, text)
}

// Search returns up to k stored texts most similar to the query, best first.
// k <= 0 uses the configured top-k.
func (s *Service) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = s.topK
	}
	vec := s.embed(ctx, query)
	results, err := s.index.Search(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	return texts, nil
}

// embed produces an embedding for the text, degrading to a deterministic
// token-hash embedding when the provider is unavailable or fails. Memory
// keeps working offline, just with cruder similarity.
func (s *Service) embed(ctx context.Context, text string) []float32 {
	if s.embedder != nil {
		ctx, cancel := context.WithTimeout(ctx, timeout.EmbeddingTimeout)
		defer cancel()

		vec, err := s.embedder.Embed(ctx, text)
		if err == nil && len(vec) > 0 {
			return vec
		}
		if err != nil {
			slog.Debug("embedding failed, using hash embedding", "error", err)
		}
	}
	return hashEmbedding(text)
}

// hashEmbedding maps tokens into fixed buckets and L2-normalizes the
// resulting counts. Texts sharing words land near each other.
func hashEmbedding(text string) []float32 {
	vec := make([]float32, hashDimensions)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,:;!?\"'()[]")
		if token == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%hashDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}
