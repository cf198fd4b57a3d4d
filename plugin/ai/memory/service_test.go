package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/plugin/ai/vector"
)

// failingEmbedder simulates an unavailable embedding provider.
type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.LLMUnavailable("no provider")
}

func TestStoreAndSearchWithHashEmbedding(t *testing.T) {
	ctx := context.Background()
	svc := NewService(failingEmbedder{}, vector.NewMemoryIndex(), 3)

	require.NoError(t, svc.Store(ctx, "Email from Sarah Chen: Q4 board meeting strategic review"))
	require.NoError(t, svc.Store(ctx, "Email from Mike Rodriguez: investor update series C timeline"))
	require.NoError(t, svc.Store(ctx, "Weekend plans: park run on Saturday morning"))

	results, err := svc.Search(ctx, "board meeting with Sarah", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0], "Sarah Chen")
}

func TestSearchUsesConfiguredTopK(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil, vector.NewMemoryIndex(), 2)

	for _, text := range []string{"one", "two", "three", "four"} {
		require.NoError(t, svc.Store(ctx, text))
	}

	results, err := svc.Search(ctx, "one", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestStoreIgnoresEmptyText(t *testing.T) {
	ctx := context.Background()
	idx := vector.NewMemoryIndex()
	svc := NewService(nil, idx, 3)

	require.NoError(t, svc.Store(ctx, "   "))
	assert.Equal(t, 0, idx.Len())
}

func TestHashEmbeddingDeterministic(t *testing.T) {
	a := hashEmbedding("project review tomorrow")
	b := hashEmbedding("project review tomorrow")
	assert.Equal(t, a, b)

	// Normalized to unit length.
	sim := vector.CosineSimilarity(a, b)
	assert.InDelta(t, 1.0, float64(sim), 1e-5)
}
