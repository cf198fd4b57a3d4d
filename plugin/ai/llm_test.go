package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/internal/profile"
)

func newUnavailableGateway() *Gateway {
	p := &profile.Profile{AIProvider: "openai", AITimeoutSeconds: 5}
	return NewGateway(p)
}

func TestGatewayUnavailable(t *testing.T) {
	g := newUnavailableGateway()
	assert.False(t, g.IsAvailable())

	ctx := context.Background()

	_, err := g.GenerateText(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLLMUnavailable))

	var out map[string]any
	err = g.GenerateStructured(ctx, "hello", &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLLMUnavailable))

	_, err = g.Embed(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLLMUnavailable))
}

func TestGatewayAvailability(t *testing.T) {
	p := &profile.Profile{
		AIProvider:        "deepseek",
		AIDeepSeekAPIKey:  "sk-test",
		AIDeepSeekBaseURL: "https://api.deepseek.com/v1",
		AITimeoutSeconds:  5,
	}
	g := NewGateway(p)
	assert.True(t, g.IsAvailable())

	// Ollama needs only a base URL.
	p = &profile.Profile{
		AIProvider:       "ollama",
		AIOllamaBaseURL:  "http://localhost:11434/v1",
		AITimeoutSeconds: 5,
	}
	assert.True(t, NewGateway(p).IsAvailable())
}
