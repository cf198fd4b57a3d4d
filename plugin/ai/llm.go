// Package ai provides the LLM gateway shared by every assistant feature.
//
// The gateway is constructed once at process start and injected into each
// component. When no provider credentials are configured it reports itself
// unavailable instead of failing; callers are expected to probe IsAvailable
// and keep a deterministic fallback for every call site.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/memag-ai/memag/internal/errors"
	"github.com/memag-ai/memag/internal/profile"
)

// Gateway wraps a single OpenAI-compatible chat provider.
type Gateway struct {
	client         *openai.Client
	provider       string
	model          string
	embeddingModel string
	temperature    float32
	maxTokens      int
	timeout        time.Duration
}

// NewGateway creates a gateway for the provider selected in the profile.
// A gateway is always returned; if the provider has no credentials the
// gateway is constructed in unavailable mode.
func NewGateway(p *profile.Profile) *Gateway {
	timeoutSeconds := p.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	g := &Gateway{
		provider:       p.AIProvider,
		model:          p.AIModel,
		embeddingModel: p.AIEmbeddingModel,
		temperature:    p.AITemperature,
		maxTokens:      p.AIMaxTokens,
		timeout:        time.Duration(timeoutSeconds) * time.Second,
	}

	if !p.IsAIEnabled() {
		slog.Warn("no LLM credentials configured, AI features will use fallback responses",
			"provider", p.AIProvider)
		return g
	}

	var cfg openai.ClientConfig
	switch p.AIProvider {
	case "deepseek":
		// DeepSeek is compatible with the OpenAI API
		cfg = openai.DefaultConfig(p.AIDeepSeekAPIKey)
		cfg.BaseURL = p.AIDeepSeekBaseURL
	case "nvidia":
		cfg = openai.DefaultConfig(p.AINvidiaAPIKey)
		cfg.BaseURL = p.AINvidiaBaseURL
	case "ollama":
		cfg = openai.DefaultConfig("ollama")
		cfg.BaseURL = p.AIOllamaBaseURL
	default:
		cfg = openai.DefaultConfig(p.AIOpenAIAPIKey)
		if p.AIOpenAIBaseURL != "" {
			cfg.BaseURL = p.AIOpenAIBaseURL
		}
	}

	g.client = openai.NewClientWithConfig(cfg)
	slog.Info("LLM gateway initialized", "provider", p.AIProvider, "model", p.AIModel)
	return g
}

// IsAvailable reports whether a provider is configured.
func (g *Gateway) IsAvailable() bool {
	return g.client != nil
}

// GenerateText sends a fully rendered prompt and returns the provider text.
// The gateway does not retry; a transient provider failure propagates as a
// single PROVIDER_ERROR to the caller, which owns the fallback.
func (g *Gateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.LLMUnavailable("no LLM provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Timeout("LLM request timed out")
		}
		return "", errors.ProviderError("chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.ProviderError("empty chat response", nil)
	}

	// Reasoning models return their chain of thought in a separate segment;
	// only the text segments are part of the answer.
	parts := responseParts(resp.Choices[0].Message)
	return FlattenParts(parts), nil
}

// GenerateStructured sends a prompt expected to yield a single JSON object
// and decodes it into out. Returns MALFORMED_RESPONSE when the provider
// replied but no valid JSON object could be extracted.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, out any) error {
	text, err := g.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}
	return DecodeJSON(text, out)
}

// Embed generates an embedding vector for the given text.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, errors.LLMUnavailable("no LLM provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(g.embeddingModel),
	})
	if err != nil {
		return nil, errors.ProviderError("embedding request failed", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.ProviderError("empty embedding response", nil)
	}
	return resp.Data[0].Embedding, nil
}

// responseParts splits a chat message into typed segments.
func responseParts(msg openai.ChatCompletionMessage) []Part {
	var parts []Part
	if msg.ReasoningContent != "" {
		parts = append(parts, Part{Type: PartTypeReasoning, Text: msg.ReasoningContent})
	}
	if msg.Content != "" {
		parts = append(parts, Part{Type: PartTypeText, Text: msg.Content})
	}
	return parts
}
