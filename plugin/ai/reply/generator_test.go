package reply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) IsAvailable() bool { return false }
func (unavailableGateway) GenerateText(context.Context, string) (string, error) {
	return "", errors.LLMUnavailable("no provider")
}

type cannedGateway struct{ draft string }

func (cannedGateway) IsAvailable() bool { return true }
func (g cannedGateway) GenerateText(context.Context, string) (string, error) {
	return g.draft, nil
}

type failingGateway struct{}

func (failingGateway) IsAvailable() bool { return true }
func (failingGateway) GenerateText(context.Context, string) (string, error) {
	return "", errors.ProviderError("boom", nil)
}

// Every tone must produce a non-empty, signed draft even with empty content.
func TestTemplateReplyNonEmptyForAllTones(t *testing.T) {
	gen := NewGenerator(unavailableGateway{}, nil, "Pratik")

	for _, tone := range []Tone{ToneConcise, ToneFormal, ToneDirect, Tone("sarcastic"), Tone("")} {
		t.Run(string(tone), func(t *testing.T) {
			draft := gen.Generate(context.Background(), "Sarah Chen", "Q4 board meeting", "", tone)
			assert.NotEmpty(t, draft)
			assert.Contains(t, draft, "Sarah")
			assert.Contains(t, draft, "Pratik")
		})
	}
}

func TestTemplateReplyExtractsActionItems(t *testing.T) {
	gen := NewGenerator(unavailableGateway{}, nil, "Pratik")

	content := "Please handle the following:\n- book the conference room\n- send the agenda\n* confirm attendees\n- order lunch\nThanks!"
	draft := gen.Generate(context.Background(), "Mike Rodriguez", "Offsite logistics", content, ToneConcise)

	assert.Contains(t, draft, "book the conference room")
	assert.Contains(t, draft, "send the agenda")
	assert.Contains(t, draft, "confirm attendees")
	// Capped at three items.
	assert.NotContains(t, draft, "order lunch")
}

func TestGenerateUsesLLMDraft(t *testing.T) {
	gen := NewGenerator(cannedGateway{draft: "  Sounds good, see you then.\n"}, nil, "Pratik")

	draft := gen.Generate(context.Background(), "David Park", "Sprint review", "Can we move it?", ToneDirect)
	assert.Equal(t, "Sounds good, see you then.", draft)
}

func TestGenerateFallsBackOnLLMFailure(t *testing.T) {
	gen := NewGenerator(failingGateway{}, nil, "Pratik")

	draft := gen.Generate(context.Background(), "Emily Watson", "Performance reviews", "", ToneFormal)
	require.NotEmpty(t, draft)
	assert.Contains(t, draft, "Dear Emily")
	assert.Contains(t, draft, "Best regards,\nPratik")
}

func TestNormalizeTone(t *testing.T) {
	assert.Equal(t, ToneConcise, NormalizeTone("nonsense"))
	assert.Equal(t, ToneFormal, NormalizeTone(ToneFormal))
	assert.Equal(t, ToneDirect, NormalizeTone(ToneDirect))
}

func TestFirstNameOf(t *testing.T) {
	assert.Equal(t, "Lisa", firstNameOf("Lisa Anderson"))
	assert.Equal(t, "there", firstNameOf("  "))
}
