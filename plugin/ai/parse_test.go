package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memag-ai/memag/internal/errors"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "plain_object",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "code_fenced",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "code_fenced_no_language",
			input:    "```\n{\"score\": 12, \"reasoning\": \"tight deadline\"}\n```",
			expected: `{"score": 12, "reasoning": "tight deadline"}`,
		},
		{
			name:     "surrounding_prose",
			input:    "Here is the result you asked for:\n{\"next\": \"email\"}\nLet me know if you need more.",
			expected: `{"next": "email"}`,
		},
		{
			name:     "nested_object",
			input:    `prefix {"outer": {"inner": [1, 2]}} suffix`,
			expected: `{"outer": {"inner": [1, 2]}}`,
		},
		{
			name:     "braces_inside_strings",
			input:    `{"text": "a } brace and a { brace"}`,
			expected: `{"text": "a } brace and a { brace"}`,
		},
		{
			name:    "no_json",
			input:   "I could not produce a classification.",
			wantErr: true,
		},
		{
			name:    "unterminated",
			input:   `{"a": 1`,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"a\":1}\n```", &out))
	assert.Equal(t, 1, out.A)

	err := DecodeJSON("not json at all", &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedResponse))
}

func TestFlattenParts(t *testing.T) {
	parts := []Part{
		{Type: PartTypeReasoning, Text: "thinking about the answer..."},
		{Type: PartTypeText, Text: "The answer is 42."},
	}
	assert.Equal(t, "The answer is 42.", FlattenParts(parts))

	// Only reasoning: nothing survives.
	assert.Empty(t, FlattenParts([]Part{{Type: PartTypeReasoning, Text: "hmm"}}))

	// Multiple text segments concatenate in order.
	multi := []Part{
		{Type: PartTypeText, Text: "first "},
		{Type: PartTypeReasoning, Text: "ignored"},
		{Type: PartTypeText, Text: "second"},
	}
	assert.Equal(t, "first second", FlattenParts(multi))
}
