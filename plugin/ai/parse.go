package ai

import (
	"encoding/json"
	"strings"

	"github.com/memag-ai/memag/internal/errors"
)

// PartType identifies a segment of a multi-part provider response.
type PartType string

const (
	// PartTypeText is an answer segment.
	PartTypeText PartType = "text"
	// PartTypeReasoning is an internal chain-of-thought segment.
	PartTypeReasoning PartType = "reasoning"
)

// Part is one segment of a provider response.
type Part struct {
	Type PartType
	Text string
}

// FlattenParts concatenates the text-typed segments of a response,
// discarding reasoning segments.
func FlattenParts(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Type == PartTypeText {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// DecodeJSON extracts the JSON object embedded in a provider response and
// unmarshals it into out. Providers wrap JSON in code fences or surround it
// with explanatory prose; both are tolerated. Returns MALFORMED_RESPONSE
// when no valid object can be recovered.
func DecodeJSON(text string, out any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return errors.MalformedResponse("failed to unmarshal extracted JSON", err)
	}
	return nil
}

// ExtractJSON returns the first JSON object found in text.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.MalformedResponse("empty response", nil)
	}

	// Strip markdown code fences if present.
	if strings.HasPrefix(text, "```") {
		var jsonLines []string
		inFence := false
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inFence = !inFence
				continue
			}
			if inFence {
				jsonLines = append(jsonLines, line)
			}
		}
		text = strings.TrimSpace(strings.Join(jsonLines, "\n"))
	}

	if json.Valid([]byte(text)) && strings.HasPrefix(text, "{") {
		return text, nil
	}

	// Explanatory prose around the object: take the first balanced {...}.
	start := strings.Index(text, "{")
	if start < 0 {
		return "", errors.MalformedResponse("no JSON object in response", nil)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, nil
				}
				return "", errors.MalformedResponse("unbalanced JSON object in response", nil)
			}
		}
	}

	return "", errors.MalformedResponse("unterminated JSON object in response", nil)
}
