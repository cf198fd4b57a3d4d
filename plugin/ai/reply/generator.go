// Package reply drafts email replies in a requested tone, grounded in
// semantic memory when an LLM provider is available and falling back to
// deterministic templates when it is not.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Tone names a reply style. Unknown tones normalize to ToneConcise.
type Tone string

const (
	ToneConcise Tone = "concise"
	ToneFormal  Tone = "formal"
	ToneDirect  Tone = "direct"
)

// contextSnippets is how many memory snippets feed the LLM prompt.
const contextSnippets = 3

// Gateway is the LLM surface the generator needs.
type Gateway interface {
	IsAvailable() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// MemorySearcher retrieves stored context snippets by similarity.
type MemorySearcher interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Generator drafts replies. userName signs the drafts.
type Generator struct {
	gateway  Gateway
	memory   MemorySearcher
	userName string
}

// NewGenerator creates a reply generator signing as userName.
func NewGenerator(gateway Gateway, memory MemorySearcher, userName string) *Generator {
	if userName == "" {
		userName = "Pratik"
	}
	return &Generator{gateway: gateway, memory: memory, userName: userName}
}

// Generate drafts a reply to the given email in the requested tone. The
// result is never empty: any LLM failure falls back to a tone-specific
// template built from the email itself.
func (g *Generator) Generate(ctx context.Context, sender, subject, content string, tone Tone) string {
	tone = NormalizeTone(tone)

	if g.gateway != nil && g.gateway.IsAvailable() {
		draft, err := g.gateway.GenerateText(ctx, g.renderPrompt(ctx, sender, subject, content, tone))
		if err == nil && strings.TrimSpace(draft) != "" {
			return strings.TrimSpace(draft)
		}
		if err != nil {
			slog.Warn("LLM reply generation failed, using template", "error", err)
		}
	}
	return g.templateReply(sender, subject, content, tone)
}

// NormalizeTone maps unknown tones to ToneConcise.
func NormalizeTone(tone Tone) Tone {
	switch tone {
	case ToneConcise, ToneFormal, ToneDirect:
		return tone
	default:
		return ToneConcise
	}
}

func (g *Generator) renderPrompt(ctx context.Context, sender, subject, content string, tone Tone) string {
	var contextBlock strings.Builder
	if g.memory != nil {
		snippets, err := g.memory.Search(ctx, sender+" "+subject, contextSnippets)
		if err != nil {
			slog.Debug("memory search for reply context failed", "error", err)
		}
		for _, s := range snippets {
			fmt.Fprintf(&contextBlock, "  - %s\n", s)
		}
	}
	if contextBlock.Len() == 0 {
		contextBlock.WriteString("  (none)\n")
	}

	return fmt.Sprintf(replyPromptTemplate, tone, contextBlock.String(), sender, subject, content, g.userName)
}

const replyPromptTemplate = `Draft a reply email in a %s tone. Keep it short and actionable, and address the points raised. Do not invent facts beyond the email and the context.

Relevant context about the sender:
%s
Email to reply to:
  From: %s
  Subject: %s
  Body: %s

Sign the reply as %s. Respond with ONLY the reply body.`

// templateReply builds a deterministic per-tone draft: greeting, a line
// referencing the subject, up to three action items lifted from the
// content, and a sign-off.
func (g *Generator) templateReply(sender, subject, content string, tone Tone) string {
	firstName := firstNameOf(sender)
	actions := extractActionItems(content)

	var b strings.Builder
	switch tone {
	case ToneFormal:
		fmt.Fprintf(&b, "Dear %s,\n\n", firstName)
		fmt.Fprintf(&b, "Thank you for your email regarding %q. I have reviewed it and will follow up accordingly.\n", subject)
		if len(actions) > 0 {
			b.WriteString("\nTo confirm the items raised:\n")
			for _, a := range actions {
				fmt.Fprintf(&b, "  - %s\n", a)
			}
		}
		fmt.Fprintf(&b, "\nBest regards,\n%s", g.userName)
	case ToneDirect:
		fmt.Fprintf(&b, "%s,\n\n", firstName)
		fmt.Fprintf(&b, "Got your note on %q. Here's where things stand:\n", subject)
		if len(actions) > 0 {
			for _, a := range actions {
				fmt.Fprintf(&b, "  - %s\n", a)
			}
		} else {
			b.WriteString("  - On it. Will confirm once done.\n")
		}
		fmt.Fprintf(&b, "\n%s", g.userName)
	default: // concise
		fmt.Fprintf(&b, "Hi %s,\n\n", firstName)
		fmt.Fprintf(&b, "Thanks for the note on %q. I'll take a look and get back to you shortly.\n", subject)
		if len(actions) > 0 {
			b.WriteString("\nNoted:\n")
			for _, a := range actions {
				fmt.Fprintf(&b, "  - %s\n", a)
			}
		}
		fmt.Fprintf(&b, "\nThanks,\n%s", g.userName)
	}
	return b.String()
}

func firstNameOf(sender string) string {
	fields := strings.Fields(strings.TrimSpace(sender))
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

// extractActionItems pulls up to three bullet or dash lines out of the
// email body.
func extractActionItems(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, marker) {
				item := strings.TrimSpace(strings.TrimPrefix(line, marker))
				if item != "" {
					items = append(items, item)
				}
				break
			}
		}
		if len(items) == 3 {
			break
		}
	}
	return items
}
