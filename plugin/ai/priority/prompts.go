package priority

import (
	"fmt"

	"github.com/memag-ai/memag/plugin/ai/timeout"
)

const urgencyPromptTemplate = `You are an email urgency analyst. Rate the urgency of the email below on a 0-20 scale based purely on its language and content. Do NOT factor in the sender's rank or the deadline date; those are scored separately.

Consider:
- explicit urgency language (urgent, ASAP, critical)
- blocking dependencies or people waiting on a response
- business stakes (board, investors, funding)
- whether a decision or approval is requested

Email:
  From: %s
  Subject: %s
  Deadline: %s
  Preview: %s

Respond with ONLY a JSON object:
{"ai_urgency_score": <integer 0-20>, "reasoning": "<one short sentence>"}`

func renderUrgencyPrompt(sender, subject, deadline, preview string) string {
	if len(preview) > timeout.MaxTruncateLength {
		preview = preview[:timeout.MaxTruncateLength] + "..."
	}
	return fmt.Sprintf(urgencyPromptTemplate, sender, subject, deadline, preview)
}
