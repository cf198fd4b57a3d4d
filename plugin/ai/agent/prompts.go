package agent

import (
	"fmt"
	"strings"
)

const supervisorPromptTemplate = `You are a supervisor managing two workers for a personal assistant:

- memory: answers questions about the user's personal context, preferences, people they know, and past conversations.
- email: answers questions about the user's inbox, email priorities, senders, and deadlines.

Given the conversation below, decide which worker should act next, or respond with FINISH if the request is complete or neither worker applies.

Conversation:
%s

Respond with ONLY a JSON object:
{"next": "memory" | "email" | "FINISH", "reasoning": "<one short sentence>"}`

func renderSupervisorPrompt(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "  %s: %s\n", m.Role, m.Content)
	}
	return fmt.Sprintf(supervisorPromptTemplate, b.String())
}

const memoryAnswerPromptTemplate = `You are a helpful personal assistant. Answer the user's question using ONLY the retrieved context below. If the context does not contain the answer, say so briefly.

Retrieved context:
%s

Question: %s

Answer in 1-3 sentences.`

func renderMemoryAnswerPrompt(memories []string, question string) string {
	var b strings.Builder
	for _, m := range memories {
		fmt.Fprintf(&b, "  - %s\n", m)
	}
	if b.Len() == 0 {
		b.WriteString("  (no relevant context found)\n")
	}
	return fmt.Sprintf(memoryAnswerPromptTemplate, b.String(), question)
}

const emailAnswerPromptTemplate = `You are a helpful email assistant. Answer the user's question using the inbox snapshot below. Mention senders and urgency where relevant.

Inbox (most recent first):
%s

Question: %s

Answer in 1-4 sentences.`

func renderEmailAnswerPrompt(inbox []string, question string) string {
	var b strings.Builder
	for _, line := range inbox {
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	if b.Len() == 0 {
		b.WriteString("  (inbox is empty)\n")
	}
	return fmt.Sprintf(emailAnswerPromptTemplate, b.String(), question)
}
