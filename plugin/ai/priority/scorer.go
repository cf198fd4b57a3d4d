// Package priority implements the multi-factor email priority scoring engine.
//
// A score decomposes into three factors:
//
//	deadline weight  0-50  (time-based urgency)
//	sender weight    0-30  (sender importance)
//	AI urgency       0-20  (NLP-detected urgency signals)
//
// The first two factors are fully deterministic. The AI factor degrades to a
// keyword scorer whenever the LLM gateway is unavailable or fails, so the
// engine always produces a complete, explainable breakdown.
package priority

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/memag-ai/memag/plugin/ai/timeout"
	"github.com/memag-ai/memag/store"
)

// Gateway is the LLM surface the engine needs.
type Gateway interface {
	IsAvailable() bool
	GenerateStructured(ctx context.Context, prompt string, out any) error
}

// Breakdown is the per-factor decomposition of an urgency score.
type Breakdown struct {
	TotalScore        int    `json:"total_score"`
	DeadlineWeight    int    `json:"deadline_weight"`
	SenderWeight      int    `json:"sender_weight"`
	AIUrgency         int    `json:"ai_urgency"`
	DeadlineReasoning string `json:"deadline_reasoning"`
	SenderReasoning   string `json:"sender_reasoning"`
	UrgencyReasoning  string `json:"urgency_reasoning"`
}

// RankedEmail is one row of the ranked priority listing.
type RankedEmail struct {
	ID       string `json:"id"`
	Rank     int    `json:"rank"`
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Deadline string `json:"deadline"`
	Breakdown
}

// Explanation is the detailed breakdown for a single email.
type Explanation struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Breakdown
}

// Engine scores emails. It owns no persisted state; scoring is a pure
// function of an email snapshot plus provider availability.
type Engine struct {
	gateway Gateway
	store   *store.Store
}

// NewEngine creates a scoring engine.
func NewEngine(gateway Gateway, st *store.Store) *Engine {
	return &Engine{gateway: gateway, store: st}
}

// deadlineRule maps deadline phrases to a weight. Rules are checked in
// order and the first match wins: more urgent phrases must come before
// looser ones so e.g. "today" is never shadowed by "this week".
type deadlineRule struct {
	phrases []string
	weight  int
	reason  string
}

var deadlineRules = []deadlineRule{
	{[]string{"overdue", "past due"}, 50, "Item is overdue - maximum deadline urgency"},
	{[]string{"today", "now"}, 45, "Deadline is today - extremely time-sensitive"},
	{[]string{"tomorrow"}, 40, "Deadline is tomorrow - high time pressure"},
	{[]string{"this week"}, 35, "Due this week - significant time pressure"},
	{[]string{"next monday", "next week"}, 30, "Due next week - moderate time pressure"},
	{[]string{"next month", "this month"}, 20, "Due this month - standard timeline"},
}

// Sender importance tiers. In production this would come from a contacts
// database or org chart; the flat default for unknown senders is a known
// policy gap.
var senderWeights = map[string]int{
	"Sarah Chen":     28, // Chief of Staff
	"Mike Rodriguez": 26, // VP Finance
	"David Park":     25, // VP Engineering
	"Emily Watson":   24, // HR Director
	"Lisa Anderson":  22, // VP Marketing
}

const defaultSenderWeight = 15

// Score computes the full priority breakdown for a single email, using the
// LLM urgency factor when the gateway is available.
func (e *Engine) Score(ctx context.Context, email *store.Email) Breakdown {
	return e.score(ctx, email, true)
}

func (e *Engine) score(ctx context.Context, email *store.Email, useAI bool) Breakdown {
	deadlineWeight, deadlineReason := scoreDeadline(email.Deadline)
	senderWeight, senderReason := scoreSender(email.Sender)
	aiUrgency, urgencyReason := e.scoreAIUrgency(ctx, email, useAI)

	return Breakdown{
		TotalScore:        deadlineWeight + senderWeight + aiUrgency,
		DeadlineWeight:    deadlineWeight,
		SenderWeight:      senderWeight,
		AIUrgency:         aiUrgency,
		DeadlineReasoning: deadlineReason,
		SenderReasoning:   senderReason,
		UrgencyReasoning:  urgencyReason,
	}
}

// scoreDeadline calculates deadline urgency (0-50).
func scoreDeadline(deadline string) (int, string) {
	lower := strings.ToLower(strings.TrimSpace(deadline))

	for _, rule := range deadlineRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				return rule.weight, rule.reason
			}
		}
	}
	if lower == "" || strings.Contains(lower, "no deadline") {
		return 10, "No explicit deadline set"
	}
	return 25, fmt.Sprintf("Deadline: %s - moderate urgency", deadline)
}

// scoreSender calculates sender importance (0-30).
func scoreSender(sender string) (int, string) {
	weight, ok := senderWeights[sender]
	if !ok {
		weight = defaultSenderWeight
	}

	var reason string
	switch {
	case weight >= 27:
		reason = fmt.Sprintf("%s is C-suite/Board level - highest sender priority", sender)
	case weight >= 24:
		reason = fmt.Sprintf("%s is VP/Director level - high sender priority", sender)
	case weight >= 20:
		reason = fmt.Sprintf("%s is senior leadership - elevated sender priority", sender)
	default:
		reason = fmt.Sprintf("%s - standard sender priority", sender)
	}
	return weight, reason
}

// urgencyResponse is the expected structured LLM output for the AI factor.
type urgencyResponse struct {
	Score     int    `json:"ai_urgency_score"`
	Reasoning string `json:"reasoning"`
}

// scoreAIUrgency calculates the AI urgency factor (0-20). Any gateway
// failure falls back to the keyword scorer; this method never errors.
func (e *Engine) scoreAIUrgency(ctx context.Context, email *store.Email, useAI bool) (int, string) {
	if useAI && e.gateway != nil && e.gateway.IsAvailable() {
		prompt := renderUrgencyPrompt(email.Sender, email.Subject, email.Deadline, email.Preview)
		var resp urgencyResponse
		if err := e.gateway.GenerateStructured(ctx, prompt, &resp); err == nil {
			score := clamp(resp.Score, 0, 20)
			reasoning := resp.Reasoning
			if reasoning == "" {
				reasoning = "AI-assessed urgency"
			}
			return score, reasoning
		} else {
			slog.Warn("LLM urgency scoring failed, using keyword fallback", "error", err)
		}
	}
	return fallbackUrgency(email.Subject, email.Preview)
}

// keywordCategory is one additive signal of the fallback urgency scorer.
type keywordCategory struct {
	keywords []string
	points   int
	reason   string
}

var urgencyCategories = []keywordCategory{
	{[]string{"urgent", "asap", "critical", "immediately"}, 6, "urgency signals detected"},
	{[]string{"blocking", "blocked", "dependency", "waiting on"}, 4, "blocking issues mentioned"},
	{[]string{"board", "investor", "series", "funding"}, 3, "high-stakes business context"},
	{[]string{"review", "approval", "sign off", "decision"}, 2, "action/decision required"},
	{[]string{"reminder", "follow up", "pending"}, 2, "follow-up/reminder context"},
}

// fallbackUrgency is the deterministic keyword-additive scorer used when
// the LLM path is skipped or fails.
func fallbackUrgency(subject, preview string) (int, string) {
	text := strings.ToLower(subject + " " + preview)
	score := 10 // baseline
	var reasons []string

	for _, cat := range urgencyCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				score += cat.points
				reasons = append(reasons, cat.reason)
				break
			}
		}
	}

	if score > 20 {
		score = 20
	}
	if len(reasons) == 0 {
		return score, "Standard urgency level"
	}
	return score, strings.Join(reasons, "; ")
}

// ScoreAll scores every email in the store, persists each urgency, and
// returns the list ranked by total score descending (ties keep input
// order). useAI=false skips the LLM call entirely for fast bulk scoring.
func (e *Engine) ScoreAll(ctx context.Context, useAI bool) ([]RankedEmail, error) {
	emails, err := e.store.ListEmails(ctx, &store.FindEmail{})
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEmail, len(emails))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(timeout.MaxScoringConcurrency)
	for i, email := range emails {
		i, email := i, email
		g.Go(func() error {
			breakdown := e.score(gctx, email, useAI)
			urgency := int32(breakdown.TotalScore)
			if _, err := e.store.UpdateEmail(gctx, &store.UpdateEmail{ID: email.ID, Urgency: &urgency}); err != nil {
				return err
			}
			ranked[i] = RankedEmail{
				ID:        fmt.Sprintf("%d", email.ID),
				Sender:    email.Sender,
				Subject:   email.Subject,
				Deadline:  email.Deadline,
				Breakdown: breakdown,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// Explain returns the detailed breakdown for one email, or a NOT_FOUND
// error when the ID does not exist.
func (e *Engine) Explain(ctx context.Context, id int32) (*Explanation, error) {
	email, err := e.store.GetEmail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Explanation{
		ID:        fmt.Sprintf("%d", email.ID),
		Sender:    email.Sender,
		Subject:   email.Subject,
		Breakdown: e.Score(ctx, email),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
