package clientctx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

const (
	synthesisBodyLimit = 1500
	synthesisMaxTokens = 500

	// recentWindow is how many past communications the update prompt
	// shows the model.
	recentWindow = 3
)

// Delta is the structured distillation of one email, produced by the
// model or degraded to envelope facts when synthesis fails.
type Delta struct {
	InquiryType    string   `json:"inquiry_type,omitempty"`
	Topic          string   `json:"topic"`
	ProjectSummary string   `json:"project_summary,omitempty"`
	KeyPoints      []string `json:"key_points"`
	NewActionItems []string `json:"new_action_items"`
	Urgency        string   `json:"urgency,omitempty"`

	// Degraded is set when the provider call or parse failed and the
	// delta holds only envelope facts.
	Degraded bool `json:"-"`
}

// Synthesizer distills emails into deltas using an inference provider.
type Synthesizer struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewSynthesizer creates a Synthesizer. provider may be nil, in which
// case every delta is the envelope-only fallback.
func NewSynthesizer(provider llm.Provider, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		provider: provider,
		logger:   logging.WithStage(logger, "contexts"),
	}
}

// Synthesize produces a delta for the email. existing is nil for a
// first contact. Synthesis never fails: on any provider or parse error
// the returned delta carries envelope facts and is marked Degraded.
func (s *Synthesizer) Synthesize(ctx context.Context, email *mail.Email, existing *ClientContext) *Delta {
	if s.provider == nil {
		return s.envelopeDelta(email, existing)
	}

	var prompt string
	if existing == nil {
		prompt = s.inquiryPrompt(email)
	} else {
		prompt = s.updatePrompt(email, existing)
	}

	raw, err := s.provider.Complete(ctx, prompt, llm.Options{MaxTokens: synthesisMaxTokens, Operation: "synthesize"})
	if err != nil {
		s.logger.Warn("context synthesis failed, recording envelope only",
			logging.Provider(s.provider.Name()),
			logging.SenderHash(email.From),
			logging.Err(err))
		return s.envelopeDelta(email, existing)
	}

	var delta Delta
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &delta); err != nil {
		s.logger.Warn("context synthesis returned unparseable output, recording envelope only",
			logging.Provider(s.provider.Name()),
			logging.SenderHash(email.From),
			logging.Err(err))
		return s.envelopeDelta(email, existing)
	}

	if delta.Topic == "" {
		delta.Topic = email.Subject
	}
	return &delta
}

// envelopeDelta builds the degraded delta from header facts alone.
func (s *Synthesizer) envelopeDelta(email *mail.Email, existing *ClientContext) *Delta {
	topic := email.Subject
	if topic == "" {
		topic = "(no subject)"
	}
	delta := &Delta{Topic: topic, Degraded: true}
	if existing == nil {
		delta.InquiryType = "general"
		delta.Urgency = UrgencyMedium
	}
	return delta
}

func truncateBody(body string) string {
	if len(body) > synthesisBodyLimit {
		return body[:synthesisBodyLimit]
	}
	return body
}

// inquiryPrompt asks the model to analyze a first contact.
func (s *Synthesizer) inquiryPrompt(email *mail.Email) string {
	return fmt.Sprintf(`Analyze this new client inquiry and extract structured information.

Email:
Subject: %s
From: %s
Date: %s

Body:
%s

Respond with ONLY a JSON object (no markdown, no explanations) with these fields:
- inquiry_type: short label for the kind of inquiry (e.g. "web_development", "consulting", "general")
- topic: one-line topic of this email
- project_summary: 1-2 sentence summary of what the client wants
- key_points: array of the important points from the email
- new_action_items: array of concrete follow-ups this email requires
- urgency: "high", "medium" or "low"`,
		email.Subject, email.From, email.Date, truncateBody(email.Body))
}

// updatePrompt shows the model the prior project state and the new
// email so the delta stays consistent with the record.
func (s *Synthesizer) updatePrompt(email *mail.Email, existing *ClientContext) string {
	var prior strings.Builder
	fmt.Fprintf(&prior, "Project summary: %s\n", existing.ProjectSummary)
	fmt.Fprintf(&prior, "Last contact: %s\n", existing.LastContact)

	recent := existing.RecentCommunications(recentWindow)
	if len(recent) > 0 {
		prior.WriteString("Recent communications:\n")
		for _, comm := range recent {
			fmt.Fprintf(&prior, "- %s: %s (%s)\n", comm.Date, comm.Subject, comm.Topic)
		}
	}

	open := existing.OpenActionItems()
	if len(open) > 0 {
		prior.WriteString("Open action items:\n")
		for _, item := range open {
			fmt.Fprintf(&prior, "- [%s] %s\n", item.Urgency, item.Description)
		}
	}

	return fmt.Sprintf(`A client we are already working with sent a new email. Update our understanding of the engagement.

Current state:
%s
New email:
Subject: %s
Date: %s

Body:
%s

Respond with ONLY a JSON object (no markdown, no explanations) with these fields:
- topic: one-line topic of this email
- key_points: array of the important points from the email
- new_action_items: array of concrete follow-ups this email requires (empty array if none)
- project_summary: the updated 1-2 sentence project summary`,
		prior.String(), email.Subject, email.Date, truncateBody(email.Body))
}
