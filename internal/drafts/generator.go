package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/inboxpilot/internal/clientctx"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

const (
	draftBodyLimit = 1500
	draftMaxTokens = 700
)

// Draft is one generated reply, stored for human review.
type Draft struct {
	EmailID     string    `json:"emailId"`
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Summary aggregates one draft generation run.
type Summary struct {
	Generated int      `json:"generated"`
	Errors    int      `json:"errors"`
	EmailIDs  []string `json:"emailIds"`
}

// Generator produces reply drafts via an inference provider.
type Generator struct {
	provider llm.Provider
	contexts clientctx.Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewGenerator creates a Generator. contexts may be nil when no client
// records are available; drafts then rely on the email alone.
func NewGenerator(provider llm.Provider, contexts clientctx.Store, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		provider: provider,
		contexts: contexts,
		logger:   logging.WithStage(logger, "drafts"),
		now:      time.Now,
	}
}

// Generate produces a reply draft for a client email.
func (g *Generator) Generate(ctx context.Context, email *mail.Email) (*Draft, error) {
	record := g.lookupContext(email)

	var prompt string
	switch email.Category {
	case "new_client_inquiry":
		prompt = g.inquiryReplyPrompt(email)
	case "existing_client":
		prompt = g.clientReplyPrompt(email, record)
	default:
		return nil, fmt.Errorf("no draft template for category %q", email.Category)
	}

	body, err := g.provider.Complete(ctx, prompt, llm.Options{MaxTokens: draftMaxTokens, Operation: "draft"})
	if err != nil {
		return nil, fmt.Errorf("drafting reply for %s: %w", email.ID, err)
	}

	draft := &Draft{
		EmailID:     email.ID,
		To:          email.From,
		Subject:     replySubject(email.Subject),
		Body:        strings.TrimSpace(body),
		Category:    email.Category,
		GeneratedAt: g.now(),
	}

	g.logger.Info("draft generated",
		slog.String("email_id", email.ID),
		logging.Category(email.Category),
		logging.SenderHash(email.From))
	return draft, nil
}

func (g *Generator) lookupContext(email *mail.Email) *clientctx.ClientContext {
	if g.contexts == nil {
		return nil
	}
	record, found, err := g.contexts.Get(mail.SenderAddress(email.From))
	if err != nil || !found {
		return nil
	}
	return record
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

func truncate(body string) string {
	if len(body) > draftBodyLimit {
		return body[:draftBodyLimit]
	}
	return body
}

func (g *Generator) inquiryReplyPrompt(email *mail.Email) string {
	return fmt.Sprintf(`Write a professional reply to this new client inquiry.

Inquiry:
Subject: %s
From: %s

Body:
%s

Guidelines:
- Thank them for reaching out and acknowledge their request specifically
- Ask for any details that are clearly missing (scope, timeline, budget)
- Suggest a short call as the next step
- Warm, professional tone; no placeholder text like [NAME]
- Sign off as "Best regards" without a name

Respond with ONLY the reply body. No subject line, no explanations.`,
		email.Subject, email.From, truncate(email.Body))
}

func (g *Generator) clientReplyPrompt(email *mail.Email, record *clientctx.ClientContext) string {
	var state strings.Builder
	if record != nil {
		fmt.Fprintf(&state, "Project summary: %s\n", record.ProjectSummary)
		if recent := record.RecentCommunications(3); len(recent) > 0 {
			state.WriteString("Recent communications:\n")
			for _, comm := range recent {
				fmt.Fprintf(&state, "- %s: %s (%s)\n", comm.Date, comm.Subject, comm.Topic)
			}
		}
		if open := record.OpenActionItems(); len(open) > 0 {
			state.WriteString("Open action items on our side:\n")
			for _, item := range open {
				fmt.Fprintf(&state, "- %s\n", item.Description)
			}
		}
	} else {
		state.WriteString("No prior context on record.\n")
	}

	return fmt.Sprintf(`Write a professional reply to an email from a client we are already working with.

What we know about the engagement:
%s
New email:
Subject: %s
From: %s

Body:
%s

Guidelines:
- Address their points directly, referencing the engagement where relevant
- Confirm any commitments from the open action items that their email touches
- Warm, professional tone; no placeholder text like [NAME]
- Sign off as "Best regards" without a name

Respond with ONLY the reply body. No subject line, no explanations.`,
		state.String(), email.Subject, email.From, truncate(email.Body))
}
