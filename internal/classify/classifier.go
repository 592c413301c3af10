package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

const (
	// bodyDigestLimit bounds how much of the body goes into the
	// classification prompt.
	bodyDigestLimit = 1000

	classifyMaxTokens = 50
)

// Outcome describes how a category was decided.
type Outcome string

const (
	// OutcomePrimary means the primary provider produced a valid
	// category.
	OutcomePrimary Outcome = "primary"
	// OutcomeFallback means the fallback provider produced it after
	// the primary failed.
	OutcomeFallback Outcome = "fallback"
	// OutcomeDefault means both providers failed and the taxonomy's
	// terminal default was used.
	OutcomeDefault Outcome = "default"
)

// Result is the classification of one email.
type Result struct {
	Category category.Category
	Outcome  Outcome
	// Err carries the last provider failure when the outcome is
	// OutcomeDefault, so callers can report it.
	Err error
}

// Classifier assigns categories using a provider chain.
type Classifier struct {
	taxonomy *category.Taxonomy
	primary  llm.Provider
	fallback llm.Provider
	logger   *slog.Logger
}

// New creates a Classifier. fallback may be nil, in which case a
// primary failure goes straight to the default category.
func New(taxonomy *category.Taxonomy, primary, fallback llm.Provider, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		taxonomy: taxonomy,
		primary:  primary,
		fallback: fallback,
		logger:   logging.WithStage(logger, "classify"),
	}
}

// Classify assigns a category to the email. The returned category is
// always a member of the taxonomy; failures degrade to the taxonomy
// fallback and are surfaced through the Result.
func (c *Classifier) Classify(ctx context.Context, email *mail.Email) Result {
	prompt := c.buildPrompt(email)

	cat, err := c.ask(ctx, c.primary, prompt)
	if err == nil {
		return Result{Category: cat, Outcome: OutcomePrimary}
	}
	c.logger.Warn("primary provider failed, trying fallback",
		logging.Provider(c.primary.Name()),
		logging.Err(err))

	if c.fallback != nil {
		cat, fbErr := c.ask(ctx, c.fallback, prompt)
		if fbErr == nil {
			return Result{Category: cat, Outcome: OutcomeFallback}
		}
		err = fbErr
		c.logger.Warn("fallback provider failed",
			logging.Provider(c.fallback.Name()),
			logging.Err(err))
	}

	c.logger.Warn("could not classify email, using default category",
		slog.String("email_id", email.ID),
		logging.Category(c.taxonomy.Fallback.String()),
		logging.Err(err))
	return Result{Category: c.taxonomy.Fallback, Outcome: OutcomeDefault, Err: err}
}

// ask performs a single provider call and validates the returned
// token against the taxonomy.
func (c *Classifier) ask(ctx context.Context, provider llm.Provider, prompt string) (category.Category, error) {
	raw, err := provider.Complete(ctx, prompt, llm.Options{MaxTokens: classifyMaxTokens, Operation: "classify"})
	if err != nil {
		return "", err
	}
	cat, ok := c.taxonomy.Normalize(raw)
	if !ok {
		return "", &llm.ProviderError{
			Provider: provider.Name(),
			Kind:     llm.KindInvalidResponse,
			Err:      fmt.Errorf("unrecognized category token %q", strings.TrimSpace(raw)),
		}
	}
	return cat, nil
}

// buildPrompt renders a bounded digest of the email together with the
// taxonomy descriptions.
func (c *Classifier) buildPrompt(email *mail.Email) string {
	body := email.Body
	if len(body) > bodyDigestLimit {
		body = body[:bodyDigestLimit]
	}

	digest := fmt.Sprintf(`Subject: %s
From: %s
Date: %s
Snippet: %s

Body (first %d chars):
%s

Attachments: %s`,
		email.Subject, email.From, email.Date, email.Snippet,
		bodyDigestLimit, body,
		strings.Join(email.AttachmentNames(), ", "))

	return fmt.Sprintf(`You are an email categorization assistant. Categorize the following email into ONE of these categories:

%s

Email to categorize:
%s

Respond with ONLY the category name (e.g., "invoice" or "new_client_inquiry"). No explanations.`,
		c.taxonomy.PromptList(), digest)
}
