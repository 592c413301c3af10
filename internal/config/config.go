package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for options that are not set via flags or environment.
const (
	DefaultWorkDir         = ".tmp"
	DefaultContextDir      = "client_contexts"
	DefaultInvoiceDir      = "invoices"
	DefaultReviewThreshold = 0.7
	DefaultLLMTimeout      = 60 * time.Second
)

// Config holds the runtime configuration for the pipeline. Values come
// from environment variables with flag overrides applied by the cmd
// layer.
type Config struct {
	// Primary provider (OpenAI) credentials.
	OpenAIAPIKey string
	OpenAIModel  string

	// Fallback provider (Anthropic) credentials.
	AnthropicAPIKey string
	AnthropicModel  string

	// WorkDir is where stage artifacts (caches, reports) are written.
	WorkDir string

	// ContextDir is the root of the per-sender context records.
	ContextDir string

	// InvoiceDir is the document source/target directory for invoice
	// PDFs.
	InvoiceDir string

	// ReviewThreshold routes extraction results below it into the
	// manual review set.
	ReviewThreshold float64

	// LLMTimeout bounds every single provider call.
	LLMTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying
// defaults for anything unset. Invalid numeric values are an error
// rather than a silent fallback.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("CLAUDE_MODEL"),
		WorkDir:         envOrDefault("WORK_DIR", DefaultWorkDir),
		ContextDir:      envOrDefault("CONTEXT_DIR", DefaultContextDir),
		InvoiceDir:      envOrDefault("INVOICE_DIR", DefaultInvoiceDir),
		ReviewThreshold: DefaultReviewThreshold,
		LLMTimeout:      DefaultLLMTimeout,
	}

	if raw := os.Getenv("REVIEW_THRESHOLD"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid REVIEW_THRESHOLD %q: %w", raw, err)
		}
		if threshold < 0 || threshold > 1 {
			return nil, fmt.Errorf("REVIEW_THRESHOLD %v out of range [0,1]", threshold)
		}
		cfg.ReviewThreshold = threshold
	}

	if raw := os.Getenv("LLM_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", raw, err)
		}
		cfg.LLMTimeout = timeout
	}

	return cfg, nil
}

// HasOpenAI reports whether OpenAI credentials are configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasAnthropic reports whether Anthropic credentials are configured.
func (c *Config) HasAnthropic() bool {
	return c.AnthropicAPIKey != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
