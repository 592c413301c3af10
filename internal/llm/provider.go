package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures for the fallback chain.
type ErrorKind string

const (
	// KindTransient covers timeouts, connection failures and 5xx
	// responses. Transient errors trigger the fallback provider and
	// are never fatal by themselves.
	KindTransient ErrorKind = "transient"

	// KindInvalidResponse covers structurally unusable output, such
	// as an empty completion.
	KindInvalidResponse ErrorKind = "invalid_response"
)

// ProviderError is the tagged failure type every provider call site
// operates on, instead of ad hoc string checks on error text.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError unwraps err into a *ProviderError if possible.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Options carries per-call generation parameters.
type Options struct {
	MaxTokens   int
	Temperature float32

	// Operation names the pipeline operation issuing the call
	// (classify, extract, synthesize, draft) for metrics attribution.
	Operation string
}

// Provider is the minimal completion interface the pipeline depends
// on. Implementations must honor ctx cancellation and deadlines; a
// deadline hit surfaces as a transient ProviderError.
type Provider interface {
	// Name identifies the provider in logs and reports.
	Name() string
	// Complete sends a single-turn prompt and returns the raw
	// completion text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
