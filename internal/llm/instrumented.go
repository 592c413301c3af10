package llm

import (
	"context"
	"time"
)

// CallRecorder receives one observation per provider call. It is
// satisfied by the instrumentation metrics recorder.
type CallRecorder interface {
	RecordProviderCall(ctx context.Context, provider, operation, status string, duration time.Duration)
}

// Instrument wraps provider so every Complete call is timed and
// reported to rec. A nil rec returns the provider unwrapped.
func Instrument(provider Provider, rec CallRecorder) Provider {
	if rec == nil {
		return provider
	}
	return &instrumentedProvider{inner: provider, recorder: rec}
}

type instrumentedProvider struct {
	inner    Provider
	recorder CallRecorder
}

// Name implements Provider.
func (p *instrumentedProvider) Name() string {
	return p.inner.Name()
}

// Complete implements Provider.
func (p *instrumentedProvider) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	operation := opts.Operation
	if operation == "" {
		operation = "complete"
	}

	start := time.Now()
	out, err := p.inner.Complete(ctx, prompt, opts)

	status := "success"
	if err != nil {
		status = "error"
	}
	p.recorder.RecordProviderCall(ctx, p.inner.Name(), operation, status, time.Since(start))
	return out, err
}
