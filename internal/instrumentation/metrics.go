package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrProvider  = "provider"
	attrOperation = "operation"
	attrStatus    = "status"
	attrStage     = "stage"
	attrCategory  = "category"
	attrOutcome   = "outcome"
)

// Metrics provides methods for recording pipeline metrics. The zero
// value is a no-op recorder.
type Metrics struct {
	providerCallsTotal   metric.Int64Counter
	providerCallDuration metric.Float64Histogram

	stageDuration        metric.Float64Histogram
	emailsProcessedTotal metric.Int64Counter
	classificationsTotal metric.Int64Counter
	labelsAppliedTotal   metric.Int64Counter
	invoicesTotal        metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.providerCallsTotal, err = meter.Int64Counter(
		"llm_provider_calls_total",
		metric.WithDescription("Total number of inference provider calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm_provider_calls_total counter: %w", err)
	}

	m.providerCallDuration, err = meter.Float64Histogram(
		"llm_provider_call_duration_seconds",
		metric.WithDescription("Inference provider call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm_provider_call_duration_seconds histogram: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"pipeline_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 5.0, 15.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_stage_duration_seconds histogram: %w", err)
	}

	m.emailsProcessedTotal, err = meter.Int64Counter(
		"emails_processed_total",
		metric.WithDescription("Total number of emails processed per stage"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create emails_processed_total counter: %w", err)
	}

	m.classificationsTotal, err = meter.Int64Counter(
		"classifications_total",
		metric.WithDescription("Total number of classifications by category and outcome"),
		metric.WithUnit("{classification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifications_total counter: %w", err)
	}

	m.labelsAppliedTotal, err = meter.Int64Counter(
		"labels_applied_total",
		metric.WithDescription("Total number of Gmail labels applied"),
		metric.WithUnit("{label}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create labels_applied_total counter: %w", err)
	}

	m.invoicesTotal, err = meter.Int64Counter(
		"invoices_processed_total",
		metric.WithDescription("Total number of invoice outcomes"),
		metric.WithUnit("{invoice}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoices_processed_total counter: %w", err)
	}

	return m, nil
}

// RecordProviderCall records one inference provider call.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider, operation, status string, duration time.Duration) {
	if m == nil || m.providerCallsTotal == nil || m.providerCallDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrProvider, provider),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.providerCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.providerCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordStage records one completed pipeline stage.
func (m *Metrics) RecordStage(ctx context.Context, stage, status string, duration time.Duration) {
	if m == nil || m.stageDuration == nil {
		return
	}

	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrStage, stage),
		attribute.String(attrStatus, status),
	))
}

// RecordEmailsProcessed counts emails handled by a stage.
func (m *Metrics) RecordEmailsProcessed(ctx context.Context, stage, status string, count int) {
	if m == nil || m.emailsProcessedTotal == nil {
		return
	}

	m.emailsProcessedTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrStage, stage),
		attribute.String(attrStatus, status),
	))
}

// RecordClassification records one classification by category and
// outcome (primary, fallback, default).
func (m *Metrics) RecordClassification(ctx context.Context, cat, outcome string) {
	if m == nil || m.classificationsTotal == nil {
		return
	}

	m.classificationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrCategory, cat),
		attribute.String(attrOutcome, outcome),
	))
}

// RecordLabelsApplied counts applied labels per category.
func (m *Metrics) RecordLabelsApplied(ctx context.Context, cat string, count int) {
	if m == nil || m.labelsAppliedTotal == nil {
		return
	}

	m.labelsAppliedTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrCategory, cat),
	))
}

// RecordInvoiceOutcome counts invoice processing outcomes (archived,
// review, error).
func (m *Metrics) RecordInvoiceOutcome(ctx context.Context, outcome string, count int) {
	if m == nil || m.invoicesTotal == nil {
		return
	}

	m.invoicesTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrOutcome, outcome),
	))
}
