package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.Nil(t, provider.PrometheusHandler())
	require.NotNil(t, provider.Metrics())

	// No-op recorder must be safe to use.
	provider.Metrics().RecordStage(context.Background(), "classify", StatusSuccess, time.Second)
	provider.Metrics().RecordProviderCall(context.Background(), "openai", "classify", StatusError, time.Second)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		Enabled:         true,
		ServiceName:     "inboxpilot-test",
		ServiceVersion:  "test",
		MetricsExporter: ExporterPrometheus,
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.True(t, provider.Enabled())
	assert.NotNil(t, provider.PrometheusHandler())

	metrics := provider.Metrics()
	require.NotNil(t, metrics)
	metrics.RecordClassification(context.Background(), "invoice", "primary")
	metrics.RecordLabelsApplied(context.Background(), "invoice", 3)
	metrics.RecordInvoiceOutcome(context.Background(), InvoiceArchived, 2)
	metrics.RecordEmailsProcessed(context.Background(), "fetch", StatusSuccess, 10)
}

func TestNewProviderInvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:         true,
		MetricsExporter: "graphite",
	})
	assert.Error(t, err)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordStage(context.Background(), "classify", StatusSuccess, time.Second)
	m.RecordProviderCall(context.Background(), "openai", "classify", StatusSuccess, time.Second)
	m.RecordClassification(context.Background(), "other", "default")
	m.RecordLabelsApplied(context.Background(), "other", 1)
	m.RecordInvoiceOutcome(context.Background(), InvoiceError, 1)
	m.RecordEmailsProcessed(context.Background(), "fetch", StatusError, 0)
}
