// Package instrumentation provides OpenTelemetry metrics for the
// pipeline.
//
// # Metrics
//
// Inference provider metrics:
//   - llm_provider_calls_total: Counter of provider calls by provider, operation, status
//   - llm_provider_call_duration_seconds: Histogram of provider call durations
//
// Pipeline metrics:
//   - pipeline_stage_duration_seconds: Histogram of stage durations by stage and status
//   - emails_processed_total: Counter of emails per stage and status
//   - classifications_total: Counter of classifications by category and outcome
//   - labels_applied_total: Counter of Gmail labels applied by category
//   - invoices_processed_total: Counter of invoice outcomes (archived, review, error)
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for metrics
//   - OTEL_SERVICE_NAME: Service name (default: inboxpilot)
//
// The prometheus exporter is useful together with the run command's
// --metrics-addr flag, which serves /metrics for the duration of a run.
package instrumentation
