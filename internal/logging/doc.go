// Package logging provides structured logging helpers built on
// log/slog.
//
// It defines canonical attribute keys (stage, provider, category,
// status) so log entries are consistent across pipeline stages, and
// PII-safe helpers that hash sender addresses before they reach the
// log output.
package logging
