package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation  = "operation"
	KeyStage      = "stage"
	KeyProvider   = "provider"
	KeyCategory   = "category"
	KeySenderHash = "sender_hash"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// WithStage returns a logger with the pipeline stage attribute set.
func WithStage(logger *slog.Logger, stage string) *slog.Logger {
	return logger.With(slog.String(KeyStage, stage))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Stage returns a slog attribute for the pipeline stage name.
func Stage(stage string) slog.Attr {
	return slog.String(KeyStage, stage)
}

// Provider returns a slog attribute for the inference provider name.
func Provider(name string) slog.Attr {
	return slog.String(KeyProvider, name)
}

// Category returns a slog attribute for a classification category.
func Category(category string) slog.Attr {
	return slog.String(KeyCategory, category)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email address
// for logging purposes. This allows correlation of log entries without
// exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "sender:" + hex.EncodeToString(hash[:8])
}

// SenderHash returns a slog attribute with the anonymized sender
// address.
func SenderHash(email string) slog.Attr {
	return slog.String(KeySenderHash, AnonymizeEmail(email))
}

// ExtractDomain extracts the domain part from an email address. This
// is useful for lower-cardinality logging where the full address would
// create too many unique values.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns a slog attribute for the email domain.
func Domain(email string) slog.Attr {
	return slog.String("sender_domain", ExtractDomain(email))
}
