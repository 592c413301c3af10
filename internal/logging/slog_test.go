package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular address", email: "user@example.com"},
		{name: "another address", email: "other@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnonymizeEmail(tt.email)
			assert.True(t, strings.HasPrefix(got, "sender:"))
			assert.NotContains(t, got, tt.email)
			// Stable for correlation across entries.
			assert.Equal(t, got, AnonymizeEmail(tt.email))
		})
	}

	assert.Equal(t, "", AnonymizeEmail(""))
	assert.NotEqual(t, AnonymizeEmail("a@x.com"), AnonymizeEmail("b@x.com"))
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "simple", email: "user@example.com", expected: "example.com"},
		{name: "no at sign", email: "userexample.com", expected: ""},
		{name: "two at signs", email: "a@b@c", expected: ""},
		{name: "empty", email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDomain(tt.email))
		})
	}
}

func TestErrAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("with nil error", Err(nil))
	assert.NotContains(t, buf.String(), "error=")

	buf.Reset()
	logger.Info("with error", Err(assert.AnError))
	assert.Contains(t, buf.String(), "error=")
}

func TestWithStage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithStage(logger, "classify").Info("processing")
	assert.Contains(t, buf.String(), "stage=classify")
}
