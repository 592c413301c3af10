package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSenderAddress(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		expected string
	}{
		{
			name:     "display name with address",
			from:     "John Doe <john@example.com>",
			expected: "john@example.com",
		},
		{
			name:     "bare address",
			from:     "jane@example.com",
			expected: "jane@example.com",
		},
		{
			name:     "mixed case is lowered",
			from:     "Jane Roe <Jane.Roe@Example.COM>",
			expected: "jane.roe@example.com",
		},
		{
			name:     "quoted display name",
			from:     `"Billing, ACME" <billing@acme.io>`,
			expected: "billing@acme.io",
		},
		{
			name:     "whitespace around bare address",
			from:     "  someone@host.org  ",
			expected: "someone@host.org",
		},
		{
			name:     "empty",
			from:     "",
			expected: "",
		},
		{
			name:     "malformed header falls back to bracket scan",
			from:     "Billing; Dept <Billing@ACME.io>",
			expected: "billing@acme.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SenderAddress(tt.from))
		})
	}
}

func TestSenderName(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		expected string
	}{
		{
			name:     "display name",
			from:     "John Doe <john@example.com>",
			expected: "John Doe",
		},
		{
			name:     "quoted display name",
			from:     `"John Doe" <john@example.com>`,
			expected: "John Doe",
		},
		{
			name:     "bare address has no name",
			from:     "john@example.com",
			expected: "Unknown",
		},
		{
			name:     "empty name before bracket",
			from:     "<john@example.com>",
			expected: "Unknown",
		},
		{
			name:     "malformed header falls back to bracket scan",
			from:     "Billing; Dept <billing@acme.io>",
			expected: "Billing; Dept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SenderName(tt.from))
		})
	}
}

func TestPDFAttachments(t *testing.T) {
	e := &Email{
		Attachments: []Attachment{
			{Filename: "invoice.pdf", AttachmentID: "a1"},
			{Filename: "logo.png", AttachmentID: "a2"},
			{Filename: "RECEIPT.PDF", AttachmentID: "a3"},
		},
	}

	pdfs := e.PDFAttachments()
	assert.Len(t, pdfs, 2)
	assert.Equal(t, "invoice.pdf", pdfs[0].Filename)
	assert.Equal(t, "RECEIPT.PDF", pdfs[1].Filename)

	assert.Equal(t, []string{"invoice.pdf", "logo.png", "RECEIPT.PDF"}, e.AttachmentNames())
}
