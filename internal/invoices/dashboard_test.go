package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/inboxpilot/internal/mail"
)

func TestIsDashboardInvoice(t *testing.T) {
	tests := []struct {
		name     string
		email    *mail.Email
		expected bool
	}{
		{
			name:     "invoice keyword in subject",
			email:    &mail.Email{Subject: "Your invoice for January", From: "news@vendor.io"},
			expected: true,
		},
		{
			name:     "receipt keyword",
			email:    &mail.Email{Subject: "Receipt for your purchase", From: "shop@vendor.io"},
			expected: true,
		},
		{
			name:     "billing sender without keyword",
			email:    &mail.Email{Subject: "January summary", From: "billing@vendor.io"},
			expected: true,
		},
		{
			name:     "accounting sender with display name",
			email:    &mail.Email{Subject: "Monthly numbers", From: "Vendor <accounting@vendor.io>"},
			expected: true,
		},
		{
			name:     "neither keyword nor billing sender",
			email:    &mail.Email{Subject: "Team offsite", From: "hr@vendor.io"},
			expected: false,
		},
		{
			name: "pdf attached means not a dashboard notification",
			email: &mail.Email{
				Subject:     "Your invoice",
				From:        "billing@vendor.io",
				Attachments: []mail.Attachment{{Filename: "invoice.pdf", AttachmentID: "a"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDashboardInvoice(tt.email))
		})
	}
}
