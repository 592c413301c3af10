package invoices

import (
	"strings"

	"github.com/teemow/inboxpilot/internal/mail"
)

// invoiceKeywords mark notification emails whose actual invoice sits
// behind a vendor dashboard.
var invoiceKeywords = []string{
	"invoice",
	"bill",
	"payment",
	"receipt",
	"statement",
	"your order",
}

// billingSenderPrefixes are local parts typical for automated billing
// senders.
var billingSenderPrefixes = []string{
	"billing@",
	"accounting@",
	"invoices@",
	"invoice@",
	"payments@",
	"receipts@",
}

// IsDashboardInvoice reports whether an invoice email without a PDF
// attachment looks like a dashboard notification worth a manual
// download, as opposed to a miscategorization.
func IsDashboardInvoice(email *mail.Email) bool {
	if len(email.PDFAttachments()) > 0 {
		return false
	}

	subject := strings.ToLower(email.Subject)
	for _, kw := range invoiceKeywords {
		if strings.Contains(subject, kw) {
			return true
		}
	}

	from := strings.ToLower(mail.SenderAddress(email.From))
	for _, prefix := range billingSenderPrefixes {
		if strings.HasPrefix(from, prefix) {
			return true
		}
	}

	return false
}
