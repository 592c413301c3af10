package mail

import (
	netmail "net/mail"
	"strings"
)

// Attachment describes a message attachment without its content.
type Attachment struct {
	Filename     string `json:"filename"`
	MimeType     string `json:"mimeType"`
	AttachmentID string `json:"attachmentId"`
	Size         int64  `json:"size"`
}

// Email is the immutable input record of the pipeline. Category is the
// only field added after fetch; nothing else is mutated once the email
// has been cached.
type Email struct {
	ID          string       `json:"id"`
	ThreadID    string       `json:"threadId"`
	LabelIDs    []string     `json:"labelIds"`
	Snippet     string       `json:"snippet"`
	Subject     string       `json:"subject"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Date        string       `json:"date"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments"`
	Category    string       `json:"category,omitempty"`
}

// AttachmentNames returns the filenames of all attachments.
func (e *Email) AttachmentNames() []string {
	names := make([]string, 0, len(e.Attachments))
	for _, a := range e.Attachments {
		names = append(names, a.Filename)
	}
	return names
}

// PDFAttachments returns the attachments whose filename ends in .pdf.
func (e *Email) PDFAttachments() []Attachment {
	var pdfs []Attachment
	for _, a := range e.Attachments {
		if strings.HasSuffix(strings.ToLower(a.Filename), ".pdf") {
			pdfs = append(pdfs, a)
		}
	}
	return pdfs
}

// SenderAddress extracts the bare address from a From header value such
// as `John Doe <john@example.com>` and lower-cases it. The result is
// the key for per-sender context records. Headers that are not valid
// RFC 5322 fall back to scanning for an angle-bracketed address.
func SenderAddress(from string) string {
	if addr, err := netmail.ParseAddress(from); err == nil {
		return strings.ToLower(addr.Address)
	}
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			return strings.ToLower(strings.TrimSpace(from[start+1 : start+end]))
		}
	}
	return strings.ToLower(strings.TrimSpace(from))
}

// SenderName extracts the display name from a From header value.
// Returns "Unknown" when the header carries no display name.
func SenderName(from string) string {
	if addr, err := netmail.ParseAddress(from); err == nil {
		if addr.Name != "" {
			return addr.Name
		}
		return "Unknown"
	}
	if idx := strings.Index(from, "<"); idx >= 0 {
		if name := strings.Trim(strings.TrimSpace(from[:idx]), `"`); name != "" {
			return name
		}
	}
	return "Unknown"
}
