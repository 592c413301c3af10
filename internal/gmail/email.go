package gmail

import (
	"encoding/base64"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/inboxpilot/internal/mail"
)

// ToEmail converts a full Gmail message into the internal email record.
func ToEmail(msg *gmail.Message) *mail.Email {
	return &mail.Email{
		ID:          msg.Id,
		ThreadID:    msg.ThreadId,
		LabelIDs:    msg.LabelIds,
		Snippet:     msg.Snippet,
		Subject:     HeaderValue(msg, "Subject"),
		From:        HeaderValue(msg, "From"),
		To:          HeaderValue(msg, "To"),
		Date:        HeaderValue(msg, "Date"),
		Body:        MessageBody(msg),
		Attachments: messageAttachments(msg),
	}
}

// HeaderValue extracts a header value from a Gmail message.
func HeaderValue(m *gmail.Message, header string) string {
	if m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return ""
}

// MessageBody extracts the plain-text body of a message, falling back
// to HTML when no text part exists. Returns "" when the message has no
// decodable body.
func MessageBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if body := findBody(msg.Payload, "text/plain"); body != "" {
		return body
	}
	return findBody(msg.Payload, "text/html")
}

func findBody(payload *gmail.MessagePart, mimeType string) string {
	var data string
	walkParts(payload, func(part *gmail.MessagePart) {
		if data == "" && part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
			data = part.Body.Data
		}
	})
	if data == "" {
		return ""
	}
	return decodeBase64(data)
}

// decodeBase64 decodes Gmail body data. The API uses RFC 4648 base64url
// encoding; some messages carry standard base64.
func decodeBase64(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

func messageAttachments(msg *gmail.Message) []mail.Attachment {
	var attachments []mail.Attachment
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			attachments = append(attachments, mail.Attachment{
				Filename:     part.Filename,
				MimeType:     part.MimeType,
				AttachmentID: part.Body.AttachmentId,
				Size:         part.Body.Size,
			})
		}
	})
	return attachments
}

// walkParts recursively walks through message parts.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
