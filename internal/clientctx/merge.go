package clientctx

import (
	"time"

	"github.com/teemow/inboxpilot/internal/mail"
)

// Merge folds a delta into the client record, creating the record on
// first contact. The communication log is append-only and lastContact
// always advances to the incoming email's date. existing is not
// mutated; the returned record is a new value.
func Merge(existing *ClientContext, email *mail.Email, delta *Delta, now time.Time) *ClientContext {
	if existing == nil {
		return newRecord(email, delta, now)
	}

	record := existing.Clone()
	record.LastContact = email.Date
	record.UpdatedAt = now
	if record.Status == StatusDormant {
		record.Status = StatusActive
	}
	if delta.ProjectSummary != "" {
		record.ProjectSummary = delta.ProjectSummary
	}

	record.Communications = append(record.Communications, Communication{
		EmailID:   email.ID,
		Date:      email.Date,
		Subject:   email.Subject,
		Topic:     delta.Topic,
		KeyPoints: delta.KeyPoints,
	})

	urgency := delta.Urgency
	if urgency == "" {
		urgency = UrgencyMedium
	}
	for _, desc := range delta.NewActionItems {
		record.ActionItems = append(record.ActionItems, ActionItem{
			Description: desc,
			Status:      ActionPending,
			Urgency:     urgency,
			Created:     now,
		})
	}

	return record
}

// newRecord builds the initial record for a first contact.
func newRecord(email *mail.Email, delta *Delta, now time.Time) *ClientContext {
	summary := delta.ProjectSummary
	if summary == "" {
		summary = email.Subject
	}
	urgency := delta.Urgency
	if urgency == "" {
		urgency = UrgencyMedium
	}

	record := &ClientContext{
		ClientEmail:    mail.SenderAddress(email.From),
		ClientName:     mail.SenderName(email.From),
		FirstContact:   email.Date,
		LastContact:    email.Date,
		ProjectSummary: summary,
		InquiryType:    delta.InquiryType,
		Status:         StatusActive,
		Communications: []Communication{{
			EmailID:   email.ID,
			Date:      email.Date,
			Subject:   email.Subject,
			Topic:     delta.Topic,
			KeyPoints: delta.KeyPoints,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	actionItems := delta.NewActionItems
	if len(actionItems) == 0 {
		actionItems = []string{"Respond to initial inquiry"}
	}
	for _, desc := range actionItems {
		record.ActionItems = append(record.ActionItems, ActionItem{
			Description: desc,
			Status:      ActionPending,
			Urgency:     urgency,
			Created:     now,
		})
	}

	return record
}
