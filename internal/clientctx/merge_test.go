package clientctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxpilot/internal/mail"
)

var mergeNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func inquiryEmail() *mail.Email {
	return &mail.Email{
		ID:      "m1",
		Subject: "Need help with an online store",
		From:    "Ada Client <a@x.com>",
		Date:    "Mon, 15 Jan 2024 10:30:00 +0000",
		Body:    "We want a small web shop built by spring.",
	}
}

func followUpEmail() *mail.Email {
	return &mail.Email{
		ID:      "m2",
		Subject: "Re: Need help with an online store",
		From:    "Ada Client <a@x.com>",
		Date:    "Thu, 18 Jan 2024 09:00:00 +0000",
		Body:    "Budget approved, can we start next week?",
	}
}

func TestMergeFirstContact(t *testing.T) {
	delta := &Delta{
		InquiryType:    "web_development",
		Topic:          "Online store build",
		ProjectSummary: "Client wants a small web shop by spring.",
		KeyPoints:      []string{"deadline spring"},
		NewActionItems: []string{"Send proposal"},
		Urgency:        UrgencyHigh,
	}

	record := Merge(nil, inquiryEmail(), delta, mergeNow)

	assert.Equal(t, "a@x.com", record.ClientEmail)
	assert.Equal(t, "Ada Client", record.ClientName)
	assert.Equal(t, "Mon, 15 Jan 2024 10:30:00 +0000", record.FirstContact)
	assert.Equal(t, record.FirstContact, record.LastContact)
	assert.Equal(t, StatusActive, record.Status)
	assert.Equal(t, "web_development", record.InquiryType)

	require.Len(t, record.Communications, 1)
	assert.Equal(t, "m1", record.Communications[0].EmailID)
	assert.Equal(t, "Online store build", record.Communications[0].Topic)

	require.Len(t, record.ActionItems, 1)
	assert.Equal(t, "Send proposal", record.ActionItems[0].Description)
	assert.Equal(t, ActionPending, record.ActionItems[0].Status)
	assert.Equal(t, UrgencyHigh, record.ActionItems[0].Urgency)
}

func TestMergeFirstContactDefaults(t *testing.T) {
	// A degraded delta still produces a usable record.
	delta := &Delta{Topic: "Need help with an online store", Degraded: true, InquiryType: "general", Urgency: UrgencyMedium}

	record := Merge(nil, inquiryEmail(), delta, mergeNow)

	assert.Equal(t, "Need help with an online store", record.ProjectSummary)
	require.Len(t, record.ActionItems, 1)
	assert.Equal(t, "Respond to initial inquiry", record.ActionItems[0].Description)
	assert.Equal(t, UrgencyMedium, record.ActionItems[0].Urgency)
}

func TestMergeAppendsCommunication(t *testing.T) {
	first := Merge(nil, inquiryEmail(), &Delta{Topic: "Online store build"}, mergeNow)

	delta := &Delta{
		Topic:          "Kickoff scheduling",
		KeyPoints:      []string{"budget approved"},
		NewActionItems: []string{"Schedule kickoff call"},
		ProjectSummary: "Web shop build, budget approved, starting soon.",
	}
	updated := Merge(first, followUpEmail(), delta, mergeNow.Add(time.Hour))

	require.Len(t, updated.Communications, 2)
	assert.Equal(t, "m1", updated.Communications[0].EmailID)
	assert.Equal(t, "m2", updated.Communications[1].EmailID)
	assert.Equal(t, "Mon, 15 Jan 2024 10:30:00 +0000", updated.FirstContact)
	assert.Equal(t, "Thu, 18 Jan 2024 09:00:00 +0000", updated.LastContact)
	assert.Equal(t, "Web shop build, budget approved, starting soon.", updated.ProjectSummary)

	// The earlier entry is untouched and the input record is not
	// mutated.
	assert.Equal(t, "Online store build", updated.Communications[0].Topic)
	assert.Len(t, first.Communications, 1)
}

func TestMergePreservesPriorEntries(t *testing.T) {
	record := Merge(nil, inquiryEmail(), &Delta{Topic: "t1", KeyPoints: []string{"k1"}}, mergeNow)
	for i := 0; i < 5; i++ {
		record = Merge(record, followUpEmail(), &Delta{Topic: "follow-up"}, mergeNow)
	}

	require.Len(t, record.Communications, 6)
	assert.Equal(t, "t1", record.Communications[0].Topic)
	assert.Equal(t, []string{"k1"}, record.Communications[0].KeyPoints)
}

func TestMergeReactivatesDormantClient(t *testing.T) {
	record := Merge(nil, inquiryEmail(), &Delta{Topic: "t"}, mergeNow)
	record.Status = StatusDormant

	updated := Merge(record, followUpEmail(), &Delta{Topic: "back again"}, mergeNow)
	assert.Equal(t, StatusActive, updated.Status)
}

func TestMergeEmptyProjectSummaryKeepsExisting(t *testing.T) {
	record := Merge(nil, inquiryEmail(), &Delta{Topic: "t", ProjectSummary: "original summary"}, mergeNow)

	updated := Merge(record, followUpEmail(), &Delta{Topic: "follow-up"}, mergeNow)
	assert.Equal(t, "original summary", updated.ProjectSummary)
}
