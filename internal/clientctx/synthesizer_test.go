package clientctx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/mail"
)

type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, prompt string, _ llm.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSynthesizeNewInquiry(t *testing.T) {
	provider := &fakeProvider{response: `{
		"inquiry_type": "web_development",
		"topic": "Online store build",
		"project_summary": "Client wants a web shop.",
		"key_points": ["deadline spring"],
		"new_action_items": ["Send proposal"],
		"urgency": "high"
	}`}
	synth := NewSynthesizer(provider, nil)

	delta := synth.Synthesize(context.Background(), inquiryEmail(), nil)

	assert.False(t, delta.Degraded)
	assert.Equal(t, "web_development", delta.InquiryType)
	assert.Equal(t, "high", delta.Urgency)
	assert.Equal(t, []string{"Send proposal"}, delta.NewActionItems)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "new client inquiry")
	assert.Contains(t, provider.prompts[0], "Need help with an online store")
}

func TestSynthesizeUpdateShowsPriorState(t *testing.T) {
	provider := &fakeProvider{response: `{"topic": "Kickoff", "key_points": [], "new_action_items": []}`}
	synth := NewSynthesizer(provider, nil)

	existing := Merge(nil, inquiryEmail(), &Delta{
		Topic:          "intro",
		ProjectSummary: "Web shop build.",
		NewActionItems: []string{"Send proposal"},
	}, mergeNow)

	synth.Synthesize(context.Background(), followUpEmail(), existing)

	require.Len(t, provider.prompts, 1)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Web shop build.")
	assert.Contains(t, prompt, "Send proposal")
	assert.Contains(t, prompt, "Budget approved")
}

func TestSynthesizeUpdateLimitsRecentCommunications(t *testing.T) {
	provider := &fakeProvider{response: `{"topic": "t"}`}
	synth := NewSynthesizer(provider, nil)

	existing := Merge(nil, inquiryEmail(), &Delta{Topic: "oldest-topic"}, mergeNow)
	for i := 0; i < 4; i++ {
		existing = Merge(existing, followUpEmail(), &Delta{Topic: "recent"}, mergeNow)
	}

	synth.Synthesize(context.Background(), followUpEmail(), existing)

	require.Len(t, provider.prompts, 1)
	assert.NotContains(t, provider.prompts[0], "oldest-topic")
}

func TestSynthesizeDegradesOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: &llm.ProviderError{Provider: "fake", Kind: llm.KindTransient, Err: errors.New("timeout")}}
	synth := NewSynthesizer(provider, nil)

	delta := synth.Synthesize(context.Background(), inquiryEmail(), nil)

	assert.True(t, delta.Degraded)
	assert.Equal(t, "Need help with an online store", delta.Topic)
	assert.Equal(t, "general", delta.InquiryType)
}

func TestSynthesizeDegradesOnUnparseableOutput(t *testing.T) {
	provider := &fakeProvider{response: "I cannot help with that."}
	synth := NewSynthesizer(provider, nil)

	delta := synth.Synthesize(context.Background(), inquiryEmail(), nil)
	assert.True(t, delta.Degraded)
}

func TestSynthesizeStripsFences(t *testing.T) {
	provider := &fakeProvider{response: "```json\n{\"topic\": \"fenced\"}\n```"}
	synth := NewSynthesizer(provider, nil)

	delta := synth.Synthesize(context.Background(), inquiryEmail(), nil)
	assert.False(t, delta.Degraded)
	assert.Equal(t, "fenced", delta.Topic)
}

func TestUpdaterTwoEmailFlow(t *testing.T) {
	store := NewMemStore()
	provider := &fakeProvider{response: `{"topic": "t", "project_summary": "Web shop build."}`}
	updater := NewUpdater(store, NewSynthesizer(provider, nil), nil)
	updater.now = func() time.Time { return mergeNow }

	record, created, err := updater.Process(context.Background(), inquiryEmail())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, record.Communications, 1)

	record, created, err = updater.Process(context.Background(), followUpEmail())
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, record.Communications, 2)
	assert.Equal(t, "Mon, 15 Jan 2024 10:30:00 +0000", record.FirstContact)
	assert.Equal(t, "Thu, 18 Jan 2024 09:00:00 +0000", record.LastContact)
	assert.Equal(t, 1, store.Len())
}

func TestUpdaterMissingSender(t *testing.T) {
	updater := NewUpdater(NewMemStore(), NewSynthesizer(nil, nil), nil)
	email := &mail.Email{ID: "m9", Subject: "no sender"}

	_, _, err := updater.Process(context.Background(), email)
	assert.Error(t, err)
}
