package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxpilot/internal/clientctx"
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

func inquiry() *mail.Email {
	return &mail.Email{
		ID:       "m1",
		Subject:  "Need help with an online store",
		From:     "Ada Client <a@x.com>",
		Body:     "We want a small web shop built by spring.",
		Category: "new_client_inquiry",
	}
}

func clientMail() *mail.Email {
	return &mail.Email{
		ID:       "m2",
		Subject:  "Re: Need help with an online store",
		From:     "Ada Client <a@x.com>",
		Body:     "Budget approved, can we start next week?",
		Category: "existing_client",
	}
}

func TestGenerateInquiryReply(t *testing.T) {
	provider := &fakeProvider{response: "Thank you for reaching out...\n"}
	gen := NewGenerator(provider, nil, nil)
	gen.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }

	draft, err := gen.Generate(context.Background(), inquiry())
	require.NoError(t, err)

	assert.Equal(t, "m1", draft.EmailID)
	assert.Equal(t, "Ada Client <a@x.com>", draft.To)
	assert.Equal(t, "Re: Need help with an online store", draft.Subject)
	assert.Equal(t, "Thank you for reaching out...", draft.Body)
	assert.Equal(t, "new_client_inquiry", draft.Category)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "new client inquiry")
	assert.Contains(t, provider.prompts[0], "web shop")
}

func TestGenerateClientReplyUsesContext(t *testing.T) {
	store := clientctx.NewMemStore()
	require.NoError(t, store.Put("a@x.com", &clientctx.ClientContext{
		ClientEmail:    "a@x.com",
		ProjectSummary: "Web shop build, spring deadline.",
		Status:         clientctx.StatusActive,
		Communications: []clientctx.Communication{
			{EmailID: "m1", Subject: "Need help", Topic: "intro"},
		},
		ActionItems: []clientctx.ActionItem{
			{Description: "Send proposal", Status: clientctx.ActionPending},
			{Description: "Old task", Status: clientctx.ActionCompleted},
		},
	}))

	provider := &fakeProvider{response: "Glad to hear the budget is approved."}
	gen := NewGenerator(provider, store, nil)

	draft, err := gen.Generate(context.Background(), clientMail())
	require.NoError(t, err)
	assert.Equal(t, "Re: Need help with an online store", draft.Subject, "existing Re: prefix is kept")

	require.Len(t, provider.prompts, 1)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Web shop build, spring deadline.")
	assert.Contains(t, prompt, "Send proposal")
	assert.NotContains(t, prompt, "Old task", "completed items stay out of the prompt")
}

func TestGenerateClientReplyWithoutRecord(t *testing.T) {
	provider := &fakeProvider{response: "Sure thing."}
	gen := NewGenerator(provider, clientctx.NewMemStore(), nil)

	_, err := gen.Generate(context.Background(), clientMail())
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "No prior context on record")
}

func TestGenerateUnsupportedCategory(t *testing.T) {
	gen := NewGenerator(&fakeProvider{}, nil, nil)

	_, err := gen.Generate(context.Background(), &mail.Email{ID: "m3", Category: "advertising"})
	assert.Error(t, err)
}

func TestGenerateProviderError(t *testing.T) {
	provider := &fakeProvider{err: &llm.ProviderError{Provider: "fake", Kind: llm.KindTransient, Err: errors.New("timeout")}}
	gen := NewGenerator(provider, nil, nil)

	_, err := gen.Generate(context.Background(), inquiry())
	assert.Error(t, err)
}

func TestReplySubject(t *testing.T) {
	assert.Equal(t, "Re: Hello", replySubject("Hello"))
	assert.Equal(t, "Re: Hello", replySubject("Re: Hello"))
	assert.Equal(t, "RE: Hello", replySubject("RE: Hello"))
}
