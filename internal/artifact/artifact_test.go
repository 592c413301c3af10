package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxpilot/internal/mail"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "review", Count: 3}
	require.NoError(t, store.Save("review.json", &in))
	assert.True(t, store.Exists("review.json"))

	var out payload
	require.NoError(t, store.Load("review.json", &out))
	assert.Equal(t, in, out)
}

func TestLoadMissingArtifact(t *testing.T) {
	store := NewStore(t.TempDir())

	var out struct{}
	err := store.Load("absent.json", &out)
	require.Error(t, err)

	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestEmailCacheRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	emails := []mail.Email{
		{ID: "m1", Subject: "Hello", From: "a@x.com"},
		{ID: "m2", Subject: "Invoice #4471", From: "billing@acme.io"},
	}
	require.NoError(t, store.SaveEmailCache(emails))

	cache, err := store.LoadEmailCache()
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Count)
	assert.Equal(t, emails, cache.Emails)
	assert.False(t, cache.FetchedAt.IsZero())
}

func TestClassificationResultsCounts(t *testing.T) {
	store := NewStore(t.TempDir())

	emails := []mail.Email{
		{ID: "m1", Category: "invoice"},
		{ID: "m2", Category: "invoice"},
		{ID: "m3", Category: "other"},
	}
	require.NoError(t, store.SaveClassificationResults(emails))

	results, err := store.LoadClassificationResults()
	require.NoError(t, err)
	assert.Equal(t, 3, results.TotalEmails)
	assert.Equal(t, map[string]int{"invoice": 2, "other": 1}, results.CategoryCounts)
	assert.Equal(t, emails, results.Emails)
}

func TestSaveCreatesWorkDir(t *testing.T) {
	dir := t.TempDir() + "/nested/work"
	store := NewStore(dir)

	require.NoError(t, store.Save("x.json", map[string]int{"a": 1}))
	assert.True(t, store.Exists("x.json"))
}
