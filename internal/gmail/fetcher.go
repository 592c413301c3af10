package gmail

import (
	"context"

	"github.com/teemow/inboxpilot/internal/mail"
)

// Fetcher binds a Client to one search query so the pipeline can pull
// emails without knowing about Gmail query syntax.
type Fetcher struct {
	client *Client
	query  Query
	max    int64
}

// NewFetcher creates a Fetcher that lists at most max messages
// matching query.
func NewFetcher(client *Client, query Query, max int64) *Fetcher {
	return &Fetcher{client: client, query: query, max: max}
}

// Fetch downloads the matching emails.
func (f *Fetcher) Fetch(ctx context.Context) ([]*mail.Email, error) {
	return f.client.FetchEmails(ctx, f.query.String(), f.max)
}
