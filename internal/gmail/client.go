package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/inboxpilot/internal/google"
	"github.com/teemow/inboxpilot/internal/mail"
)

// Client wraps the Gmail Users service.
type Client struct {
	svc *gmail.UsersService
}

// HasToken checks if a valid OAuth token exists.
func HasToken() bool {
	return google.HasToken()
}

// NewClient creates a new Gmail client with OAuth2 authentication.
func NewClient(ctx context.Context) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return &Client{svc: svc.Users}, nil
}

// ListMessages lists message stubs matching the query, fetching pages
// until maxResults is reached or the result set is exhausted.
func (c *Client) ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmail.Message, error) {
	var all []*gmail.Message
	pageToken := ""

	for {
		remaining := maxResults - int64(len(all))
		if remaining <= 0 {
			break
		}

		// Gmail caps page size at 100.
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").Q(query).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("listing messages: %w", err)
		}

		all = append(all, res.Messages...)

		if res.NextPageToken == "" || int64(len(all)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(all)) > maxResults {
		all = all[:maxResults]
	}

	return all, nil
}

// GetMessage retrieves a full Gmail message.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// FetchEmails lists messages matching the query and converts each into
// the internal email record.
func (c *Client) FetchEmails(ctx context.Context, query string, maxResults int64) ([]*mail.Email, error) {
	stubs, err := c.ListMessages(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	emails := make([]*mail.Email, 0, len(stubs))
	for _, stub := range stubs {
		msg, err := c.GetMessage(ctx, stub.Id)
		if err != nil {
			return nil, err
		}
		emails = append(emails, ToEmail(msg))
	}
	return emails, nil
}
