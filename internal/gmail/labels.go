package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// ListLabels lists all Gmail labels for the user.
func (c *Client) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	resp, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return resp.Labels, nil
}

// CreateLabel creates a user label with the given path. Nested labels
// use "/" in the name, e.g. "Email-Assistant/Invoice".
func (c *Client) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	label := &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}
	created, err := c.svc.Labels.Create("me", label).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create label %s: %w", name, err)
	}
	return created, nil
}

// ApplyLabel adds a label to a single message.
func (c *Client) ApplyLabel(ctx context.Context, messageID, labelID string) error {
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply label to message %s: %w", messageID, err)
	}
	return nil
}
