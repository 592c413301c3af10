package clientctx

import "time"

// Client record lifecycle states.
const (
	StatusActive  = "active"
	StatusDormant = "dormant"
	StatusClosed  = "closed"
)

// Action item states.
const (
	ActionPending   = "pending"
	ActionCompleted = "completed"
)

// Action item urgencies.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Communication is one logged email exchange. Entries are append-only;
// past communications are never rewritten.
type Communication struct {
	EmailID   string   `json:"emailId"`
	Date      string   `json:"date"`
	Subject   string   `json:"subject"`
	Topic     string   `json:"topic"`
	KeyPoints []string `json:"keyPoints"`
}

// ActionItem is a task derived from the correspondence.
type ActionItem struct {
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Urgency     string    `json:"urgency"`
	Created     time.Time `json:"created"`
}

// ClientContext is the accumulated record for one sender address.
type ClientContext struct {
	ClientEmail    string          `json:"clientEmail"`
	ClientName     string          `json:"clientName"`
	FirstContact   string          `json:"firstContact"`
	LastContact    string          `json:"lastContact"`
	ProjectSummary string          `json:"projectSummary"`
	InquiryType    string          `json:"inquiryType,omitempty"`
	Status         string          `json:"status"`
	Communications []Communication `json:"communications"`
	ActionItems    []ActionItem    `json:"actionItems"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy.
func (c *ClientContext) Clone() *ClientContext {
	out := *c
	out.Communications = make([]Communication, len(c.Communications))
	for i, comm := range c.Communications {
		out.Communications[i] = comm
		out.Communications[i].KeyPoints = append([]string(nil), comm.KeyPoints...)
	}
	out.ActionItems = append([]ActionItem(nil), c.ActionItems...)
	return &out
}

// OpenActionItems returns the items still pending.
func (c *ClientContext) OpenActionItems() []ActionItem {
	var open []ActionItem
	for _, item := range c.ActionItems {
		if item.Status == ActionPending {
			open = append(open, item)
		}
	}
	return open
}

// RecentCommunications returns up to n of the most recent log entries,
// oldest first.
func (c *ClientContext) RecentCommunications(n int) []Communication {
	if len(c.Communications) <= n {
		return c.Communications
	}
	return c.Communications[len(c.Communications)-n:]
}
