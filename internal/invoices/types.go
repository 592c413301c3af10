package invoices

import "github.com/teemow/inboxpilot/internal/extract"

// Record is the stored metadata for one archived invoice.
type Record struct {
	EmailID    string         `json:"emailId"`
	Subject    string         `json:"subject"`
	File       string         `json:"file"`
	StoredPath string         `json:"storedPath"`
	Sender     string         `json:"sender"`
	Month      string         `json:"month"`
	Confidence float64        `json:"confidence"`
	Fields     extract.Fields `json:"fields"`
}

// ItemError records one invoice that could not be processed.
type ItemError struct {
	EmailID string `json:"emailId"`
	Subject string `json:"subject"`
	File    string `json:"file,omitempty"`
	Reason  string `json:"reason"`
}

// ManualItem is an invoice that needs a human: either a dashboard
// notification without an attachment or an extraction below the
// confidence threshold.
type ManualItem struct {
	EmailID    string  `json:"emailId"`
	Subject    string  `json:"subject"`
	From       string  `json:"from,omitempty"`
	File       string  `json:"file,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Reason     string  `json:"reason"`
}

// RunResult is the outcome of one invoice processing run.
type RunResult struct {
	Records []Record     `json:"records"`
	Review  []ManualItem `json:"review"`
	Errors  []ItemError  `json:"errors"`
}
