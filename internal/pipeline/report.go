package pipeline

import "time"

// Stage names, in execution order.
const (
	StageFetch    = "fetch"
	StageClassify = "classify"
	StageInvoices = "invoices"
	StageContexts = "contexts"
	StageDrafts   = "drafts"
	StageLabels   = "labels"
)

// StageResult is the outcome of one pipeline stage.
type StageResult struct {
	Name       string   `json:"name"`
	Succeeded  bool     `json:"succeeded"`
	DurationMS int64    `json:"durationMs"`
	Processed  int      `json:"processed"`
	Artifact   string   `json:"artifact,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Report is the persisted outcome of a full pipeline run.
type Report struct {
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Degraded   bool          `json:"degraded"`
	Stages     []StageResult `json:"stages"`
}
