package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/inboxpilot/internal/mail"
)

// Well-known artifact file names under the work directory.
const (
	EmailCacheFile         = "emails_cache.json"
	ClassificationFile     = "categorization_results.json"
	InvoiceMetadataFile    = "invoices_metadata.json"
	InvoiceErrorsFile      = "invoice_errors.json"
	InvoiceReviewQueueFile = "invoice_review_queue.json"
	InvoiceSummaryBySender = "invoice_summary_by_sender.json"
	InvoiceSummaryByMonth  = "invoice_summary_by_month.json"
	LabelingReportFile     = "labeling_report.json"
	DraftSummaryFile       = "draft_responses_summary.json"
	PipelineReportFile     = "pipeline_report.json"
	DraftsDir              = "drafts"
)

// ErrNotFound marks a missing artifact; consuming stages treat it as a
// failed precondition.
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("artifact not found at %s", e.Path)
}

// Store reads and writes JSON artifacts under a work directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// first write, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the work directory root.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether the named artifact is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Save writes v as indented JSON to the named artifact, creating the
// work directory as needed. The write goes through a temp file and
// rename so a crash never leaves a truncated artifact behind.
func (s *Store) Save(name string, v any) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize artifact %s: %w", name, err)
	}
	return nil
}

// Load reads the named artifact into out. A missing file yields
// *ErrNotFound.
func (s *Store) Load(name string, out any) error {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ErrNotFound{Path: path}
		}
		return fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", name, err)
	}
	return nil
}

// EmailCache is the fetch stage artifact.
type EmailCache struct {
	FetchedAt time.Time    `json:"fetchedAt"`
	Count     int          `json:"count"`
	Emails    []mail.Email `json:"emails"`
}

// ClassificationResults is the classify stage artifact: the same
// emails augmented with categories, plus per-category counts.
type ClassificationResults struct {
	TotalEmails    int            `json:"totalEmails"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	Emails         []mail.Email   `json:"emails"`
}

// SaveEmailCache writes the fetch cache artifact.
func (s *Store) SaveEmailCache(emails []mail.Email) error {
	return s.Save(EmailCacheFile, &EmailCache{
		FetchedAt: time.Now(),
		Count:     len(emails),
		Emails:    emails,
	})
}

// LoadEmailCache reads the fetch cache artifact.
func (s *Store) LoadEmailCache() (*EmailCache, error) {
	var cache EmailCache
	if err := s.Load(EmailCacheFile, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// SaveClassificationResults writes the classify stage artifact,
// computing the category counts from the emails.
func (s *Store) SaveClassificationResults(emails []mail.Email) error {
	counts := make(map[string]int)
	for _, e := range emails {
		counts[e.Category]++
	}
	return s.Save(ClassificationFile, &ClassificationResults{
		TotalEmails:    len(emails),
		CategoryCounts: counts,
		Emails:         emails,
	})
}

// LoadClassificationResults reads the classify stage artifact.
func (s *Store) LoadClassificationResults() (*ClassificationResults, error) {
	var results ClassificationResults
	if err := s.Load(ClassificationFile, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
