package labels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

// Service is the slice of the Gmail API the applier needs.
type Service interface {
	ListLabels(ctx context.Context) ([]*gmailapi.Label, error)
	CreateLabel(ctx context.Context, name string) (*gmailapi.Label, error)
	ApplyLabel(ctx context.Context, messageID, labelID string) error
}

// ItemError records a single email that could not be labeled.
type ItemError struct {
	EmailID  string `json:"emailId"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"error"`
}

// Summary aggregates one labeling run.
type Summary struct {
	TotalProcessed int            `json:"totalProcessed"`
	LabelsApplied  int            `json:"labelsApplied"`
	Skipped        int            `json:"skipped"`
	ErrorsCount    int            `json:"errorsCount"`
	ByCategory     map[string]int `json:"byCategory"`
}

// Report is the persisted outcome of a labeling run.
type Report struct {
	Summary Summary     `json:"summary"`
	Errors  []ItemError `json:"errors"`
}

// Applier applies category labels to emails.
type Applier struct {
	svc      Service
	taxonomy *category.Taxonomy
	logger   *slog.Logger

	// per-run label caches, filled lazily from one List call
	idByName map[string]string
	nameByID map[string]string
}

// NewApplier creates an Applier.
func NewApplier(svc Service, taxonomy *category.Taxonomy, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{
		svc:      svc,
		taxonomy: taxonomy,
		logger:   logging.WithStage(logger, "labels"),
	}
}

// Run labels every classified email and returns the report. Per-email
// failures are collected, never aborting the run; only the initial
// label listing is fatal.
func (a *Applier) Run(ctx context.Context, emails []*mail.Email) (*Report, error) {
	if err := a.loadLabels(ctx); err != nil {
		return nil, err
	}

	report := &Report{
		Summary: Summary{ByCategory: make(map[string]int)},
		Errors:  []ItemError{},
	}

	for _, email := range emails {
		if email.Category == "" {
			continue
		}
		report.Summary.TotalProcessed++

		if a.alreadyLabeled(email) {
			report.Summary.Skipped++
			a.logger.Debug("email already labeled, skipping",
				slog.String("email_id", email.ID))
			continue
		}

		cat, ok := a.taxonomy.Normalize(email.Category)
		if !ok {
			report.addError(email, fmt.Sprintf("unknown category %q", email.Category))
			continue
		}

		path, ok := a.taxonomy.LabelPath(cat)
		if !ok {
			report.addError(email, fmt.Sprintf("no label path for category %q", cat))
			continue
		}

		labelID, err := a.ensureLabel(ctx, path)
		if err != nil {
			report.addError(email, err.Error())
			continue
		}

		if err := a.svc.ApplyLabel(ctx, email.ID, labelID); err != nil {
			report.addError(email, err.Error())
			continue
		}

		report.Summary.LabelsApplied++
		report.Summary.ByCategory[cat.String()]++
	}

	a.logger.Info("labeling run complete",
		slog.Int("processed", report.Summary.TotalProcessed),
		slog.Int("applied", report.Summary.LabelsApplied),
		slog.Int("skipped", report.Summary.Skipped),
		slog.Int("errors", report.Summary.ErrorsCount))
	return report, nil
}

func (r *Report) addError(email *mail.Email, msg string) {
	r.Summary.ErrorsCount++
	r.Errors = append(r.Errors, ItemError{
		EmailID:  email.ID,
		Subject:  email.Subject,
		Category: email.Category,
		Message:  msg,
	})
}

// loadLabels fetches the label list once and builds the lookup caches.
func (a *Applier) loadLabels(ctx context.Context) error {
	existing, err := a.svc.ListLabels(ctx)
	if err != nil {
		return fmt.Errorf("listing labels: %w", err)
	}
	a.idByName = make(map[string]string, len(existing))
	a.nameByID = make(map[string]string, len(existing))
	for _, l := range existing {
		a.idByName[l.Name] = l.Id
		a.nameByID[l.Id] = l.Name
	}
	return nil
}

// alreadyLabeled reports whether the email carries any label under the
// assistant namespace.
func (a *Applier) alreadyLabeled(email *mail.Email) bool {
	prefix := category.LabelNamespace + "/"
	for _, id := range email.LabelIDs {
		name := a.nameByID[id]
		if name == category.LabelNamespace || strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ensureLabel resolves a label path to its ID, creating the label when
// it does not exist yet. Created labels join the per-run cache so each
// path costs at most one create call.
func (a *Applier) ensureLabel(ctx context.Context, path string) (string, error) {
	if id, ok := a.idByName[path]; ok {
		return id, nil
	}
	created, err := a.svc.CreateLabel(ctx, path)
	if err != nil {
		return "", fmt.Errorf("creating label %s: %w", path, err)
	}
	a.idByName[created.Name] = created.Id
	a.nameByID[created.Id] = created.Name
	return created.Id, nil
}
