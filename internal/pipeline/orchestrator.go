package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/inboxpilot/internal/artifact"
	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/classify"
	"github.com/teemow/inboxpilot/internal/clientctx"
	"github.com/teemow/inboxpilot/internal/drafts"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/invoices"
	"github.com/teemow/inboxpilot/internal/labels"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

// Fetcher lists new emails from the mailbox.
type Fetcher interface {
	Fetch(ctx context.Context) ([]*mail.Email, error)
}

// Classifier assigns a category to one email.
type Classifier interface {
	Classify(ctx context.Context, email *mail.Email) classify.Result
}

// InvoiceProcessor archives invoice attachments.
type InvoiceProcessor interface {
	Run(ctx context.Context, emails []*mail.Email) (*invoices.RunResult, error)
}

// ContextUpdater folds one email into the sender's client record.
type ContextUpdater interface {
	Process(ctx context.Context, email *mail.Email) (*clientctx.ClientContext, bool, error)
}

// DraftGenerator produces a reply draft for one email.
type DraftGenerator interface {
	Generate(ctx context.Context, email *mail.Email) (*drafts.Draft, error)
}

// LabelApplier projects categories onto mailbox labels.
type LabelApplier interface {
	Run(ctx context.Context, emails []*mail.Email) (*labels.Report, error)
}

// Deps are the stage implementations an Orchestrator drives. Stages
// whose dependency is nil are skipped with a failed stage result.
type Deps struct {
	Store      *artifact.Store
	Fetcher    Fetcher
	Classifier Classifier
	Invoices   InvoiceProcessor
	Contexts   ContextUpdater
	Drafts     DraftGenerator
	Labels     LabelApplier
	Metrics    *instrumentation.Metrics
	Logger     *slog.Logger
}

// Orchestrator runs pipeline stages over the shared artifact store.
type Orchestrator struct {
	deps    Deps
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	now     func() time.Time
}

// New creates an Orchestrator.
func New(deps Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		deps:    deps,
		logger:  logger,
		metrics: deps.Metrics,
		now:     time.Now,
	}
}

// Fetch pulls emails from the mailbox into the email cache artifact.
func (o *Orchestrator) Fetch(ctx context.Context) StageResult {
	return o.timed(ctx, StageFetch, artifact.EmailCacheFile, func() (int, []string, error) {
		if o.deps.Fetcher == nil {
			return 0, nil, fmt.Errorf("no fetcher configured")
		}

		emails, err := o.deps.Fetcher.Fetch(ctx)
		if err != nil {
			return 0, nil, err
		}

		values := make([]mail.Email, len(emails))
		for i, e := range emails {
			values[i] = *e
		}
		if err := o.deps.Store.SaveEmailCache(values); err != nil {
			return 0, nil, err
		}
		return len(values), nil, nil
	})
}

// Classify assigns a category to every cached email and writes the
// classification artifact.
func (o *Orchestrator) Classify(ctx context.Context) StageResult {
	return o.timed(ctx, StageClassify, artifact.ClassificationFile, func() (int, []string, error) {
		cache, err := o.deps.Store.LoadEmailCache()
		if err != nil {
			return 0, nil, asPrecondition(StageClassify, err)
		}

		var errs []string
		for i := range cache.Emails {
			result := o.deps.Classifier.Classify(ctx, &cache.Emails[i])
			cache.Emails[i].Category = result.Category.String()
			o.metrics.RecordClassification(ctx, result.Category.String(), string(result.Outcome))
			if result.Err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", cache.Emails[i].ID, result.Err))
			}
		}

		if err := o.deps.Store.SaveClassificationResults(cache.Emails); err != nil {
			return 0, nil, err
		}
		return len(cache.Emails), errs, nil
	})
}

// Invoices archives invoice attachments and writes the invoice
// artifacts.
func (o *Orchestrator) Invoices(ctx context.Context) StageResult {
	return o.timed(ctx, StageInvoices, artifact.InvoiceMetadataFile, func() (int, []string, error) {
		emails, err := o.loadClassified(StageInvoices)
		if err != nil {
			return 0, nil, err
		}
		if o.deps.Invoices == nil {
			return 0, nil, fmt.Errorf("no invoice processor configured")
		}

		result, err := o.deps.Invoices.Run(ctx, emails)
		if err != nil {
			return 0, nil, err
		}

		store := o.deps.Store
		saves := map[string]any{
			artifact.InvoiceMetadataFile:    result.Records,
			artifact.InvoiceErrorsFile:      result.Errors,
			artifact.InvoiceReviewQueueFile: result.Review,
			artifact.InvoiceSummaryBySender: invoices.SummarizeBySender(result.Records),
			artifact.InvoiceSummaryByMonth:  invoices.SummarizeByMonth(result.Records),
		}
		for name, v := range saves {
			if err := store.Save(name, v); err != nil {
				return 0, nil, err
			}
		}

		o.metrics.RecordInvoiceOutcome(ctx, instrumentation.InvoiceArchived, len(result.Records))
		o.metrics.RecordInvoiceOutcome(ctx, instrumentation.InvoiceReview, len(result.Review))
		o.metrics.RecordInvoiceOutcome(ctx, instrumentation.InvoiceError, len(result.Errors))

		var errs []string
		for _, e := range result.Errors {
			errs = append(errs, fmt.Sprintf("%s (%s): %s", e.EmailID, e.File, e.Reason))
		}
		return len(result.Records), errs, nil
	})
}

// Contexts folds client emails into the per-sender records.
func (o *Orchestrator) Contexts(ctx context.Context) StageResult {
	return o.timed(ctx, StageContexts, "", func() (int, []string, error) {
		emails, err := o.loadClassified(StageContexts)
		if err != nil {
			return 0, nil, err
		}
		if o.deps.Contexts == nil {
			return 0, nil, fmt.Errorf("no context updater configured")
		}

		var processed int
		var errs []string
		for _, email := range emails {
			if !category.IsClientCategory(category.Category(email.Category)) {
				continue
			}
			if _, _, err := o.deps.Contexts.Process(ctx, email); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", email.ID, err))
				continue
			}
			processed++
		}
		return processed, errs, nil
	})
}

// Drafts generates reply drafts for client emails.
func (o *Orchestrator) Drafts(ctx context.Context) StageResult {
	return o.timed(ctx, StageDrafts, artifact.DraftSummaryFile, func() (int, []string, error) {
		emails, err := o.loadClassified(StageDrafts)
		if err != nil {
			return 0, nil, err
		}
		if o.deps.Drafts == nil {
			return 0, nil, fmt.Errorf("no draft generator configured")
		}

		summary := drafts.Summary{EmailIDs: []string{}}
		var errs []string
		for _, email := range emails {
			if !category.IsClientCategory(category.Category(email.Category)) {
				continue
			}

			draft, err := o.deps.Drafts.Generate(ctx, email)
			if err != nil {
				summary.Errors++
				errs = append(errs, fmt.Sprintf("%s: %v", email.ID, err))
				continue
			}

			name := fmt.Sprintf("%s/draft_%s.json", artifact.DraftsDir, email.ID)
			if err := o.deps.Store.Save(name, draft); err != nil {
				summary.Errors++
				errs = append(errs, fmt.Sprintf("%s: %v", email.ID, err))
				continue
			}
			summary.Generated++
			summary.EmailIDs = append(summary.EmailIDs, email.ID)
		}

		if err := o.deps.Store.Save(artifact.DraftSummaryFile, &summary); err != nil {
			return 0, nil, err
		}
		return summary.Generated, errs, nil
	})
}

// Labels projects categories onto mailbox labels and writes the
// labeling report.
func (o *Orchestrator) Labels(ctx context.Context) StageResult {
	return o.timed(ctx, StageLabels, artifact.LabelingReportFile, func() (int, []string, error) {
		emails, err := o.loadClassified(StageLabels)
		if err != nil {
			return 0, nil, err
		}
		if o.deps.Labels == nil {
			return 0, nil, fmt.Errorf("no label applier configured")
		}

		report, err := o.deps.Labels.Run(ctx, emails)
		if err != nil {
			return 0, nil, err
		}

		if err := o.deps.Store.Save(artifact.LabelingReportFile, report); err != nil {
			return 0, nil, err
		}

		for cat, n := range report.Summary.ByCategory {
			o.metrics.RecordLabelsApplied(ctx, cat, n)
		}

		var errs []string
		for _, e := range report.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", e.EmailID, e.Message))
		}
		return report.Summary.LabelsApplied, errs, nil
	})
}

// Run executes the full pipeline. Fetch and classify failures abort
// the run; downstream stage failures degrade it. The report artifact
// is written in every case.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: o.now()}

	for _, stage := range []func(context.Context) StageResult{o.Fetch, o.Classify} {
		result := stage(ctx)
		report.Stages = append(report.Stages, result)
		if !result.Succeeded {
			report.FinishedAt = o.now()
			o.saveReport(report)
			return report, fmt.Errorf("stage %s failed: %s", result.Name, firstError(result))
		}
	}

	for _, stage := range []func(context.Context) StageResult{o.Invoices, o.Contexts, o.Drafts, o.Labels} {
		result := stage(ctx)
		report.Stages = append(report.Stages, result)
		if !result.Succeeded {
			report.Degraded = true
		}
	}

	report.FinishedAt = o.now()
	o.saveReport(report)

	if report.Degraded {
		o.logger.Warn("pipeline run degraded",
			slog.Int("stages", len(report.Stages)))
	} else {
		o.logger.Info("pipeline run complete",
			slog.Int("stages", len(report.Stages)))
	}
	return report, nil
}

// loadClassified loads the classification artifact as a pointer slice.
func (o *Orchestrator) loadClassified(stage string) ([]*mail.Email, error) {
	results, err := o.deps.Store.LoadClassificationResults()
	if err != nil {
		return nil, asPrecondition(stage, err)
	}
	emails := make([]*mail.Email, len(results.Emails))
	for i := range results.Emails {
		emails[i] = &results.Emails[i]
	}
	return emails, nil
}

// timed wraps a stage body with timing, metrics, and logging.
func (o *Orchestrator) timed(ctx context.Context, name, artifactName string, fn func() (int, []string, error)) StageResult {
	start := o.now()
	logger := logging.WithStage(o.logger, name)

	processed, errs, err := fn()
	duration := o.now().Sub(start)

	result := StageResult{
		Name:       name,
		Succeeded:  err == nil,
		DurationMS: duration.Milliseconds(),
		Processed:  processed,
		Errors:     errs,
	}
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else if artifactName != "" {
		result.Artifact = o.deps.Store.Path(artifactName)
	}

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	o.metrics.RecordStage(ctx, name, status, duration)
	o.metrics.RecordEmailsProcessed(ctx, name, status, processed)

	if err != nil {
		logger.Error("stage failed", logging.Err(err))
	} else {
		logger.Info("stage complete",
			slog.Int("processed", processed),
			slog.Int("item_errors", len(errs)),
			slog.Duration("duration", duration))
	}
	return result
}

func (o *Orchestrator) saveReport(report *Report) {
	if err := o.deps.Store.Save(artifact.PipelineReportFile, report); err != nil {
		o.logger.Error("failed to save pipeline report", logging.Err(err))
	}
}

func firstError(result StageResult) string {
	if len(result.Errors) == 0 {
		return "unknown error"
	}
	return result.Errors[len(result.Errors)-1]
}
