package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/inboxpilot/internal/extract"
	"github.com/teemow/inboxpilot/internal/gmail"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

// AttachmentGetter downloads attachment content.
type AttachmentGetter interface {
	GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)
}

// Processor archives invoice attachments and extracts their metadata.
type Processor struct {
	attachments AttachmentGetter
	engine      *extract.Engine
	dir         string
	threshold   float64
	logger      *slog.Logger

	// textFn is swapped in tests; production uses pdfText.
	textFn func([]byte) (string, error)
}

// NewProcessor creates a Processor writing under dir. threshold is the
// minimum extraction confidence for automatic acceptance.
func NewProcessor(attachments AttachmentGetter, engine *extract.Engine, dir string, threshold float64, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		attachments: attachments,
		engine:      engine,
		dir:         dir,
		threshold:   threshold,
		logger:      logging.WithStage(logger, "invoices"),
		textFn:      pdfText,
	}
}

// Run processes every invoice-classified email. Per-item failures land
// in the result's error list; only the inputs being empty short-cuts
// the run.
func (p *Processor) Run(ctx context.Context, emails []*mail.Email) (*RunResult, error) {
	result := &RunResult{
		Records: []Record{},
		Review:  []ManualItem{},
		Errors:  []ItemError{},
	}

	for _, email := range emails {
		if email.Category != "invoice" {
			continue
		}
		p.processEmail(ctx, email, result)
	}

	p.logger.Info("invoice run complete",
		slog.Int("archived", len(result.Records)),
		slog.Int("review", len(result.Review)),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}

func (p *Processor) processEmail(ctx context.Context, email *mail.Email, result *RunResult) {
	pdfs := email.PDFAttachments()
	if len(pdfs) == 0 {
		if IsDashboardInvoice(email) {
			result.Review = append(result.Review, ManualItem{
				EmailID: email.ID,
				Subject: email.Subject,
				From:    email.From,
				Reason:  "dashboard invoice, download manually",
			})
			return
		}
		result.Errors = append(result.Errors, ItemError{
			EmailID: email.ID,
			Subject: email.Subject,
			Reason:  "no pdf attachment",
		})
		return
	}

	for _, att := range pdfs {
		record, err := p.processAttachment(ctx, email, att)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				EmailID: email.ID,
				Subject: email.Subject,
				File:    att.Filename,
				Reason:  err.Error(),
			})
			continue
		}

		if record.Confidence < p.threshold {
			result.Review = append(result.Review, ManualItem{
				EmailID:    email.ID,
				Subject:    email.Subject,
				File:       record.StoredPath,
				Confidence: record.Confidence,
				Reason:     fmt.Sprintf("extraction confidence %.2f below %.2f", record.Confidence, p.threshold),
			})
		}
		result.Records = append(result.Records, *record)
	}
}

func (p *Processor) processAttachment(ctx context.Context, email *mail.Email, att mail.Attachment) (*Record, error) {
	data, err := p.attachments.GetAttachment(ctx, email.ID, att.AttachmentID)
	if err != nil {
		return nil, err
	}

	text, err := p.textFn(data)
	if err != nil {
		return nil, err
	}

	extraction, err := p.engine.Extract(ctx, text, att.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrInsufficientText) {
			return nil, fmt.Errorf("no extractable text, likely a scanned pdf: %w", err)
		}
		return nil, err
	}

	sender := extract.NormalizeSender(deref(extraction.Fields.Sender))
	month := invoiceMonth(extraction.Fields.Date)

	stored, err := p.archive(data, att.Filename, sender, month)
	if err != nil {
		return nil, err
	}

	return &Record{
		EmailID:    email.ID,
		Subject:    email.Subject,
		File:       att.Filename,
		StoredPath: stored,
		Sender:     sender,
		Month:      month,
		Confidence: extraction.Confidence,
		Fields:     extraction.Fields,
	}, nil
}

// archive files the PDF twice: under by_date/<month>/<sender>/ and
// by_sender/<sender>/, so both browsing orders work without symlinks.
func (p *Processor) archive(data []byte, filename, sender, month string) (string, error) {
	name := gmail.SanitizeFilename(filename)

	byDate := filepath.Join(p.dir, "by_date", month, sender, name)
	bySender := filepath.Join(p.dir, "by_sender", sender, month+"_"+name)

	for _, path := range []string{byDate, bySender} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("creating invoice dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing invoice file: %w", err)
		}
	}

	return byDate, nil
}

// invoiceMonth derives the YYYY-MM bucket from an extracted date.
func invoiceMonth(date *string) string {
	if date == nil || *date == "" {
		return "unknown"
	}
	t, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return "unknown"
	}
	return t.Format("2006-01")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
