package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
)

const (
	// minTextLength is the least amount of document text worth sending
	// to the provider. Shorter inputs are almost always extraction
	// failures upstream (image-only PDFs, empty bodies).
	minTextLength = 50

	// textLimit bounds the document text included in the prompt.
	textLimit = 4000

	extractMaxTokens = 300

	// fieldCount is the number of extractable fields; confidence is
	// the populated fraction of these.
	fieldCount = 5
)

// ErrInsufficientText signals that the document text was too short to
// attempt extraction. No provider call is made in that case.
var ErrInsufficientText = errors.New("document text too short for extraction")

// ErrUnparseable signals that the provider answered but the answer was
// not the requested JSON object.
var ErrUnparseable = errors.New("provider returned unparseable extraction")

// Fields are the extractable invoice fields. Nil means the document
// did not state the field; the model is instructed to use null rather
// than guess.
type Fields struct {
	Date          *string  `json:"date"`
	Sender        *string  `json:"sender"`
	InvoiceNumber *string  `json:"invoice_number"`
	Amount        *float64 `json:"amount"`
	Currency      *string  `json:"currency"`
}

// Populated counts the fields the model returned non-null. An empty
// string still counts: only null means the document lacked the field.
func (f *Fields) Populated() int {
	n := 0
	for _, s := range []*string{f.Date, f.Sender, f.InvoiceNumber, f.Currency} {
		if s != nil {
			n++
		}
	}
	if f.Amount != nil {
		n++
	}
	return n
}

// Extraction is the scored result for one document.
type Extraction struct {
	SourceFile string  `json:"sourceFile"`
	Fields     Fields  `json:"fields"`
	Confidence float64 `json:"confidence"`
}

// Engine extracts invoice fields via an inference provider.
type Engine struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(provider llm.Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider: provider,
		logger:   logging.WithStage(logger, "extract"),
	}
}

// Extract pulls invoice fields from the document text. filename is
// recorded on the result for traceability. Returns ErrInsufficientText
// without calling the provider when the text is too short, and an
// error wrapping ErrUnparseable when the provider's answer is not the
// requested JSON.
func (e *Engine) Extract(ctx context.Context, text, filename string) (*Extraction, error) {
	if len(text) < minTextLength {
		return nil, fmt.Errorf("%s: %w (%d chars)", filename, ErrInsufficientText, len(text))
	}
	if len(text) > textLimit {
		text = text[:textLimit]
	}

	raw, err := e.provider.Complete(ctx, buildPrompt(text), llm.Options{MaxTokens: extractMaxTokens, Operation: "extract"})
	if err != nil {
		return nil, fmt.Errorf("extracting fields from %s: %w", filename, err)
	}

	var fields Fields
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &fields); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", filename, ErrUnparseable, err)
	}

	result := &Extraction{
		SourceFile: filename,
		Fields:     fields,
		Confidence: Confidence(&fields),
	}
	e.logger.Debug("extracted invoice fields",
		slog.String("file", filename),
		slog.Float64("confidence", result.Confidence))
	return result, nil
}

// Confidence scores an extraction as the populated fraction of the
// extractable fields, rounded to two decimals.
func Confidence(f *Fields) float64 {
	return math.Round(float64(f.Populated())/fieldCount*100) / 100
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Extract invoice metadata from this document text.

Document text:
%s

Respond with ONLY a JSON object (no markdown, no explanations) with exactly these fields:
- date: the invoice date in YYYY-MM-DD format, or null if not found
- sender: the company or person that issued the invoice, or null if not found
- invoice_number: the invoice number or identifier, or null if not found
- amount: the total amount as a number, or null if not found
- currency: the three-letter currency code (e.g. "USD", "EUR"), or null if not found

Use null for any field you cannot find. Do not guess.`, text)
}
