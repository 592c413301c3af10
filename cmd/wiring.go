package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/artifact"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/gmail"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

var logLevel string

// setupLogging installs the default slog handler at the requested
// level. Unknown levels fall back to info.
func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// fetchFlags are the mailbox selection flags shared by the fetch and
// run commands.
type fetchFlags struct {
	days       int
	maxResults int64
	unreadOnly bool
	query      string
}

func (f *fetchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.days, "days", 7, "Fetch emails received in the last N days")
	cmd.Flags().Int64Var(&f.maxResults, "max", 200, "Maximum number of emails to fetch")
	cmd.Flags().BoolVar(&f.unreadOnly, "unread", false, "Only fetch unread emails")
	cmd.Flags().StringVar(&f.query, "query", "", "Extra Gmail search terms appended to the generated query")
}

func (f *fetchFlags) fetcher(client *gmail.Client) *gmail.Fetcher {
	read := gmail.ReadAny
	if f.unreadOnly {
		read = gmail.UnreadOnly
	}
	q := gmail.LastDays(f.days, read, time.Now())
	q.Extra = f.query
	return gmail.NewFetcher(client, q, f.maxResults)
}

// buildProviders constructs the LLM provider chain from config. OpenAI
// is the primary and Anthropic the fallback; with only one configured
// it serves as primary without a fallback. Every provider is bounded
// by cfg.LLMTimeout per call, and with metrics set each call is
// counted and timed.
func buildProviders(cfg *config.Config, metrics *instrumentation.Metrics) (primary, fallback llm.Provider, err error) {
	if cfg.HasOpenAI() {
		primary, err = llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring OpenAI provider: %w", err)
		}
	}
	if cfg.HasAnthropic() {
		fallback, err = llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring Anthropic provider: %w", err)
		}
	}
	if primary == nil && fallback == nil {
		return nil, nil, fmt.Errorf("no LLM provider configured; set OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}
	if primary == nil {
		primary, fallback = fallback, nil
	}
	if metrics != nil {
		primary = llm.Instrument(primary, metrics)
		if fallback != nil {
			fallback = llm.Instrument(fallback, metrics)
		}
	}
	return primary, fallback, nil
}

// newGmailClient builds a Gmail client, failing early with a hint when
// the OAuth token is missing.
func newGmailClient(ctx context.Context) (*gmail.Client, error) {
	if !gmail.HasToken() {
		return nil, fmt.Errorf("no Google OAuth token found; run 'inboxpilot auth' first")
	}
	return gmail.NewClient(ctx)
}

func newStore(cfg *config.Config) *artifact.Store {
	return artifact.NewStore(cfg.WorkDir)
}

// finishStage prints the stage outcome and converts a failed stage
// into a command error.
func finishStage(result pipeline.StageResult) error {
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  item error: %s\n", e)
	}
	if !result.Succeeded {
		return fmt.Errorf("stage %s failed", result.Name)
	}
	fmt.Printf("%s: processed %d item(s) in %dms\n", result.Name, result.Processed, result.DurationMS)
	if result.Artifact != "" {
		fmt.Printf("  wrote %s\n", result.Artifact)
	}
	return nil
}

func printReport(report *pipeline.Report) {
	for _, s := range report.Stages {
		status := "ok"
		if !s.Succeeded {
			status = "FAILED"
		}
		fmt.Printf("  %-10s %-7s processed=%-4d errors=%-3d %dms\n",
			s.Name, status, s.Processed, len(s.Errors), s.DurationMS)
	}
	if report.Degraded {
		fmt.Println("pipeline finished degraded; see the report artifact for details")
	}
}
