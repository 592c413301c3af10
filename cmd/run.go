package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/classify"
	"github.com/teemow/inboxpilot/internal/clientctx"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/drafts"
	"github.com/teemow/inboxpilot/internal/extract"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/invoices"
	"github.com/teemow/inboxpilot/internal/labels"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/pipeline"
	"github.com/teemow/inboxpilot/internal/server"
)

func newRunCmd() *cobra.Command {
	var flags fetchFlags
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full triage pipeline",
		Long: `Run every pipeline stage in order: fetch, classify, invoices,
contexts, drafts and labels. Fetch and classify failures abort the
run; later stages degrade individually and the run continues. The
pipeline report artifact records the outcome of every stage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			if err := instrConfig.Validate(); err != nil {
				return err
			}

			instrProvider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := instrProvider.Shutdown(shutdownCtx); err != nil {
					slog.Warn("instrumentation shutdown failed", logging.Err(err))
				}
			}()

			primary, fallback, err := buildProviders(cfg, instrProvider.Metrics())
			if err != nil {
				return err
			}

			client, err := newGmailClient(ctx)
			if err != nil {
				return err
			}

			if metricsAddr != "" && instrProvider.Enabled() {
				metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
					Addr:                    metricsAddr,
					InstrumentationProvider: instrProvider,
				})
				if err != nil {
					return err
				}
				go func() {
					if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
						slog.Error("metrics server failed", logging.Err(err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = metricsServer.Shutdown(shutdownCtx)
				}()
			}

			taxonomy := category.Default()
			contextStore := clientctx.NewFileStore(cfg.ContextDir)

			deps := pipeline.Deps{
				Store:      newStore(cfg),
				Fetcher:    flags.fetcher(client),
				Classifier: classify.New(taxonomy, primary, fallback, nil),
				Invoices: invoices.NewProcessor(client,
					extract.NewEngine(primary, nil),
					cfg.InvoiceDir, cfg.ReviewThreshold, nil),
				Contexts: clientctx.NewUpdater(contextStore,
					clientctx.NewSynthesizer(primary, nil), nil),
				Drafts:  drafts.NewGenerator(primary, contextStore, nil),
				Labels:  labels.NewApplier(client, taxonomy, nil),
				Metrics: instrProvider.Metrics(),
			}

			report, err := pipeline.New(deps).Run(ctx)
			if report != nil {
				printReport(report)
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090)")
	return cmd
}
