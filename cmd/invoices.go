package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/extract"
	"github.com/teemow/inboxpilot/internal/invoices"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newInvoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Archive invoice attachments and extract their metadata",
		Long: `Process every email classified as an invoice: download its PDF
attachments, archive them by month and by sender, and extract invoice
fields with the LLM. Extractions below the review threshold land in
the manual review queue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			primary, _, err := buildProviders(cfg, nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := newGmailClient(ctx)
			if err != nil {
				return err
			}

			processor := invoices.NewProcessor(client,
				extract.NewEngine(primary, nil),
				cfg.InvoiceDir, cfg.ReviewThreshold, nil)

			o := pipeline.New(pipeline.Deps{
				Store:    newStore(cfg),
				Invoices: processor,
			})
			return finishStage(o.Invoices(ctx))
		},
	}

	return cmd
}
