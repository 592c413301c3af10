package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/classify"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify cached emails into categories",
		Long: `Classify every email in the email cache with the configured LLM
providers and write the results to the classification artifact.
Emails that neither provider can classify fall back to the "other"
category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			primary, fallback, err := buildProviders(cfg, nil)
			if err != nil {
				return err
			}

			o := pipeline.New(pipeline.Deps{
				Store:      newStore(cfg),
				Classifier: classify.New(category.Default(), primary, fallback, nil),
			})
			return finishStage(o.Classify(cmd.Context()))
		},
	}

	return cmd
}
