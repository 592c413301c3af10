package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/category"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/labels"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Mirror categories as Gmail labels",
		Long: `Apply a nested Gmail label to every classified email, creating
missing labels on the way. Emails that already carry a label under the
assistant namespace are skipped, so re-running is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := newGmailClient(ctx)
			if err != nil {
				return err
			}

			o := pipeline.New(pipeline.Deps{
				Store:  newStore(cfg),
				Labels: labels.NewApplier(client, category.Default(), nil),
			})
			return finishStage(o.Labels(ctx))
		},
	}

	return cmd
}
