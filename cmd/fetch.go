package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch recent emails into the email cache",
		Long: `Download recent Gmail messages and write them to the email cache
artifact in the work directory. Later stages read from the cache, so
fetch has to run before any of them.`,
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
				Store:   newStore(cfg),
				Fetcher: flags.fetcher(client),
			})
			return finishStage(o.Fetch(ctx))
		},
	}

	flags.register(cmd)
	return cmd
}
