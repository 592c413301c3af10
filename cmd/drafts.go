package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/clientctx"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/drafts"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Generate reply drafts for client emails",
		Long: `Generate a reply draft for every email classified as a new client
inquiry or existing client correspondence. Replies to known clients
pull their context record into the prompt. Drafts are written to the
work directory, never sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			primary, _, err := buildProviders(cfg, nil)
			if err != nil {
				return err
			}

			generator := drafts.NewGenerator(primary,
				clientctx.NewFileStore(cfg.ContextDir), nil)

			o := pipeline.New(pipeline.Deps{
				Store:  newStore(cfg),
				Drafts: generator,
			})
			return finishStage(o.Drafts(cmd.Context()))
		},
	}

	return cmd
}
