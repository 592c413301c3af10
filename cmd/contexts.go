package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/clientctx"
	"github.com/teemow/inboxpilot/internal/config"
	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newContextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "Update per-client context records",
		Long: `Fold every email classified as client correspondence into the
sender's context record. New senders get a fresh record; known senders
get a communication entry appended and their summary refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			primary, _, err := buildProviders(cfg, nil)
			if err != nil {
				return err
			}

			updater := clientctx.NewUpdater(
				clientctx.NewFileStore(cfg.ContextDir),
				clientctx.NewSynthesizer(primary, nil),
				nil)

			o := pipeline.New(pipeline.Deps{
				Store:    newStore(cfg),
				Contexts: updater,
			})
			return finishStage(o.Contexts(cmd.Context()))
		},
	}

	return cmd
}
