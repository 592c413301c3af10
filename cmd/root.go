package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxpilot application
var rootCmd = &cobra.Command{
	Use:   "inboxpilot",
	Short: "Triages a Gmail inbox with an LLM pipeline",
	Long: `inboxpilot fetches recent Gmail messages, classifies them with an LLM,
archives invoice attachments, maintains per-client context records,
drafts replies to client email and mirrors categories as Gmail labels.

Every stage persists its output as a JSON artifact under the work
directory, so stages can be re-run individually or together as the
full pipeline (the default).`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		setupLogging()
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxpilot version %s\n" .Version}}`)

	// If no subcommand is provided, run the full pipeline by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "run")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newInvoicesCmd())
	rootCmd.AddCommand(newContextsCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
