package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/google"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access via OAuth",
		Long: `Run the Google OAuth flow and cache the resulting token.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to be set. The
token is written to the user cache directory and picked up by every
other command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasToken() && !force {
				fmt.Println("Already authorized. Use --force to run the flow again.")
				return nil
			}

			fmt.Printf("Open this URL in your browser and authorize access:\n\n  %s\n\nPaste the authorization code: ", google.GetAuthURL())

			code, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading authorization code: %w", err)
			}

			if err := google.SaveToken(cmd.Context(), strings.TrimSpace(code)); err != nil {
				return fmt.Errorf("exchanging authorization code: %w", err)
			}

			fmt.Println("Token saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Run the flow even when a token already exists")
	return cmd
}
