package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Logs in with the configured credentials and verifies the session works.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		client := createClient(ctx, cfg)
		if !client.ValidateSession(ctx) {
			fmt.Fprintln(os.Stderr, "session check failed: could not access authenticated pages")
			os.Exit(1)
		}
		fmt.Printf("logged in as %s\n", client.Username)
	},
}
