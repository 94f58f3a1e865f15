package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/chairside/internal/cli"
	"github.com/cloo-solutions/chairside/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chairside",
		Short: "Chairside CLI - command palette from the terminal",
		Long: `Chairside CLI searches the shop's command palette and manages
favorites and recents for the authenticated staff member.

Environment variables:
  CHAIRSIDE_API_KEY   API key for authentication (required)
  CHAIRSIDE_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("api-key", "", "API key for authentication (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.VisitCmd())
	rootCmd.AddCommand(client.NavCmd())
	rootCmd.AddCommand(client.ActionsCmd())
	rootCmd.AddCommand(client.FavoritesCmd())
	rootCmd.AddCommand(client.RecentsCmd())
	rootCmd.AddCommand(client.AuthCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
