package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wayfinder",
		Short: "Shelf-location and quota companion service for the library discovery UI",
		Long: `Wayfinder maps call numbers to physical shelf locations for the discovery
front-end, highlighting the matching shelves on a floor-plan map.

It also ships operational helpers for the discovery integration: waiting out
API quota resets and filling in localized shelf descriptions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLocateCmd())
	cmd.AddCommand(newQuotaCmd())
	cmd.AddCommand(newTranslateCmd())

	return cmd
}
