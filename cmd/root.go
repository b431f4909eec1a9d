package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytcatalog",
	Short: "Mirror YouTube channel catalogs into PostgreSQL",
	Long: `ytcatalog keeps a local PostgreSQL mirror of YouTube channel catalogs.

Each sync pass resolves a channel ID or @handle, fetches the channel's
uploads, and reconciles them against the local catalog. Re-running a sync
is always safe: existing videos are updated in place, new ones created.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
