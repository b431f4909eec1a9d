package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// syncCmd runs one reconciliation pass for a channel
var syncCmd = &cobra.Command{
	Use:   "sync [CHANNEL]",
	Short: "Sync a YouTube channel's videos into the local catalog",
	Long: `Sync fetches a channel's uploads from the YouTube Data API and
reconciles them against the local catalog. CHANNEL is either a native
channel ID (UC...) or an @handle.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		svc, pool, cfg, err := newCatalogService(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if !cfg.SyncEnabled() {
			return fmt.Errorf("video sync is disabled: no youtube_api_key configured")
		}

		result, err := svc.SyncChannel(ctx, args[0])
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
