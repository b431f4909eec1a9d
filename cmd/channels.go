package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// channelsCmd groups channel catalog operations
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Local channel catalog operations",
}

// channelsListCmd lists stored channels
var channelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, pool, _, err := newCatalogService(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		channels, err := svc.ListChannels(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		if len(channels) == 0 {
			fmt.Println("No channels found in the catalog.")
			return nil
		}

		out, err := json.MarshalIndent(channels, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Printf("Found %d channel(s):\n%s\n", len(channels), string(out))
		return nil
	},
}

func init() {
	channelsListCmd.Flags().Int("limit", 50, "Maximum number of channels to retrieve")
	channelsListCmd.Flags().Int("offset", 0, "Number of channels to skip")

	channelsCmd.AddCommand(channelsListCmd)
	rootCmd.AddCommand(channelsCmd)
}
