package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// videosCmd groups video catalog operations
var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Local video catalog operations",
}

// videosListCmd lists stored videos newest first
var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored videos ordered by published date",
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

		videos, err := svc.ListVideos(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list videos: %w", err)
		}

		if len(videos) == 0 {
			fmt.Println("No videos found in the catalog.")
			return nil
		}

		out, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Printf("Found %d video(s):\n%s\n", len(videos), string(out))
		return nil
	},
}

func init() {
	videosListCmd.Flags().Int("limit", 50, "Maximum number of videos to retrieve")
	videosListCmd.Flags().Int("offset", 0, "Number of videos to skip")

	videosCmd.AddCommand(videosListCmd)
	rootCmd.AddCommand(videosCmd)
}
