package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stillwaters/ytcatalog/internal/config"
)

// configCmd groups configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ytcatalog configuration",
}

// configInitCmd creates the configuration file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new configuration file",
	Long:  `Create ~/.ytcatalog/config.yaml with example values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, _ := cmd.Flags().GetString("database-url")

		if err := config.InitConfig(databaseURL); err != nil {
			return err
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration file created: %s\n", path)
		return nil
	},
}

// configPathCmd prints the configuration file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("database-url", "", "Database connection URL to write into the config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
