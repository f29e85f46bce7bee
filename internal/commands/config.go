package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"todos/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage todos configuration",
	Long:  "View and update todos configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			for _, key := range config.Keys() {
				value, _ := globalConfig.Get(key)
				if key == "log_file" && value == "" {
					value = globalConfig.LogPath()
				}
				fmt.Fprintf(out, "%s = %s\n", key, value)
			}
			return nil
		}

		// Show specific config value
		value, err := globalConfig.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set configuration value",
	Long:  "Update a setting in the configuration file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Environment and flags only apply to this run, so edit the file as written
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		old, _ := cfg.Get(args[0])
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s updated: %s -> %s\n", args[0], old, args[1])
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration and data paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "- Config file: %s (%s)\n", configPath, existence(configPath))
		fmt.Fprintf(out, "- Data directory: %s (%s)\n", globalConfig.DataDir, existence(globalConfig.DataDir))
		fmt.Fprintf(out, "- Log file: %s\n", globalConfig.LogPath())
		return nil
	},
}

func existence(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "does not exist"
	}
	return "exists"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathsCmd)
}
