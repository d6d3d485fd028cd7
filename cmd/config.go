package cmd

import (
	"fmt"

	"github.com/khrees2412/jobtrack/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		cfg := application.Config
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, titleStyle.Render("Configuration"))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath)
		if cfg.LogFile != "" {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Log File:"), cfg.LogFile)
		} else {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Log File:"), "✗ Not configured")
		}
		fmt.Fprintf(out, "%s %t\n", labelStyle.Render("Debug:"), cfg.Debug)
		fmt.Fprintf(out, "%s %t\n", labelStyle.Render("No Color:"), cfg.NoColor)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  jobtrack config set --key log_file --value ~/.jobtrack/jobtrack.log
  jobtrack config set --key debug --value true
  jobtrack config set --key database_path --value ~/Dropbox/jobtrack.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || !cmd.Flags().Changed("value") {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("error updating config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration updated: %s\n", key)
		fmt.Fprintln(cmd.OutOrStdout(), hintStyle.Render("Takes effect on the next run."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", fmt.Sprintf("Configuration key %v", config.Keys))
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
