package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/khrees2412/jobtrack/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all jobs to stdout",
	Example: `  jobtrack export > jobs.json
  jobtrack export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return writeJobs(cmd.OutOrStdout(), application.Tracker.Snapshot(), format)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append jobs from a JSON export",
	Long: `Append jobs from a JSON array of jobs, such as 'jobtrack export' output or the
value the browser tracker kept under jobTrackerData. Every job gets a new ID.
If any job lacks a title or company nothing is imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading import file: %w", err)
		}
		records, err := readJobs(data)
		if err != nil {
			return err
		}

		n, err := application.Tracker.Import(cmd.Context(), records)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d jobs\n", n)
		return nil
	},
}

func writeJobs(w io.Writer, jobs models.Collection, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(jobs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: use json or yaml", format)
	}
}

func readJobs(data []byte) ([]models.JobRecord, error) {
	var records []models.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	return records, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
}
