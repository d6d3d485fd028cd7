package cmd

import (
	"fmt"

	"github.com/khrees2412/jobtrack/internal/view"
	"github.com/khrees2412/jobtrack/pkg/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View jobs grouped by status",
	Long:  "View your tracked jobs grouped by status, and move a job to a new status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		statuses := models.Statuses
		if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
			st, err := models.ParseStatus(filter)
			if err != nil {
				return err
			}
			statuses = []models.Status{st}
		}

		jobs := application.Tracker.Snapshot()
		if len(jobs) == 0 {
			fmt.Fprintln(out, "No jobs yet. Track one with 'jobtrack job add --title ... --company ...'")
			return nil
		}

		// Group by status, keeping list positions
		groups := map[models.Status][]int{}
		for i, rec := range jobs {
			groups[rec.Status] = append(groups[rec.Status], i)
		}

		fmt.Fprintln(out, titleStyle.Render("Your Applications"))
		shown := 0
		for _, st := range statuses {
			idx := groups[st]
			if len(idx) == 0 {
				continue
			}
			fmt.Fprintf(out, "\n%s (%d)\n", view.Status(st), len(idx))
			for _, i := range idx {
				rec := jobs[i]
				fmt.Fprintf(out, "  • %s at %s\n", rec.JobTitle, rec.Company)
				fmt.Fprintf(out, "    %s %d | Applied: %s\n", labelStyle.Render("#"), i+1, rec.DateApplied)
				shown++
			}
		}
		if shown == 0 {
			fmt.Fprintf(out, "No jobs with status '%s'\n", statuses[0])
			return nil
		}

		fmt.Fprintf(out, "\n%s %d\n", labelStyle.Render("Total:"), shown)
		return nil
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set <job> <status>",
	Short: "Move a job to a new status",
	Args:  cobra.ExactArgs(2),
	Example: `  jobtrack status set 1 interview
  jobtrack status set 0190a1b2 rejected`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		t := application.Tracker

		id, err := t.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := t.OpenEdit(id); err != nil {
			return err
		}
		defer t.Cancel()

		if err := t.SetField("status", args[1]); err != nil {
			return err
		}
		rec, err := t.Submit(cmd.Context())
		if err != nil {
			return submitError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s at %s is now %s\n", rec.JobTitle, rec.Company, view.Status(rec.Status))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.AddCommand(setStatusCmd)

	statusCmd.Flags().String("filter", "", "Only show one status (wishlist, applied, interview, offer, rejected)")
}
