package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/jobtrack/internal/tracker"
	"github.com/khrees2412/jobtrack/internal/view"
	"github.com/khrees2412/jobtrack/pkg/models"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// validationMessage is shown when a save is rejected for missing fields
const validationMessage = "Please fill in job title and company"

// formFlags maps command flags to draft fields
var formFlags = []struct{ flag, field, usage string }{
	{"title", "jobTitle", "Job title"},
	{"company", "company", "Company name"},
	{"status", "status", "Status (Wishlist, Applied, Interview, Offer, Rejected)"},
	{"url", "jobUrl", "Link to the job posting"},
	{"date", "dateApplied", "Date applied (YYYY-MM-DD)"},
}

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage tracked jobs",
	Long:  "Add, list, view, edit, open and remove tracked jobs",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Track a new job",
	Example: `  jobtrack job add --title "Backend Engineer" --company Acme
  jobtrack job add --title SRE --company Globex --status applied --url https://globex.example/jobs/42 --date 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		t := application.Tracker

		if err := t.OpenCreate(); err != nil {
			return err
		}
		defer t.Cancel()

		if err := applyFormFlags(cmd, t); err != nil {
			return err
		}

		rec, err := t.Submit(cmd.Context())
		if err != nil {
			return submitError(err)
		}

		pos := t.Snapshot().IndexOf(rec.ID) + 1
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Job added: %s at %s (#%d, ID: %s)\n", rec.JobTitle, rec.Company, pos, rec.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked jobs with summary counters",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		var keep func(models.JobRecord) bool
		if s, _ := cmd.Flags().GetString("status"); s != "" {
			st, err := models.ParseStatus(s)
			if err != nil {
				return err
			}
			keep = func(r models.JobRecord) bool { return r.Status == st }
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("JOB TRACKER"))
		fmt.Fprintln(out, view.Summary(application.Tracker.Stats()))
		fmt.Fprintln(out, view.TableWhere(application.Tracker.Snapshot(), keep))
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job>",
	Short: "Show details of a job (by #, ID or ID prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		rec, err := resolveRecord(application.Tracker, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), view.Record(rec))
		return nil
	},
}

var editJobCmd = &cobra.Command{
	Use:   "edit <job>",
	Short: "Edit a job; only the flags given are changed",
	Example: `  jobtrack job edit 2 --status interview
  jobtrack job edit 0190a1b2 --url https://acme.example/jobs/7 --date 2024-02-01`,
	Args: cobra.ExactArgs(1),
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

		if err := applyFormFlags(cmd, t); err != nil {
			return err
		}
		rec, err := t.Submit(cmd.Context())
		if err != nil {
			return submitError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Job updated: %s at %s (%s)\n", rec.JobTitle, rec.Company, rec.Status)
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:     "remove <job>",
	Aliases: []string{"rm"},
	Short:   "Remove a job (asks for confirmation)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		t := application.Tracker

		rec, err := resolveRecord(t, args[0])
		if err != nil {
			return err
		}

		var confirmer tracker.Confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirmer = tracker.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
		}

		deleted, err := t.Delete(cmd.Context(), rec.ID, confirmer)
		if err != nil {
			return fmt.Errorf("remove job: %w", err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed job: %s at %s\n", rec.JobTitle, rec.Company)
		return nil
	},
}

var openJobCmd = &cobra.Command{
	Use:   "open <job>",
	Short: "Open the job posting link in your browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		rec, err := resolveRecord(application.Tracker, args[0])
		if err != nil {
			return err
		}
		if rec.JobURL == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No link saved for %s at %s\n", rec.JobTitle, rec.Company)
			return nil
		}
		if err := openURL(rec.JobURL); err != nil {
			return fmt.Errorf("open %s: %w", rec.JobURL, err)
		}
		return nil
	},
}

// openURL is swapped in tests
var openURL = browser.OpenURL

func resolveRecord(t *tracker.Tracker, ref string) (models.JobRecord, error) {
	id, err := t.Resolve(ref)
	if err != nil {
		return models.JobRecord{}, err
	}
	rec, ok := t.Snapshot().Find(id)
	if !ok {
		return models.JobRecord{}, fmt.Errorf("%w: %s", tracker.ErrNotFound, ref)
	}
	return rec, nil
}

// applyFormFlags copies the flags the user set into the open form
func applyFormFlags(cmd *cobra.Command, t *tracker.Tracker) error {
	for _, f := range formFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value, _ := cmd.Flags().GetString(f.flag)
		if f.field == "dateApplied" {
			if err := validateDate(value); err != nil {
				return err
			}
		}
		if err := t.SetField(f.field, value); err != nil {
			return err
		}
	}
	return nil
}

func validateDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return nil
}

func submitError(err error) error {
	if errors.Is(err, models.ErrMissingRequired) {
		return fmt.Errorf("%s: %w", validationMessage, err)
	}
	return fmt.Errorf("save job: %w", err)
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(editJobCmd)
	jobCmd.AddCommand(removeJobCmd)
	jobCmd.AddCommand(openJobCmd)

	// Form flags for add and edit
	for _, c := range []*cobra.Command{addJobCmd, editJobCmd} {
		for _, f := range formFlags {
			c.Flags().String(f.flag, "", f.usage)
		}
	}

	listJobsCmd.Flags().String("status", "", "Only show jobs with this status")
	removeJobCmd.Flags().BoolP("yes", "y", false, "Confirm the deletion without prompting")
}
