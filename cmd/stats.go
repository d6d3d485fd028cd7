package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/khrees2412/jobtrack/internal/view"
	"github.com/khrees2412/jobtrack/pkg/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View application statistics",
	Long:  "Display the summary counters, a breakdown by status and recent activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stats := application.Tracker.Stats()

		fmt.Fprintln(out, titleStyle.Render("Application Statistics"))
		fmt.Fprintln(out, view.Summary(stats))
		if stats.Total == 0 {
			return nil
		}

		fmt.Fprintf(out, "\n%s\n", labelStyle.Render("Status Breakdown"))
		fmt.Fprintln(out, view.Breakdown(stats))

		// Response rate: of everything sent out, how much got an answer
		sent := stats.Applied + stats.Interview + stats.Offers + stats.Rejected
		if sent > 0 {
			fmt.Fprintf(out, "\n%s\n", labelStyle.Render("Response Rate"))
			fmt.Fprintf(out, "  Responses: %.1f%%\n", float64(stats.Interview+stats.Offers+stats.Rejected)/float64(sent)*100)
			fmt.Fprintf(out, "  Interviews or better: %.1f%%\n", float64(stats.Interview+stats.Offers)/float64(sent)*100)
		}

		recent := recentActivity(application.Tracker.Snapshot(), time.Now(), 30*24*time.Hour)
		if len(recent) > 0 {
			fmt.Fprintf(out, "\n%s\n", labelStyle.Render("Last 30 Days"))
			for _, a := range recent {
				fmt.Fprintf(out, "  %s: %s\n", a.Date.Format("Jan 2"), a.Description)
			}
		}
		return nil
	},
}

// activity is one dated line of the recent activity list
type activity struct {
	Date        time.Time
	Description string
}

// recentActivity lists jobs dated within window of now, newest first.
// Records with unparseable dates are skipped.
func recentActivity(jobs models.Collection, now time.Time, window time.Duration) []activity {
	var out []activity
	for _, rec := range jobs {
		d, err := time.ParseInLocation(models.DateLayout, rec.DateApplied, now.Location())
		if err != nil || now.Sub(d) > window || d.After(now) {
			continue
		}
		out = append(out, activity{
			Date:        d,
			Description: fmt.Sprintf("%s at %s (%s)", rec.JobTitle, rec.Company, rec.Status),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
