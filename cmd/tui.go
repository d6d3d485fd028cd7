package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/khrees2412/jobtrack/internal/tracker"
	"github.com/khrees2412/jobtrack/internal/view"
	"github.com/khrees2412/jobtrack/pkg/models"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long:  "Launch the interactive terminal interface for browsing, adding, editing and removing jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		s := &session{
			t:      application.Tracker,
			prompt: newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout()),
			out:    cmd.OutOrStdout(),
		}
		return s.run(cmd.Context())
	},
}

// session drives the tracker from line-based terminal input
type session struct {
	t      *tracker.Tracker
	prompt *promptConfirmer
	out    io.Writer
}

// draftFields lists the form fields in menu order
var draftFields = []struct{ key, field, label string }{
	{"1", "jobTitle", "Job title"},
	{"2", "company", "Company"},
	{"3", "status", "Status (Wishlist, Applied, Interview, Offer, Rejected)"},
	{"4", "jobUrl", "Job URL"},
	{"5", "dateApplied", "Date applied (YYYY-MM-DD)"},
}

func (s *session) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		s.render()
		fmt.Fprintln(s.out, "\n[a] add  [e N] edit  [d N] delete  [o N] open link  [q] quit")

		line, err := s.prompt.ask(ctx, "> ")
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		action, ref, _ := strings.Cut(line, " ")
		ref = strings.TrimSpace(ref)
		switch strings.ToLower(action) {
		case "q", "quit":
			return nil
		case "a", "add":
			if err := s.t.OpenCreate(); err != nil {
				s.fail(err)
				continue
			}
			if err := s.form(ctx, "Add Job"); err != nil {
				return err
			}
		case "e", "edit":
			id, err := s.t.Resolve(ref)
			if err != nil {
				s.fail(err)
				continue
			}
			if err := s.t.OpenEdit(id); err != nil {
				s.fail(err)
				continue
			}
			if err := s.form(ctx, "Edit Job"); err != nil {
				return err
			}
		case "d", "delete":
			id, err := s.t.Resolve(ref)
			if err != nil {
				s.fail(err)
				continue
			}
			deleted, err := s.t.Delete(ctx, id, s.prompt)
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				s.fail(err)
				continue
			}
			if deleted {
				fmt.Fprintln(s.out, "✓ Job removed")
			}
		case "o", "open":
			rec, err := resolveRecord(s.t, ref)
			if err != nil {
				s.fail(err)
				continue
			}
			if rec.JobURL == "" {
				fmt.Fprintln(s.out, "No link saved for this job")
				continue
			}
			if err := openURL(rec.JobURL); err != nil {
				s.fail(err)
			}
		case "":
		default:
			fmt.Fprintln(s.out, "Invalid choice")
		}
	}
}

func (s *session) render() {
	fmt.Fprintln(s.out, "\n"+titleStyle.Render("JOB TRACKER"))
	fmt.Fprintln(s.out, view.Summary(s.t.Stats()))
	fmt.Fprintln(s.out, view.Table(s.t.Snapshot()))
}

// form edits the open draft until it is saved or cancelled.
// End of input or a cancelled ctx cancels the form.
func (s *session) form(ctx context.Context, title string) error {
	for {
		fmt.Fprintln(s.out, "\n"+view.Draft(title, s.t.Draft()))
		fmt.Fprintln(s.out, "\n[1-5] change field  [s] save  [c] cancel")

		choice, err := s.prompt.ask(ctx, "> ")
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			s.t.Cancel()
			return nil
		}
		if err != nil {
			s.t.Cancel()
			return err
		}

		switch strings.ToLower(choice) {
		case "s", "save":
			if _, err := s.t.Submit(ctx); err != nil {
				if ctx.Err() != nil {
					s.t.Cancel()
					return nil
				}
				if errors.Is(err, models.ErrMissingRequired) {
					s.fail(errors.New(validationMessage))
					continue
				}
				s.fail(err)
				continue
			}
			fmt.Fprintln(s.out, "✓ Saved")
			return nil
		case "c", "cancel":
			s.t.Cancel()
			return nil
		}

		if err := s.editField(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				s.t.Cancel()
				return nil
			}
			s.fail(err)
		}
	}
}

func (s *session) editField(ctx context.Context, key string) error {
	for _, f := range draftFields {
		if f.key != key {
			continue
		}
		value, err := s.prompt.ask(ctx, f.label+": ")
		if err != nil {
			return err
		}
		if f.field == "dateApplied" {
			if err := validateDate(value); err != nil {
				return err
			}
		}
		return s.t.SetField(f.field, value)
	}
	return fmt.Errorf("invalid choice %q", key)
}

func (s *session) fail(err error) {
	fmt.Fprintln(s.out, errorStyle.Render(err.Error()))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
