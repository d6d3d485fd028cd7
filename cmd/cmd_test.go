package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/jobtrack/internal/config"
	"github.com/khrees2412/jobtrack/internal/database"
	"github.com/khrees2412/jobtrack/internal/store"
	"github.com/khrees2412/jobtrack/internal/tracker"
	"github.com/khrees2412/jobtrack/pkg/models"
)

// resetFlags clears flag values left over from a previous run of the shared command tree
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and stdin, returning stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return ansi.Strip(out.String()), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)
	return dir
}

func exportJobs(t *testing.T) models.Collection {
	t.Helper()
	out, err := run(t, "", "export")
	require.NoError(t, err)
	var c models.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	return c
}

func TestJobLifecycle(t *testing.T) {
	setupHome(t)

	out, err := run(t, "", "job", "add", "--title", "Backend Engineer", "--company", "Acme", "--date", "2024-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Job added: Backend Engineer at Acme (#1")

	_, err = run(t, "", "job", "add", "--title", "SRE", "--company", "Globex", "--status", "applied", "--url", "https://globex.example/jobs/42")
	require.NoError(t, err)

	jobs := exportJobs(t)
	require.Len(t, jobs, 2)
	assert.Equal(t, models.StatusWishlist, jobs[0].Status)
	assert.Equal(t, "2024-01-15", jobs[0].DateApplied)
	assert.Equal(t, models.StatusApplied, jobs[1].Status)
	assert.Equal(t, time.Now().Format(models.DateLayout), jobs[1].DateApplied)
	assert.NotEqual(t, jobs[0].ID, jobs[1].ID)

	out, err = run(t, "", "job", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "https://globex.example/jobs/42")

	out, err = run(t, "", "job", "edit", "2", "--status", "interview")
	require.NoError(t, err)
	assert.Contains(t, out, "Job updated: SRE at Globex (Interview)")

	edited := exportJobs(t)
	assert.Equal(t, jobs[1].ID, edited[1].ID, "edit keeps id")
	assert.Equal(t, "https://globex.example/jobs/42", edited[1].JobURL, "unset flags keep their values")
	assert.Equal(t, jobs[0], edited[0])

	out, err = run(t, "n\n", "job", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this job?")
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, exportJobs(t), 2)

	out, err = run(t, "y\n", "job", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed job: Backend Engineer at Acme")

	left := exportJobs(t)
	require.Len(t, left, 1)
	assert.Equal(t, edited[1], left[0])
}

func TestJobAddValidation(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "job", "add", "--title", "", "--company", "Acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingRequired)
	assert.Contains(t, err.Error(), validationMessage)

	_, err = run(t, "", "job", "add", "--title", "Dev", "--company", "Acme", "--date", "15/01/2024")
	require.Error(t, err)

	_, err = run(t, "", "job", "add", "--title", "Dev", "--company", "Acme", "--status", "ghosted")
	require.ErrorIs(t, err, models.ErrInvalidStatus)

	assert.Empty(t, exportJobs(t))
}

func TestJobRemoveYesAndUnknown(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "job", "add", "--title", "Dev", "--company", "Acme")
	require.NoError(t, err)

	_, err = run(t, "", "job", "remove", "7", "--yes")
	require.Error(t, err)

	out, err := run(t, "", "job", "rm", "1", "-y")
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you sure")
	assert.Empty(t, exportJobs(t))
}

func TestJobOpen(t *testing.T) {
	setupHome(t)
	var opened []string
	orig := openURL
	openURL = func(u string) error { opened = append(opened, u); return nil }
	defer func() { openURL = orig }()

	_, err := run(t, "", "job", "add", "--title", "Dev", "--company", "Acme", "--url", "https://acme.example/1")
	require.NoError(t, err)
	_, err = run(t, "", "job", "add", "--title", "Ops", "--company", "Initech")
	require.NoError(t, err)

	_, err = run(t, "", "job", "open", "1")
	require.NoError(t, err)
	out, err := run(t, "", "job", "open", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No link saved")
	assert.Equal(t, []string{"https://acme.example/1"}, opened)
}

func TestStatusAndStats(t *testing.T) {
	setupHome(t)

	for _, args := range [][]string{
		{"--title", "A", "--company", "A Co", "--status", "applied"},
		{"--title", "B", "--company", "B Co", "--status", "offer"},
		{"--title", "C", "--company", "C Co"},
	} {
		_, err := run(t, "", append([]string{"job", "add"}, args...)...)
		require.NoError(t, err)
	}

	out, err := run(t, "", "status", "set", "3", "rejected")
	require.NoError(t, err)
	assert.Contains(t, out, "C at C Co is now Rejected")

	out, err = run(t, "", "status", "--filter", "offer")
	require.NoError(t, err)
	assert.Contains(t, out, "B at B Co")
	assert.NotContains(t, out, "A at A Co")

	out, err = run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied: 1 (33.3%)")
	assert.Contains(t, out, "Rejected: 1 (33.3%)")
	assert.Contains(t, out, "Wishlist: 0 (0.0%)")
}

func TestExportImport(t *testing.T) {
	dir := setupHome(t)

	browserExport := `[{"jobTitle":"Dev","company":"Acme","status":"Offer","jobUrl":"","dateApplied":"2024-01-15","id":1705312345678},
		{"jobTitle":"Ops","company":"Initech","status":"Wishlist","jobUrl":"https://initech.example","dateApplied":"2024-01-16","id":1705312345679}]`
	file := filepath.Join(dir, "browser.json")
	require.NoError(t, os.WriteFile(file, []byte(browserExport), 0600))

	out, err := run(t, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 jobs")

	jobs := exportJobs(t)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Dev", jobs[0].JobTitle)
	assert.NotEqual(t, models.ID("1705312345678"), jobs[0].ID)

	out, err = run(t, "", "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "jobTitle: Ops")

	_, err = run(t, "", "export", "--format", "xml")
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"jobTitle":"","company":"X","status":"Applied","id":1}]`), 0600))
	_, err = run(t, "", "import", bad)
	require.ErrorIs(t, err, models.ErrMissingRequired)
	assert.Len(t, exportJobs(t), 2)
}

func TestTUI(t *testing.T) {
	setupHome(t)

	input := strings.Join([]string{
		"a",             // open add form
		"2", "Acme",     // company only
		"s",             // rejected: no title
		"1", "Platform", // fix it
		"3", "offer",
		"s",
		"e 1",
		"1", "Platform Engineer",
		"s",
		"a", "1", "Throwaway", "c", // cancelled form
		"d 1", "y",
		"q",
	}, "\n") + "\n"

	out, err := run(t, input, "tui")
	require.NoError(t, err)
	assert.Contains(t, out, validationMessage)
	assert.Contains(t, out, "✓ Saved")
	assert.Contains(t, out, "✓ Job removed")
	assert.Empty(t, exportJobs(t))
}

func TestTUI_EndOfInputCancelsForm(t *testing.T) {
	setupHome(t)

	_, err := run(t, "a\n1\nHalf", "tui")
	require.NoError(t, err)
	assert.Empty(t, exportJobs(t))
}

func TestRecentActivity(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	jobs := models.Collection{
		{JobTitle: "Old", Company: "A", DateApplied: "2023-12-01", Status: models.StatusApplied},
		{JobTitle: "New", Company: "B", DateApplied: "2024-02-28", Status: models.StatusOffer},
		{JobTitle: "Mid", Company: "C", DateApplied: "2024-02-10", Status: models.StatusApplied},
		{JobTitle: "Bad", Company: "D", DateApplied: "soon"},
	}
	got := recentActivity(jobs, now, 30*24*time.Hour)
	require.Len(t, got, 2)
	assert.Equal(t, "New at B (Offer)", got[0].Description)
	assert.Equal(t, "Mid at C (Applied)", got[1].Description)
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := newPromptConfirmer(strings.NewReader(tt.in), &out).Confirm(context.Background(), "Sure?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, "Sure? [y/N] ", out.String())
	}
}

func TestPromptConfirmer_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := newPromptConfirmer(pr, io.Discard).Confirm(ctx, "Sure?")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, got)
}

func TestTUI_CancelWhileWaiting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		state tracker.State
	}{
		{name: "menu", state: tracker.Closed},
		{name: "form", input: "a\n1\nDraft only\n", state: tracker.Creating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := database.Open(filepath.Join(t.TempDir(), "jobs.db"))
			require.NoError(t, err)
			defer db.Close()
			tr := tracker.Open(context.Background(), store.New(db))

			// stdin stays open with nothing more to read, like an idle terminal
			pr, pw := io.Pipe()
			defer pw.Close()
			var out bytes.Buffer
			s := &session{
				t:      tr,
				prompt: newPromptConfirmer(io.MultiReader(strings.NewReader(tt.input), pr), &out),
				out:    &out,
			}

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- s.run(ctx) }()

			require.Eventually(t, func() bool {
				st, _ := tr.State()
				return st == tt.state
			}, time.Second, 10*time.Millisecond)
			if tt.state == tracker.Creating {
				require.Eventually(t, func() bool { return tr.Draft().JobTitle == "Draft only" }, time.Second, 10*time.Millisecond)
			}
			cancel()

			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(2 * time.Second):
				t.Fatal("tui did not stop after cancel")
			}
			st, _ := tr.State()
			assert.Equal(t, tracker.Closed, st, "form cancelled on exit")
			assert.Empty(t, tr.Snapshot())
		})
	}
}
