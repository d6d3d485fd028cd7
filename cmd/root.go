package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"

	"github.com/khrees2412/jobtrack/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Track your job applications from the terminal",
	Long: `jobtrack keeps a local list of the jobs you are chasing: title, company,
status (Wishlist, Applied, Interview, Offer, Rejected), link and date applied.
Every change is saved immediately.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.WithApp(cmd.Context(), application))
		current = application
		return nil
	},
}

// current is the App opened for the running command, closed when it finishes
var current *app.App

// closeApp runs after every execution, failed ones included
func closeApp() {
	if err := current.Close(); err != nil {
		log.Printf("[WARN] failed to close app: %v", err)
	}
	current = nil
}

func init() {
	cobra.OnFinalize(closeApp)
}

// Execute runs the root command
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		cancel()
		os.Exit(1)
	}
}

// getApp returns the App set up by the root command
func getApp(cmd *cobra.Command) (*app.App, error) {
	a := app.FromContext(cmd.Context())
	if a == nil {
		return nil, app.ErrNotInitialized
	}
	return a, nil
}
