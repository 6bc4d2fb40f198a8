package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/superpresidznt/jarvis/internal/config"
	"github.com/superpresidznt/jarvis/internal/logging"
	"github.com/superpresidznt/jarvis/internal/record"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// Store is everything the CLI reads and writes.
type Store interface {
	review.Querier
	review.Repository

	CreateTask(ctx context.Context, t *record.Task) error
	CompleteTask(ctx context.Context, id int64, at time.Time) error
	CancelTask(ctx context.Context, id int64) error
	CreateHabit(ctx context.Context, h *record.Habit) error
	FindHabit(ctx context.Context, name string) (*record.Habit, error)
	CheckInHabit(ctx context.Context, habitID int64, at time.Time) error
	CreateFocusSession(ctx context.Context, f *record.FocusSession) error
	CreatePomodoro(ctx context.Context, p *record.Pomodoro) error
	CreateTransaction(ctx context.Context, t *record.Transaction) error
	CreateBudget(ctx context.Context, b *record.Budget) error
}

// App holds the CLI application state.
type App struct {
	store  Store
	config *config.Config
	root   *cobra.Command
	now    func() time.Time
	debug  bool // Enable debug logging
	log    *logging.Logger
}

// NewApp creates a new CLI application with the given store and config.
func NewApp(store Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "jarvis",
		Short: "Personal productivity tracker with periodic reviews",
		Long: `Jarvis tracks tasks, habits, focus sessions, pomodoros and money,
and turns them into weekly, monthly or custom reviews with insights.

Run without arguments to open the interactive review viewer.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), gen, a.store, tui.Options{Theme: a.config.UI.Theme, Now: a.now})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentPreRunE = a.setup
	a.root.PersistentPostRunE = a.teardown

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.reviewCmd())
	a.root.AddCommand(a.reviewsCmd())
	a.root.AddCommand(a.addCmd())

	return a
}

// setup opens the debug log and applies the color mode before any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	l, err := logging.New(a.debug)
	if err != nil {
		return err
	}
	a.log = l
	cmd.SetContext(l.WithContext(cmd.Context()))
	applyColorMode(a.config.UI.Color)
	return nil
}

func (a *App) teardown(_ *cobra.Command, _ []string) error {
	return a.log.Close()
}

// generator builds a review generator from the configured timezone and thresholds.
func (a *App) generator() (*review.Generator, error) {
	loc, err := a.config.Location()
	if err != nil {
		return nil, err
	}
	thresholds, err := a.config.Thresholds()
	if err != nil {
		return nil, err
	}
	return review.NewGenerator(a.store, review.Options{
		Location:   loc,
		Now:        a.now,
		Thresholds: &thresholds,
	}), nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jarvis %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetNow overrides the clock used to stamp records and pick review periods, for tests.
func (a *App) SetNow(now func() time.Time) {
	a.now = now
}

// SetArgs overrides os.Args, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx available to commands.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
