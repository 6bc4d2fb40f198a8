package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/superpresidznt/jarvis/internal/dateutil"
	"github.com/superpresidznt/jarvis/internal/record"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

const whenLayout = "2006-01-02 15:04"

func (a *App) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record tasks, habits, sessions and money",
		Long: `Record the activity reviews are built from.

Examples:
  jarvis add task "Write documentation" --priority high --project Docs
  jarvis add done 12
  jarvis add checkin Read
  jarvis add focus --minutes 50 --title "Deep work" --at "2025-03-05 09:00"
  jarvis add expense 42.50 --category Food`,
	}

	cmd.AddCommand(a.addTaskCmd())
	cmd.AddCommand(a.addDoneCmd())
	cmd.AddCommand(a.addCancelCmd())
	cmd.AddCommand(a.addHabitCmd())
	cmd.AddCommand(a.addCheckInCmd())
	cmd.AddCommand(a.addFocusCmd())
	cmd.AddCommand(a.addPomodoroCmd())
	cmd.AddCommand(a.addTransactionCmd(record.Income))
	cmd.AddCommand(a.addTransactionCmd(record.Expense))
	cmd.AddCommand(a.addBudgetCmd())
	return cmd
}

func (a *App) addTaskCmd() *cobra.Command {
	var priority, project string
	cmd := &cobra.Command{
		Use:   "task <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := record.NewTask(args[0], priority, project, a.now())
			if err != nil {
				return err
			}
			if err := a.store.CreateTask(cmd.Context(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s [%s]\n", t.ID, t.Title, t.Priority)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority: low, medium, high or urgent")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	return cmd
}

func (a *App) addDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.CompleteTask(cmd.Context(), id, a.now()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d\n", id)
			return nil
		},
	}
}

func (a *App) addCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <task-id>",
		Short: "Cancel a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.CancelTask(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled task #%d\n", id)
			return nil
		},
	}
}

func (a *App) addHabitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "habit <name>",
		Short: "Start tracking a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := record.NewHabit(args[0], a.now())
			if err != nil {
				return err
			}
			if err := a.store.CreateHabit(cmd.Context(), h); err != nil {
				return fmt.Errorf("creating habit: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tracking habit #%d: %s\n", h.ID, h.Name)
			return nil
		},
	}
}

func (a *App) addCheckInCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "checkin <habit>",
		Short: "Check in a habit for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := a.parseWhen(at)
			if err != nil {
				return err
			}
			h, err := a.store.FindHabit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if h == nil {
				return fmt.Errorf("habit %q: %w", args[0], record.ErrNotFound)
			}
			if err := a.store.CheckInHabit(cmd.Context(), h.ID, when); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Checked in %s on %s\n", h.Name, textfmt.Date(when))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "When (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\", default: now)")
	return cmd
}

func (a *App) addFocusCmd() *cobra.Command {
	var (
		minutes int
		title   string
		taskID  int64
		at      string
		status  string
	)
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Record a focus session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			when, err := a.parseWhen(at)
			if err != nil {
				return err
			}
			st, err := record.ParseSessionStatus(status)
			if err != nil {
				return err
			}
			f, err := record.NewFocusSession(title, optionalID(taskID), when, minutes, st)
			if err != nil {
				return err
			}
			if err := a.store.CreateFocusSession(cmd.Context(), f); err != nil {
				return fmt.Errorf("creating focus session: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s focus session #%d\n", textfmt.Duration(f.DurationMinutes), f.ID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Length in minutes (required)")
	cmd.Flags().StringVar(&title, "title", "", "What you worked on")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Linked task ID")
	cmd.Flags().StringVar(&at, "at", "", "Start time (\"YYYY-MM-DD HH:MM\", default: now)")
	cmd.Flags().StringVar(&status, "status", "completed", "Status: completed or interrupted")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func (a *App) addPomodoroCmd() *cobra.Command {
	var (
		minutes int
		taskID  int64
		at      string
		status  string
	)
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Record a pomodoro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			when, err := a.parseWhen(at)
			if err != nil {
				return err
			}
			st, err := record.ParseSessionStatus(status)
			if err != nil {
				return err
			}
			p, err := record.NewPomodoro(optionalID(taskID), when, minutes, st)
			if err != nil {
				return err
			}
			if err := a.store.CreatePomodoro(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating pomodoro: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s pomodoro #%d\n", p.Status, p.ID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 25, "Length in minutes")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Linked task ID")
	cmd.Flags().StringVar(&at, "at", "", "Start time (\"YYYY-MM-DD HH:MM\", default: now)")
	cmd.Flags().StringVar(&status, "status", "completed", "Status: completed or interrupted")
	return cmd
}

func (a *App) addTransactionCmd(kind record.TransactionType) *cobra.Command {
	var category, description, date string
	cmd := &cobra.Command{
		Use:   string(kind) + " <amount>",
		Short: "Record an " + string(kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			when, err := a.parseWhen(date)
			if err != nil {
				return err
			}
			t, err := record.NewTransaction(kind, amount, category, description, when)
			if err != nil {
				return err
			}
			if err := a.store.CreateTransaction(cmd.Context(), t); err != nil {
				return fmt.Errorf("creating transaction: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s in %s\n", t.Type, textfmt.Currency(t.Amount), t.Category)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: Other)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: now)")
	return cmd
}

func (a *App) addBudgetCmd() *cobra.Command {
	var category, from, to string
	cmd := &cobra.Command{
		Use:   "budget <amount>",
		Short: "Set a spending budget",
		Long: `Set a spending budget for a date range. Without --from and --to the
budget covers the current calendar month. Without --category it caps all spending.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}
			start, end := dateutil.MonthRange(a.now().In(loc))
			if from != "" {
				dr, err := dateutil.NewDateRange(from, to, loc)
				if err != nil {
					return err
				}
				start, end = dr.Start, dr.End
			}
			b, err := record.NewBudget(category, amount, start, end)
			if err != nil {
				return err
			}
			if err := a.store.CreateBudget(cmd.Context(), b); err != nil {
				return fmt.Errorf("creating budget: %w", err)
			}
			scope := b.Category
			if scope == "" {
				scope = "all spending"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Budget of %s for %s, %s\n",
				textfmt.Currency(b.Amount), scope, textfmt.DateRange(b.PeriodStart, b.PeriodEnd))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: all spending)")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	return cmd
}

// parseWhen parses "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in the configured
// timezone. A bare date means noon that day. Empty means now.
func (a *App) parseWhen(s string) (time.Time, error) {
	loc, err := a.config.Location()
	if err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return a.now().In(loc), nil
	}
	if t, err := time.ParseInLocation(whenLayout, s, loc); err == nil {
		return t, nil
	}
	day, err := dateutil.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", s)
	}
	return day.Add(12 * time.Hour), nil
}

var errInvalidID = errors.New("invalid task ID")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, s)
	}
	return id, nil
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
