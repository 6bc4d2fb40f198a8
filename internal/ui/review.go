package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/superpresidznt/jarvis/internal/dateutil"
	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/llm"
	"github.com/superpresidznt/jarvis/internal/review"
)

// reviewOptions are the output flags shared by the review subcommands.
type reviewOptions struct {
	format  string
	out     string
	save    bool
	copy    bool
	coach   bool
	goals   bool
	noColor bool
}

func (o *reviewOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text, markdown or json")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the review to a file instead of stdout")
	cmd.Flags().BoolVar(&o.save, "save", false, "Archive the review for later reading")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the rendered review to the clipboard")
	cmd.Flags().BoolVar(&o.coach, "coach", false, "Ask the configured LLM for a coaching summary")
	cmd.Flags().BoolVar(&o.goals, "goals", false, "Ask the configured LLM for goals for the next period")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

func (a *App) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Generate a productivity review",
		Long: `Generate a review of your tasks, habits, focus time, pomodoros and
finances over a period, with insights on what went well and what to improve.

Examples:
  jarvis review weekly
  jarvis review monthly --format markdown --out march.md
  jarvis review custom --from 2025-03-01 --to 2025-03-15 --save`,
	}

	cmd.AddCommand(a.reviewWeeklyCmd())
	cmd.AddCommand(a.reviewMonthlyCmd())
	cmd.AddCommand(a.reviewCustomCmd())
	return cmd
}

func (a *App) reviewWeeklyCmd() *cobra.Command {
	var opts reviewOptions
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Review the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			r, err := gen.GenerateWeekly(cmd.Context())
			if err != nil {
				return err
			}
			return a.emitReview(cmd, r, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *App) reviewMonthlyCmd() *cobra.Command {
	var opts reviewOptions
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Review the current calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			r, err := gen.GenerateMonthly(cmd.Context())
			if err != nil {
				return err
			}
			return a.emitReview(cmd, r, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *App) reviewCustomCmd() *cobra.Command {
	var (
		opts reviewOptions
		from string
		to   string
	)
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Review an arbitrary date range",
		Long: `Review an arbitrary date range. Both dates are inclusive and are
interpreted in the configured timezone.

Example:
  jarvis review custom --from 2025-03-01 --to 2025-03-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			dr, err := dateutil.NewDateRange(from, to, gen.Location())
			if err != nil {
				return err
			}
			r, err := gen.GenerateCustom(cmd.Context(), dr.Start, dr.End)
			if err != nil {
				return err
			}
			return a.emitReview(cmd, r, &opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD, default: same as --from)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

// emitReview prints, saves, copies and writes r as requested by opts.
func (a *App) emitReview(cmd *cobra.Command, r *review.Report, opts *reviewOptions) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)
	w := cmd.OutOrStdout()

	if opts.noColor {
		DisableColor()
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var (
		narrative string
		goals     []llm.Goal
	)
	if opts.coach || opts.goals {
		coach, err := a.coach()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, coachTimeout)
		defer cancel()
		if opts.coach {
			if narrative, err = coach.NarrateReview(ctx, r); err != nil {
				return fmt.Errorf("coaching review: %w", err)
			}
		}
		if opts.goals {
			if goals, err = coach.SuggestGoals(ctx, r); err != nil {
				return fmt.Errorf("suggesting goals: %w", err)
			}
		}
	}

	rendered, err := export.Render(r, format)
	if err != nil {
		return err
	}

	switch {
	case opts.out != "":
		if err := os.WriteFile(opts.out, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing review: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Wrote %s review to %s\n", format, opts.out)
	case format == export.FormatText:
		printReport(w, r)
	default:
		_, _ = fmt.Fprint(w, rendered)
	}

	if narrative != "" && format != export.FormatJSON {
		_, _ = fmt.Fprintf(w, "\n%s\n", formatHeader("  COACH"))
		PrintInsightWrapped(w, narrative, min(termWidth(), 100))
	}
	if len(goals) > 0 && format != export.FormatJSON {
		printGoals(w, goals)
	}

	if opts.copy {
		if err := clipboard.WriteAll(rendered); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		_, _ = fmt.Fprintln(w, formatMuted("Copied to clipboard."))
	}

	if opts.save {
		archived := &review.Archived{Report: *r, Narrative: narrative, CreatedAt: a.now()}
		if opts.out != "" {
			at := a.now()
			archived.ExportedAt = &at
		}
		if err := a.store.CreateReview(ctx, archived); err != nil {
			return fmt.Errorf("saving review: %w", err)
		}
		log.Debug().Str("id", archived.ID).Msg("review saved")
		_, _ = fmt.Fprintf(w, "Saved review %s\n", shortID(archived.ID))
	}
	return nil
}

const coachTimeout = 2 * time.Minute

// coach builds a Coach on the configured LLM provider.
func (a *App) coach() (*llm.Coach, error) {
	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return llm.NewCoach(client), nil
}

// shortID returns the first eight characters of an archived review ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
