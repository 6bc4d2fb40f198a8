package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

func (a *App) reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Manage saved reviews",
		Long: `List, show, export and delete reviews saved with "jarvis review --save".

Review IDs can be shortened to any unique prefix.`,
	}

	cmd.AddCommand(a.reviewsListCmd())
	cmd.AddCommand(a.reviewsShowCmd())
	cmd.AddCommand(a.reviewsExportCmd())
	cmd.AddCommand(a.reviewsDeleteCmd())
	return cmd
}

func (a *App) reviewsListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reviews, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reviews, err := a.store.ListReviews(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(reviews) == 0 {
				_, _ = fmt.Fprintln(w, "No saved reviews.")
				return nil
			}
			for _, r := range reviews {
				exported := ""
				if r.ExportedAt != nil {
					exported = formatMuted(" (exported)")
				}
				_, _ = fmt.Fprintf(w, "%s  %-8s %s  %d insights%s\n",
					shortID(r.ID),
					r.Report.Period.Kind,
					textfmt.DateRange(r.Report.Period.Start, r.Report.Period.End),
					len(r.Report.Insights),
					exported,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of reviews to list (0 for all)")
	return cmd
}

func (a *App) reviewsShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := a.findReview(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if f == export.FormatText {
				printReport(w, &archived.Report)
			} else {
				rendered, err := export.Render(&archived.Report, f)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(w, rendered)
			}
			if archived.Narrative != "" && f != export.FormatJSON {
				_, _ = fmt.Fprintf(w, "\n%s\n", formatHeader("  COACH"))
				PrintInsightWrapped(w, archived.Narrative, min(termWidth(), 100))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown or json")
	return cmd
}

func (a *App) reviewsExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved review to a file",
		Long: `Export a saved review to a file. Without --out the file is named
after the review period, e.g. weekly-2025-03-02.md.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := a.findReview(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			rendered, err := export.Render(&archived.Report, f)
			if err != nil {
				return err
			}
			if out == "" {
				out = exportFileName(&archived.Report, f)
			}
			if err := os.WriteFile(out, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("writing review: %w", err)
			}
			if err := a.store.MarkReviewExported(cmd.Context(), archived.ID, a.now()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported review %s to %s\n", shortID(archived.ID), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: text, markdown or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func (a *App) reviewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := a.findReview(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteReview(cmd.Context(), archived.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted review %s\n", shortID(archived.ID))
			return nil
		},
	}
}

var errReviewNotFound = errors.New("review not found")

func (a *App) findReview(cmd *cobra.Command, id string) (*review.Archived, error) {
	archived, err := a.store.GetReview(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if archived == nil {
		return nil, fmt.Errorf("%w: %s", errReviewNotFound, id)
	}
	return archived, nil
}

// exportFileName names an export after its period kind and start day.
func exportFileName(r *review.Report, f export.Format) string {
	return fmt.Sprintf("%s-%s%s", r.Period.Kind, r.Period.Start.Format("2006-01-02"), f.Extension())
}
