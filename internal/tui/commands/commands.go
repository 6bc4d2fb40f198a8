// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/superpresidznt/jarvis/internal/review"
)

// Generator produces the reviews the TUI can show.
type Generator interface {
	GenerateWeekly(ctx context.Context) (*review.Report, error)
	GenerateMonthly(ctx context.Context) (*review.Report, error)
}

// ReviewLoadedMsg is sent when a review has been generated.
type ReviewLoadedMsg struct {
	Report *review.Report
}

// ReviewSavedMsg is sent when the current review was archived.
type ReviewSavedMsg struct {
	ID string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadReview generates the review of the given kind. Anything other than
// monthly loads the weekly review.
func LoadReview(ctx context.Context, gen Generator, kind review.PeriodKind) tea.Cmd {
	return func() tea.Msg {
		var (
			r   *review.Report
			err error
		)
		if kind == review.PeriodMonthly {
			r, err = gen.GenerateMonthly(ctx)
		} else {
			r, err = gen.GenerateWeekly(ctx)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ReviewLoadedMsg{Report: r}
	}
}

// SaveReview archives r in repo.
func SaveReview(ctx context.Context, repo review.Repository, r *review.Report, at time.Time) tea.Cmd {
	return func() tea.Msg {
		a := &review.Archived{Report: *r, CreatedAt: at}
		if err := repo.CreateReview(ctx, a); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving review: %w", err)}
		}
		return ReviewSavedMsg{ID: a.ID}
	}
}

// CopyText copies text to the system clipboard.
func CopyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied to clipboard"}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
