// Package tui provides the interactive review viewer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui/commands"
	"github.com/superpresidznt/jarvis/internal/tui/theme"
)

// Tab identifies a viewer page.
type Tab int

const (
	TabOverview Tab = iota
	TabInsights
	TabExport
)

var tabNames = []string{"Overview", "Insights", "Export"}

// Formats cycled through on the export tab.
var exportFormats = []export.Format{export.FormatText, export.FormatMarkdown, export.FormatJSON}

// statusTimeout is how long status messages stay visible.
const statusTimeout = 3 * time.Second

// Options configures the viewer.
type Options struct {
	Theme string
	// Kind is the review loaded on start. Only weekly and monthly are
	// available interactively; anything else means weekly.
	Kind review.PeriodKind
	// Now stamps saved reviews. Nil means time.Now.
	Now func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx  context.Context
	gen  commands.Generator
	repo review.Repository
	now  func() time.Time

	styles *Styles

	// State
	report  *review.Report
	kind    review.PeriodKind
	tab     Tab
	format  int // index into exportFormats
	loading bool
	status  string
	err     error

	viewport viewport.Model
	ready    bool

	// Terminal dimensions
	width  int
	height int
}

// New creates a viewer model.
func New(ctx context.Context, gen commands.Generator, repo review.Repository, opts Options) Model {
	t, err := theme.Load(opts.Theme)
	if err != nil {
		t = &theme.Theme{}
	}
	kind := opts.Kind
	if kind != review.PeriodMonthly {
		kind = review.PeriodWeekly
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		ctx:     ctx,
		gen:     gen,
		repo:    repo,
		now:     now,
		styles:  NewStyles(t),
		kind:    kind,
		loading: true,
	}
}

// Init loads the first review.
func (m Model) Init() tea.Cmd {
	return commands.LoadReview(m.ctx, m.gen, m.kind)
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, gen commands.Generator, repo review.Repository, opts Options) error {
	p := tea.NewProgram(New(ctx, gen, repo, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
