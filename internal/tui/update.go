package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui/commands"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.ReviewLoadedMsg:
		m.report = msg.Report
		m.loading = false
		m.err = nil
		m.refreshContent(true)
		return m, nil

	case commands.ReviewSavedMsg:
		return m.setStatus(fmt.Sprintf("Saved review %s", shortID(msg.ID)))

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil

	case commands.ErrMsg:
		zerolog.Ctx(m.ctx).Error().Err(msg.Err).Msg("tui command failed")
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	zerolog.Ctx(m.ctx).Debug().Str("key", msg.String()).Int("tab", int(m.tab)).Msg("key press")

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right", "l":
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case "shift+tab", "left", "h":
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "1", "2", "3":
		return m.switchTab(Tab(msg.String()[0] - '1'))

	case "w":
		return m.load(review.PeriodWeekly)
	case "m":
		return m.load(review.PeriodMonthly)
	case "r":
		return m.load(m.kind)

	case "f":
		m.format = (m.format + 1) % len(exportFormats)
		if m.tab != TabExport {
			return m.switchTab(TabExport)
		}
		m.refreshContent(true)
		return m, nil

	case "y":
		if m.report == nil {
			return m, nil
		}
		text, err := export.Render(m.report, m.currentFormat())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, commands.CopyText(text)

	case "s":
		if m.report == nil || m.repo == nil {
			return m, nil
		}
		return m, commands.SaveReview(m.ctx, m.repo, m.report, m.now())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.refreshContent(true)
	return m, nil
}

func (m Model) load(kind review.PeriodKind) (tea.Model, tea.Cmd) {
	m.kind = kind
	m.loading = true
	m.err = nil
	return m, commands.LoadReview(m.ctx, m.gen, kind)
}

func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.status = s
	return m, commands.ClearStatusAfter(statusTimeout)
}

func (m Model) currentFormat() export.Format {
	return exportFormats[m.format]
}

// resizeViewport fits the viewport between the header and the footer.
func (m *Model) resizeViewport() {
	height := max(m.height-chromeLines, 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.refreshContent(false)
}

// refreshContent re-renders the active tab into the viewport.
func (m *Model) refreshContent(top bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.tabContent())
	if top {
		m.viewport.GotoTop()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
