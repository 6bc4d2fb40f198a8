package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Rule        lipgloss.Style

	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style

	Category lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles creates styles from the given theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Foreground(p.FgMuted),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Panel).
			Padding(0, 1),
		Rule: lipgloss.NewStyle().Foreground(p.Panel),

		Section: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Label:   lipgloss.NewStyle().Foreground(p.FgMuted),
		Value:   lipgloss.NewStyle().Foreground(p.Fg),
		Muted:   lipgloss.NewStyle().Foreground(p.FgMuted).Italic(true),

		Category: lipgloss.NewStyle().Bold(true).Foreground(p.Fg),
		Status:   lipgloss.NewStyle().Foreground(p.Warning),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(p.Improvement),
		Help:     lipgloss.NewStyle().Foreground(p.FgMuted),
	}
}

// Badge returns the style for an insight type marker.
func (s *Styles) Badge(t review.InsightType) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch t {
	case review.InsightPositive:
		return base.Foreground(s.palette.Positive).Background(s.palette.PositiveBg)
	case review.InsightImprovement:
		return base.Foreground(s.palette.Improvement).Background(s.palette.ImprovementBg)
	default:
		return base.Foreground(s.palette.Neutral).Background(s.palette.NeutralBg)
	}
}
