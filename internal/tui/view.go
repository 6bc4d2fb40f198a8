package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

// chromeLines is the height of everything around the viewport:
// header, tabs, rule and footer.
const chromeLines = 4

const labelWidth = 22

const helpText = "tab switch · w weekly · m monthly · f format · y copy · s save · q quit"

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.renderTabs(),
		m.styles.Rule.Render(strings.Repeat("─", max(m.width, 0))),
		m.viewport.View(),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Jarvis · " + m.kind.Title() + " Review")
	if m.report == nil {
		return title
	}
	period := m.styles.Subtitle.Render(textfmt.DateRange(m.report.Period.Start, m.report.Period.End))
	gap := m.width - ansi.StringWidth(title) - ansi.StringWidth(period)
	if gap < 2 {
		return title
	}
	return title + strings.Repeat(" ", gap) + period
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == TabExport {
			label += " (" + string(m.currentFormat()) + ")"
		}
		if Tab(i) == m.tab {
			tabs[i] = m.styles.TabActive.Render(label)
		} else {
			tabs[i] = m.styles.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	var line string
	switch {
	case m.err != nil:
		line = m.styles.Error.Render("Error: " + m.err.Error())
	case m.loading:
		line = m.styles.Status.Render("Generating review...")
	case m.status != "":
		line = m.styles.Status.Render(m.status)
	default:
		line = m.styles.Help.Render(helpText)
	}
	return ansi.Truncate(line, m.width, "…")
}

// tabContent renders the body of the active tab.
func (m Model) tabContent() string {
	if m.report == nil {
		return m.styles.Muted.Render("No review loaded yet.")
	}
	switch m.tab {
	case TabInsights:
		return m.insightsContent()
	case TabExport:
		out, err := export.Render(m.report, m.currentFormat())
		if err != nil {
			return m.styles.Error.Render(err.Error())
		}
		return out
	default:
		return m.overviewContent()
	}
}

func (m Model) overviewContent() string {
	r := m.report
	var b strings.Builder

	m.section(&b, "Tasks")
	m.row(&b, "Completed", fmt.Sprintf("%d of %d created", r.Tasks.Completed, r.Tasks.Created))
	m.row(&b, "Completion rate", fmt.Sprintf("%d%%", r.Tasks.CompletionRatePercent))
	m.row(&b, "Avg. days to finish", fmt.Sprintf("%.1f", r.Tasks.AverageLatencyDays))

	m.section(&b, "Habits")
	m.row(&b, "Check-ins", fmt.Sprintf("%d", r.Habits.TotalCompletions))
	m.row(&b, "Completion rate", fmt.Sprintf("%d%%", r.Habits.CompletionRatePercent))
	m.row(&b, "Streaks", fmt.Sprintf("avg %d days, best %d days", r.Habits.AverageStreakDays, r.Habits.BestStreakDays))
	for _, h := range r.Habits.ByHabit {
		m.row(&b, "  "+h.Name, fmt.Sprintf("%d check-ins, %d-day streak", h.Completions, h.Streak))
	}

	m.section(&b, "Focus")
	m.row(&b, "Sessions", fmt.Sprintf("%d (%s)", r.Focus.TotalSessions, textfmt.Duration(r.Focus.TotalMinutes)))
	m.row(&b, "Average session", textfmt.Duration(r.Focus.AverageSessionLengthMinutes))
	m.row(&b, "Peak hours", hoursOrDash(r.Focus.MostProductiveHours))
	for _, t := range r.Focus.ByTask {
		m.row(&b, "  "+t.TaskName, textfmt.Duration(t.Minutes))
	}

	m.section(&b, "Pomodoro")
	m.row(&b, "Pomodoros", fmt.Sprintf("%d (%s)", r.Pomodoro.TotalPomodoros, textfmt.Duration(r.Pomodoro.TotalMinutes)))
	m.row(&b, "Completion rate", fmt.Sprintf("%d%%", r.Pomodoro.CompletionRatePercent))
	m.row(&b, "Per day", fmt.Sprintf("%.1f", r.Pomodoro.AveragePerDay))

	m.section(&b, "Finance")
	m.row(&b, "Income", textfmt.Currency(r.Finance.TotalIncome))
	m.row(&b, "Expenses", textfmt.Currency(r.Finance.TotalExpenses))
	m.row(&b, "Net cash flow", textfmt.Currency(r.Finance.NetCashFlow))
	m.row(&b, "Budget adherence", fmt.Sprintf("%d%%", r.Finance.BudgetAdherencePercent))

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) insightsContent() string {
	var b strings.Builder
	textWidth := max(m.width-6, 20)
	wrap := lipgloss.NewStyle().Width(textWidth)

	for i, in := range m.report.Insights {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Badge(in.Type).Render(badgeLabel(in.Type)))
		b.WriteString(" ")
		b.WriteString(m.styles.Category.Render(in.Category))
		b.WriteString("\n")
		b.WriteString(indent(wrap.Render(in.Message), "  "))
		b.WriteString("\n")
		if in.Recommendation != "" {
			b.WriteString(indent(m.styles.Muted.Render(wrap.Render("➜ "+in.Recommendation)), "  "))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Section.Render(strings.ToUpper(title)))
	b.WriteString("\n")
}

func (m Model) row(b *strings.Builder, label, value string) {
	label = ansi.Truncate(label, labelWidth-1, "…")
	pad := strings.Repeat(" ", labelWidth-ansi.StringWidth(label))
	b.WriteString("  ")
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString(pad)
	b.WriteString(m.styles.Value.Render(value))
	b.WriteString("\n")
}

func badgeLabel(t review.InsightType) string {
	switch t {
	case review.InsightPositive:
		return "WIN"
	case review.InsightImprovement:
		return "FOCUS"
	default:
		return "NOTE"
	}
}

func hoursOrDash(hours []int) string {
	if len(hours) == 0 {
		return "-"
	}
	return textfmt.Hours(hours)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
