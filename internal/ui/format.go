package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/llm"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

const ruleWidth = 60

// printReport writes a colored terminal rendering of r.
func printReport(w io.Writer, r *review.Report) {
	rule := strings.Repeat("─", ruleWidth)

	_, _ = fmt.Fprintf(w, "\n  %s  %s\n", formatHeader(strings.ToUpper(export.Title(r))),
		formatMuted(textfmt.DateRange(r.Period.Start, r.Period.End)))
	_, _ = fmt.Fprintln(w, rule)

	printSection(w, "TASKS", [][2]string{
		{"Completed", fmt.Sprintf("%d of %d created", r.Tasks.Completed, r.Tasks.Created)},
		{"Completion rate", fmt.Sprintf("%d%%", r.Tasks.CompletionRatePercent)},
		{"Avg. days to finish", fmt.Sprintf("%.1f", r.Tasks.AverageLatencyDays)},
	})
	printSection(w, "HABITS", [][2]string{
		{"Check-ins", fmt.Sprintf("%d", r.Habits.TotalCompletions)},
		{"Completion rate", fmt.Sprintf("%d%%", r.Habits.CompletionRatePercent)},
		{"Streaks", fmt.Sprintf("avg %d days, best %d days", r.Habits.AverageStreakDays, r.Habits.BestStreakDays)},
	})
	printSection(w, "FOCUS", [][2]string{
		{"Sessions", fmt.Sprintf("%d (%s)", r.Focus.TotalSessions, textfmt.Duration(r.Focus.TotalMinutes))},
		{"Average session", textfmt.Duration(r.Focus.AverageSessionLengthMinutes)},
		{"Peak hours", hoursOrDash(r.Focus.MostProductiveHours)},
	})
	printSection(w, "POMODORO", [][2]string{
		{"Pomodoros", fmt.Sprintf("%d (%s)", r.Pomodoro.TotalPomodoros, textfmt.Duration(r.Pomodoro.TotalMinutes))},
		{"Completion rate", fmt.Sprintf("%d%%", r.Pomodoro.CompletionRatePercent)},
		{"Per day", fmt.Sprintf("%.1f", r.Pomodoro.AveragePerDay)},
	})
	printSection(w, "FINANCE", [][2]string{
		{"Income", textfmt.Currency(r.Finance.TotalIncome)},
		{"Expenses", textfmt.Currency(r.Finance.TotalExpenses)},
		{"Net cash flow", textfmt.Currency(r.Finance.NetCashFlow)},
		{"Budget adherence", fmt.Sprintf("%d%%", r.Finance.BudgetAdherencePercent)},
	})

	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader("INSIGHTS"))
	_, _ = fmt.Fprintln(w, rule)
	for _, in := range r.Insights {
		marker := formatInsightType(in.Type, insightSymbol(in.Type))
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", marker, formatHeader(in.Category+":"), in.Message)
		if in.Recommendation != "" {
			_, _ = fmt.Fprintf(w, "      %s\n", formatMuted("➜ "+in.Recommendation))
		}
	}
	_, _ = fmt.Fprintln(w)
}

func printSection(w io.Writer, title string, rows [][2]string) {
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(title))
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "    %-20s %s\n", row[0], row[1])
	}
}

// printGoals lists suggested goals under a GOALS header.
func printGoals(w io.Writer, goals []llm.Goal) {
	_, _ = fmt.Fprintf(w, "\n%s\n", formatHeader("  GOALS"))
	for i, g := range goals {
		_, _ = fmt.Fprintf(w, "  %d. %s %s\n", i+1, formatInsight(g.Category+":"), g.Goal)
		if g.Metric != "" {
			_, _ = fmt.Fprintf(w, "     %s\n", formatMuted("measure: "+g.Metric))
		}
	}
}

func hoursOrDash(hours []int) string {
	if len(hours) == 0 {
		return "-"
	}
	return textfmt.Hours(hours)
}

func insightSymbol(t review.InsightType) string {
	switch t {
	case review.InsightPositive:
		return "✓"
	case review.InsightImprovement:
		return "!"
	default:
		return "•"
	}
}

// PrintInsightWrapped formats and prints coaching text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			_, _ = fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		for i, l := range wrap(content, contentWidth) {
			if i > 0 {
				prefix = strings.Repeat(" ", len([]rune(prefix)))
			}
			_, _ = fmt.Fprintln(w, formatInsight(prefix+l))
		}
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasSuffix(trimmed, ":") && strings.ToUpper(trimmed) == trimmed:
		// Section labels such as "WINS:".
		content = strings.TrimSuffix(trimmed, ":")
		isHeader = true
	}

	return prefix, content, contentWidth, isHeader
}

// wrap splits text into lines no wider than width.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 10 {
		width = 10
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// stripMarkdownCodeBlocks removes ``` fence lines and the content between them.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
