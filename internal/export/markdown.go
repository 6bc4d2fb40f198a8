package export

import (
	"fmt"
	"strings"

	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

// Markdown renders the report as a Markdown document.
func Markdown(r *review.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title(r))
	fmt.Fprintf(&b, "_%s_\n", textfmt.DateRange(r.Period.Start, r.Period.End))

	mdSection(&b, "Tasks")
	mdItem(&b, "Completed", fmt.Sprintf("%d", r.Tasks.Completed))
	mdItem(&b, "Created", fmt.Sprintf("%d", r.Tasks.Created))
	mdItem(&b, "Completion rate", fmt.Sprintf("%d%%", r.Tasks.CompletionRatePercent))
	mdItem(&b, "Average days to finish", fmt.Sprintf("%.1f", r.Tasks.AverageLatencyDays))
	if len(r.Tasks.ByPriority) > 0 {
		mdItem(&b, "By priority", joinCounts(r.Tasks.ByPriority))
	}
	if len(r.Tasks.ByProject) > 0 {
		mdItem(&b, "By project", joinCounts(r.Tasks.ByProject))
	}

	mdSection(&b, "Habits")
	mdItem(&b, "Check-ins", fmt.Sprintf("%d", r.Habits.TotalCompletions))
	mdItem(&b, "Completion rate", fmt.Sprintf("%d%%", r.Habits.CompletionRatePercent))
	mdItem(&b, "Average streak", fmt.Sprintf("%d days", r.Habits.AverageStreakDays))
	mdItem(&b, "Best streak", fmt.Sprintf("%d days", r.Habits.BestStreakDays))
	if len(r.Habits.ByHabit) > 0 {
		b.WriteString("\n| Habit | Check-ins | Streak |\n|---|---:|---:|\n")
		for _, h := range r.Habits.ByHabit {
			fmt.Fprintf(&b, "| %s | %d | %d |\n", escapeCell(h.Name), h.Completions, h.Streak)
		}
	}

	mdSection(&b, "Focus")
	mdItem(&b, "Sessions", fmt.Sprintf("%d", r.Focus.TotalSessions))
	mdItem(&b, "Total time", textfmt.Duration(r.Focus.TotalMinutes))
	mdItem(&b, "Average session", textfmt.Duration(r.Focus.AverageSessionLengthMinutes))
	mdItem(&b, "Peak hours", hoursOrNone(r.Focus.MostProductiveHours))
	if len(r.Focus.ByTask) > 0 {
		b.WriteString("\n| Task | Time |\n|---|---:|\n")
		for _, t := range r.Focus.ByTask {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(t.TaskName), textfmt.Duration(t.Minutes))
		}
	}

	mdSection(&b, "Pomodoro")
	mdItem(&b, "Pomodoros", fmt.Sprintf("%d", r.Pomodoro.TotalPomodoros))
	mdItem(&b, "Total time", textfmt.Duration(r.Pomodoro.TotalMinutes))
	mdItem(&b, "Completion rate", fmt.Sprintf("%d%%", r.Pomodoro.CompletionRatePercent))
	mdItem(&b, "Per day", fmt.Sprintf("%.1f", r.Pomodoro.AveragePerDay))
	mdItem(&b, "Peak hours", hoursOrNone(r.Pomodoro.MostProductiveHours))

	mdSection(&b, "Finance")
	mdItem(&b, "Income", textfmt.Currency(r.Finance.TotalIncome))
	mdItem(&b, "Expenses", textfmt.Currency(r.Finance.TotalExpenses))
	mdItem(&b, "Net cash flow", textfmt.Currency(r.Finance.NetCashFlow))
	mdItem(&b, "Budget adherence", budgetText(r.Finance))
	if len(r.Finance.ByCategory) > 0 {
		b.WriteString("\n| Category | Spent |\n|---|---:|\n")
		for _, e := range sortedAmounts(r.Finance.ByCategory) {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(e.key), textfmt.Currency(e.value))
		}
	}

	mdSection(&b, "Insights")
	for _, in := range r.Insights {
		fmt.Fprintf(&b, "- %s **%s**: %s\n", insightBadge(in.Type), in.Category, in.Message)
		if in.Recommendation != "" {
			fmt.Fprintf(&b, "  - _%s_\n", in.Recommendation)
		}
	}

	return b.String()
}

func mdSection(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
}

func mdItem(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func insightBadge(t review.InsightType) string {
	switch t {
	case review.InsightPositive:
		return "✅"
	case review.InsightImprovement:
		return "🎯"
	default:
		return "💡"
	}
}
