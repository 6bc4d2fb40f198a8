package export

import (
	"fmt"
	"strings"

	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

const textRule = "────────────────────────────────────────────"

// Text renders the report as plain text.
func Text(r *review.Report) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(Title(r)) + "\n")
	b.WriteString(textfmt.DateRange(r.Period.Start, r.Period.End) + "\n")
	b.WriteString(textRule + "\n")

	section(&b, "TASKS")
	field(&b, "Completed", fmt.Sprintf("%d", r.Tasks.Completed))
	field(&b, "Created", fmt.Sprintf("%d", r.Tasks.Created))
	field(&b, "Completion rate", fmt.Sprintf("%d%%", r.Tasks.CompletionRatePercent))
	field(&b, "Avg. days to finish", fmt.Sprintf("%.1f", r.Tasks.AverageLatencyDays))
	if len(r.Tasks.ByPriority) > 0 {
		field(&b, "By priority", joinCounts(r.Tasks.ByPriority))
	}
	if len(r.Tasks.ByProject) > 0 {
		field(&b, "By project", joinCounts(r.Tasks.ByProject))
	}

	section(&b, "HABITS")
	field(&b, "Check-ins", fmt.Sprintf("%d", r.Habits.TotalCompletions))
	field(&b, "Completion rate", fmt.Sprintf("%d%%", r.Habits.CompletionRatePercent))
	field(&b, "Average streak", fmt.Sprintf("%d days", r.Habits.AverageStreakDays))
	field(&b, "Best streak", fmt.Sprintf("%d days", r.Habits.BestStreakDays))
	for _, h := range r.Habits.ByHabit {
		detail(&b, h.Name, fmt.Sprintf("%d check-ins, %d-day streak", h.Completions, h.Streak))
	}

	section(&b, "FOCUS")
	field(&b, "Sessions", fmt.Sprintf("%d", r.Focus.TotalSessions))
	field(&b, "Total time", textfmt.Duration(r.Focus.TotalMinutes))
	field(&b, "Average session", textfmt.Duration(r.Focus.AverageSessionLengthMinutes))
	field(&b, "Peak hours", hoursOrNone(r.Focus.MostProductiveHours))
	for _, t := range r.Focus.ByTask {
		detail(&b, t.TaskName, textfmt.Duration(t.Minutes))
	}

	section(&b, "POMODORO")
	field(&b, "Pomodoros", fmt.Sprintf("%d", r.Pomodoro.TotalPomodoros))
	field(&b, "Total time", textfmt.Duration(r.Pomodoro.TotalMinutes))
	field(&b, "Completion rate", fmt.Sprintf("%d%%", r.Pomodoro.CompletionRatePercent))
	field(&b, "Per day", fmt.Sprintf("%.1f", r.Pomodoro.AveragePerDay))
	field(&b, "Peak hours", hoursOrNone(r.Pomodoro.MostProductiveHours))

	section(&b, "FINANCE")
	field(&b, "Income", textfmt.Currency(r.Finance.TotalIncome))
	field(&b, "Expenses", textfmt.Currency(r.Finance.TotalExpenses))
	field(&b, "Net cash flow", textfmt.Currency(r.Finance.NetCashFlow))
	field(&b, "Budget adherence", budgetText(r.Finance))
	for _, e := range sortedAmounts(r.Finance.ByCategory) {
		detail(&b, e.key, textfmt.Currency(e.value))
	}

	section(&b, "INSIGHTS")
	for _, in := range r.Insights {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", insightMarker(in.Type), in.Category, in.Message)
		if in.Recommendation != "" {
			fmt.Fprintf(&b, "      Tip: %s\n", in.Recommendation)
		}
	}

	return b.String()
}

func budgetText(f review.FinanceSummary) string {
	if f.BudgetTotal <= 0 {
		return fmt.Sprintf("%d%% (no budget set)", f.BudgetAdherencePercent)
	}
	return fmt.Sprintf("%d%% of %s", f.BudgetAdherencePercent, textfmt.Currency(f.BudgetTotal))
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n" + title + "\n")
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-20s %s\n", label+":", value)
}

func detail(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %-18s %s\n", label, value)
}
