package review

import (
	"fmt"
	"sort"

	"github.com/superpresidznt/jarvis/internal/textfmt"
)

// Insight categories.
const (
	CategoryTasks    = "Tasks"
	CategoryHabits   = "Habits"
	CategoryFocus    = "Focus"
	CategoryPomodoro = "Pomodoro"
	CategoryFinance  = "Finance"
	CategoryOverall  = "Overall"
)

// GenerateInsights runs the rule battery over the summaries in r and returns
// the insights ordered positive, neutral, improvement. Within a type the
// generation order (trends, strengths, improvements, overall) is kept.
// r.Insights is ignored.
func GenerateInsights(r Report, t Thresholds) []Insight {
	var insights []Insight
	insights = append(insights, trendInsights(r, t)...)
	insights = append(insights, strengthInsights(r, t)...)
	insights = append(insights, improvementInsights(r, t)...)
	insights = append(insights, overallInsight(insights))

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Type.Rank() < insights[j].Type.Rank()
	})
	return insights
}

func periodNoun(k PeriodKind) string {
	switch k {
	case PeriodWeekly:
		return "this week"
	case PeriodMonthly:
		return "this month"
	default:
		return "this period"
	}
}

func hasTaskData(s TasksSummary) bool   { return s.Created > 0 || s.Completed > 0 }
func hasHabitData(s HabitsSummary) bool { return len(s.ByHabit) > 0 }

func trendInsights(r Report, t Thresholds) []Insight {
	var out []Insight
	focus := r.Focus
	if focus.TotalSessions == 0 {
		return out
	}

	switch {
	case focus.TotalMinutes >= t.FocusHighMinutes:
		out = append(out, Insight{
			Category: CategoryFocus,
			Type:     InsightPositive,
			Message: fmt.Sprintf("You logged %s of focused work %s across %d sessions.",
				textfmt.Duration(focus.TotalMinutes), periodNoun(r.Period.Kind), focus.TotalSessions),
		})
	case focus.TotalMinutes < t.FocusLowMinutes:
		out = append(out, Insight{
			Category:       CategoryFocus,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("Only %s of focused work %s.", textfmt.Duration(focus.TotalMinutes), periodNoun(r.Period.Kind)),
			Recommendation: "Block out at least one 25-minute focus session each day.",
		})
	}

	if len(focus.MostProductiveHours) > 0 {
		out = append(out, Insight{
			Category:       CategoryFocus,
			Type:           InsightNeutral,
			Message:        fmt.Sprintf("You focus best around %s.", textfmt.Hours(focus.MostProductiveHours)),
			Recommendation: "Schedule your hardest work in those hours.",
		})
	}
	return out
}

func strengthInsights(r Report, t Thresholds) []Insight {
	var out []Insight

	if hasTaskData(r.Tasks) && r.Tasks.CompletionRatePercent >= t.TaskStrongRate {
		out = append(out, Insight{
			Category: CategoryTasks,
			Type:     InsightPositive,
			Message: fmt.Sprintf("You completed %d%% of your open tasks (%d done).",
				r.Tasks.CompletionRatePercent, r.Tasks.Completed),
		})
	}

	if hasHabitData(r.Habits) {
		if r.Habits.AverageStreakDays >= t.HabitStrongStreakDays {
			out = append(out, Insight{
				Category: CategoryHabits,
				Type:     InsightPositive,
				Message:  fmt.Sprintf("Your habits are on an average %d-day streak.", r.Habits.AverageStreakDays),
			})
		}
		if r.Habits.CompletionRatePercent >= t.HabitStrongRate {
			out = append(out, Insight{
				Category: CategoryHabits,
				Type:     InsightPositive,
				Message:  fmt.Sprintf("Habit consistency is at %d%%.", r.Habits.CompletionRatePercent),
			})
		}
	}

	if r.Finance.NetCashFlow > 0 {
		out = append(out, Insight{
			Category: CategoryFinance,
			Type:     InsightPositive,
			Message:  fmt.Sprintf("Positive cash flow of %s %s.", textfmt.Currency(r.Finance.NetCashFlow), periodNoun(r.Period.Kind)),
		})
	}
	if r.Finance.BudgetTotal > 0 && r.Finance.BudgetAdherencePercent >= t.BudgetStrongAdherence {
		out = append(out, Insight{
			Category: CategoryFinance,
			Type:     InsightPositive,
			Message:  fmt.Sprintf("Spending stayed within budget (%d%% adherence).", r.Finance.BudgetAdherencePercent),
		})
	}

	if r.Pomodoro.TotalPomodoros > 0 && r.Pomodoro.CompletionRatePercent >= t.PomodoroStrongRate {
		out = append(out, Insight{
			Category: CategoryPomodoro,
			Type:     InsightPositive,
			Message:  fmt.Sprintf("You finished %d%% of your pomodoros.", r.Pomodoro.CompletionRatePercent),
		})
	}
	return out
}

func improvementInsights(r Report, t Thresholds) []Insight {
	var out []Insight

	if hasTaskData(r.Tasks) {
		if r.Tasks.CompletionRatePercent < t.TaskWeakRate {
			out = append(out, Insight{
				Category:       CategoryTasks,
				Type:           InsightImprovement,
				Message:        fmt.Sprintf("Only %d%% of your open tasks were completed.", r.Tasks.CompletionRatePercent),
				Recommendation: "Break large tasks into smaller steps and limit work in progress.",
			})
		}
		if r.Tasks.AverageLatencyDays > t.TaskSlowLatencyDays {
			out = append(out, Insight{
				Category:       CategoryTasks,
				Type:           InsightImprovement,
				Message:        fmt.Sprintf("Tasks took %.1f days on average to complete.", r.Tasks.AverageLatencyDays),
				Recommendation: "Schedule tasks soon after creating them and drop the ones that linger.",
			})
		}
	}

	if hasHabitData(r.Habits) && r.Habits.CompletionRatePercent < t.HabitWeakRate {
		out = append(out, Insight{
			Category:       CategoryHabits,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("Habit completion rate is %d%%.", r.Habits.CompletionRatePercent),
			Recommendation: "Focus on one or two habits and attach them to an existing routine.",
		})
	}

	if r.Finance.NetCashFlow < 0 {
		out = append(out, Insight{
			Category:       CategoryFinance,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("Spending exceeded income by %s.", textfmt.Currency(-r.Finance.NetCashFlow)),
			Recommendation: "Review your largest expense categories for cuts.",
		})
	}
	if r.Finance.BudgetTotal > 0 && r.Finance.BudgetAdherencePercent < t.BudgetWeakAdherence {
		out = append(out, Insight{
			Category:       CategoryFinance,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("Budget adherence is %d%%.", r.Finance.BudgetAdherencePercent),
			Recommendation: "Revisit your budget limits or track expenses more closely.",
		})
	}

	if r.Pomodoro.TotalPomodoros > 0 && r.Pomodoro.CompletionRatePercent < t.PomodoroWeakRate {
		out = append(out, Insight{
			Category:       CategoryPomodoro,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("Only %d%% of your pomodoros were completed.", r.Pomodoro.CompletionRatePercent),
			Recommendation: "Silence notifications during pomodoros or try shorter intervals.",
		})
	}
	return out
}

// overallInsight weighs strengths against improvement areas.
func overallInsight(insights []Insight) Insight {
	var strong, weak int
	for _, in := range insights {
		switch in.Type {
		case InsightPositive:
			strong++
		case InsightImprovement:
			weak++
		}
	}

	switch {
	case strong > 0 && weak == 0:
		return Insight{
			Category:       CategoryOverall,
			Type:           InsightPositive,
			Message:        "Outstanding! Every area you tracked is going well.",
			Recommendation: "Keep the same routine going next period.",
		}
	case strong > weak:
		return Insight{
			Category:       CategoryOverall,
			Type:           InsightPositive,
			Message:        fmt.Sprintf("Good progress: %d strengths against %d areas to improve.", strong, weak),
			Recommendation: "Build on what worked and pick one area to improve.",
		}
	case weak > strong:
		return Insight{
			Category:       CategoryOverall,
			Type:           InsightImprovement,
			Message:        fmt.Sprintf("A challenging period: %d areas to improve against %d strengths.", weak, strong),
			Recommendation: "Pick a single improvement area and focus on it next period.",
		}
	default:
		return Insight{
			Category:       CategoryOverall,
			Type:           InsightNeutral,
			Message:        "A balanced period with room to grow.",
			Recommendation: "Set one concrete goal for the next period.",
		}
	}
}
