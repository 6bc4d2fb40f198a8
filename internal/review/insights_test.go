package review

import (
	"strings"
	"testing"
)

func weeklyReport() Report {
	return Report{Period: Period{Kind: PeriodWeekly}}
}

func TestGenerateInsights_EmptyReport(t *testing.T) {
	insights := GenerateInsights(weeklyReport(), DefaultThresholds())

	if len(insights) != 1 {
		t.Fatalf("expected only the overall insight, got %d: %+v", len(insights), insights)
	}
	if insights[0].Category != CategoryOverall || insights[0].Type != InsightNeutral {
		t.Errorf("got %+v, want neutral Overall insight", insights[0])
	}
}

func TestGenerateInsights_LowFocus(t *testing.T) {
	r := weeklyReport()
	r.Focus = FocusSummary{TotalSessions: 2, TotalMinutes: 50, MostProductiveHours: []int{9}}

	insights := GenerateInsights(r, DefaultThresholds())

	if !hasInsight(insights, CategoryFocus, InsightImprovement) {
		t.Errorf("expected Focus improvement insight, got %+v", insights)
	}
	if !hasInsight(insights, CategoryFocus, InsightNeutral) {
		t.Errorf("expected neutral productive-hours insight, got %+v", insights)
	}
	for _, in := range insights {
		if in.Category == CategoryFocus && in.Type == InsightImprovement {
			if !strings.Contains(in.Message, "50m") || !strings.Contains(in.Message, "this week") {
				t.Errorf("unexpected message %q", in.Message)
			}
			if in.Recommendation == "" {
				t.Error("expected recommendation on improvement insight")
			}
		}
	}
}

func TestGenerateInsights_HighFocus(t *testing.T) {
	r := weeklyReport()
	r.Focus = FocusSummary{TotalSessions: 12, TotalMinutes: 600}

	insights := GenerateInsights(r, DefaultThresholds())

	if !hasInsight(insights, CategoryFocus, InsightPositive) {
		t.Errorf("expected Focus positive insight at the threshold, got %+v", insights)
	}
}

func TestGenerateInsights_NegativeCashFlow(t *testing.T) {
	r := weeklyReport()
	r.Finance = FinanceSummary{TotalIncome: 1000, TotalExpenses: 1200, NetCashFlow: -200, BudgetAdherencePercent: 100}

	insights := GenerateInsights(r, DefaultThresholds())

	found := false
	for _, in := range insights {
		if in.Category == CategoryFinance && in.Type == InsightImprovement {
			found = true
			if !strings.Contains(in.Message, "$200.00") {
				t.Errorf("expected formatted deficit in %q", in.Message)
			}
		}
	}
	if !found {
		t.Errorf("expected Finance improvement insight, got %+v", insights)
	}
}

func TestGenerateInsights_NoBudgetNoBudgetRules(t *testing.T) {
	r := weeklyReport()
	r.Finance = FinanceSummary{BudgetAdherencePercent: 100}

	for _, in := range GenerateInsights(r, DefaultThresholds()) {
		if in.Category == CategoryFinance {
			t.Errorf("unexpected finance insight without budget or cash flow: %+v", in)
		}
	}
}

func TestGenerateInsights_NoPomodorosNoRate(t *testing.T) {
	r := weeklyReport()
	r.Pomodoro = PomodoroSummary{CompletionRatePercent: 0}

	if hasInsight(GenerateInsights(r, DefaultThresholds()), CategoryPomodoro, InsightImprovement) {
		t.Error("expected no pomodoro insight when no pomodoros were started")
	}
}

func TestGenerateInsights_StrongTasks(t *testing.T) {
	r := weeklyReport()
	r.Tasks = TasksSummary{Completed: 8, Created: 10, AverageLatencyDays: 2, CompletionRatePercent: 80}

	insights := GenerateInsights(r, DefaultThresholds())

	if !hasInsight(insights, CategoryTasks, InsightPositive) {
		t.Errorf("expected Tasks positive insight, got %+v", insights)
	}
	if hasInsight(insights, CategoryTasks, InsightImprovement) {
		t.Errorf("unexpected Tasks improvement insight, got %+v", insights)
	}
	last := insights[len(insights)-1]
	if last.Category != CategoryOverall || last.Type != InsightPositive {
		t.Errorf("expected positive Overall insight, got %+v", last)
	}
}

func TestGenerateInsights_SlowTasks(t *testing.T) {
	r := weeklyReport()
	r.Tasks = TasksSummary{Completed: 6, Created: 10, AverageLatencyDays: 9.5, CompletionRatePercent: 60}

	insights := GenerateInsights(r, DefaultThresholds())

	if !hasInsight(insights, CategoryTasks, InsightImprovement) {
		t.Errorf("expected latency improvement insight, got %+v", insights)
	}
}

func TestGenerateInsights_Ordering(t *testing.T) {
	r := weeklyReport()
	r.Focus = FocusSummary{TotalSessions: 1, TotalMinutes: 30, MostProductiveHours: []int{14}}
	r.Tasks = TasksSummary{Completed: 9, Created: 10, CompletionRatePercent: 90}
	r.Habits = HabitsSummary{
		TotalCompletions:      2,
		CompletionRatePercent: 10,
		ByHabit:               []HabitStat{{Name: "Read", Completions: 2}},
	}
	r.Finance = FinanceSummary{NetCashFlow: 50, BudgetAdherencePercent: 100}
	r.Pomodoro = PomodoroSummary{TotalPomodoros: 4, CompletionRatePercent: 25}

	insights := GenerateInsights(r, DefaultThresholds())

	for i := 1; i < len(insights); i++ {
		if insights[i-1].Type.Rank() > insights[i].Type.Rank() {
			t.Fatalf("insights not ordered by type at %d: %+v", i, insights)
		}
	}
	// Focus trend comes first among improvements.
	for _, in := range insights {
		if in.Type == InsightImprovement {
			if in.Category != CategoryFocus {
				t.Errorf("expected first improvement to be Focus, got %s", in.Category)
			}
			break
		}
	}
}

func TestGenerateInsights_ThresholdOverride(t *testing.T) {
	r := weeklyReport()
	r.Focus = FocusSummary{TotalSessions: 2, TotalMinutes: 50}

	th, err := DefaultThresholds().WithOverrides(map[string]float64{"focus_low_minutes": 30})
	if err != nil {
		t.Fatalf("WithOverrides failed: %v", err)
	}

	if hasInsight(GenerateInsights(r, th), CategoryFocus, InsightImprovement) {
		t.Error("expected lowered threshold to suppress the low-focus insight")
	}
}

func TestOverallInsight(t *testing.T) {
	pos := Insight{Type: InsightPositive}
	imp := Insight{Type: InsightImprovement}

	tests := []struct {
		name     string
		insights []Insight
		want     InsightType
		message  string
	}{
		{"none", nil, InsightNeutral, "balanced"},
		{"all strong", []Insight{pos, pos}, InsightPositive, "Outstanding"},
		{"mostly strong", []Insight{pos, pos, imp}, InsightPositive, "Good progress"},
		{"mostly weak", []Insight{pos, imp, imp}, InsightImprovement, "challenging"},
		{"tied", []Insight{pos, imp}, InsightNeutral, "balanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overallInsight(tt.insights)
			if got.Type != tt.want {
				t.Errorf("type = %s, want %s", got.Type, tt.want)
			}
			if !strings.Contains(got.Message, tt.message) {
				t.Errorf("message %q does not contain %q", got.Message, tt.message)
			}
		})
	}
}

func hasInsight(insights []Insight, category string, typ InsightType) bool {
	for _, in := range insights {
		if in.Category == category && in.Type == typ {
			return true
		}
	}
	return false
}
