// Package review generates periodic productivity reviews: per-domain
// summaries over a closed time window plus rule-based insights.
package review

// TasksSummary aggregates task activity over a period.
type TasksSummary struct {
	Completed             int            `json:"completed"`
	Created               int            `json:"created"`
	AverageLatencyDays    float64        `json:"averageLatencyDays"`
	CompletionRatePercent int            `json:"completionRatePercent"`
	ByPriority            map[string]int `json:"byPriority"`
	ByProject             map[string]int `json:"byProject"`
}

// HabitStat is one habit's contribution to a review.
type HabitStat struct {
	Name        string `json:"name"`
	Completions int    `json:"completions"`
	Streak      int    `json:"streak"`
}

// HabitsSummary aggregates habit check-ins over a period.
//
// AverageStreakDays and BestStreakDays are a snapshot of the habits' current
// streak counters at generation time. They are not limited to the period.
type HabitsSummary struct {
	TotalCompletions      int         `json:"totalCompletions"`
	AverageStreakDays     int         `json:"averageStreakDays"`
	BestStreakDays        int         `json:"bestStreakDays"`
	CompletionRatePercent int         `json:"completionRatePercent"`
	ByHabit               []HabitStat `json:"byHabit"`
}

// TaskMinutes is focus time attributed to one task.
type TaskMinutes struct {
	TaskName string `json:"taskName"`
	Minutes  int    `json:"minutes"`
}

// FocusSummary aggregates completed focus sessions over a period.
type FocusSummary struct {
	TotalSessions               int           `json:"totalSessions"`
	TotalMinutes                int           `json:"totalMinutes"`
	AverageSessionLengthMinutes int           `json:"averageSessionLengthMinutes"`
	MostProductiveHours         []int         `json:"mostProductiveHours"`
	ByTask                      []TaskMinutes `json:"byTask"`
}

// PomodoroSummary aggregates pomodoro sessions over a period.
type PomodoroSummary struct {
	TotalPomodoros        int     `json:"totalPomodoros"`
	TotalMinutes          int     `json:"totalMinutes"`
	CompletionRatePercent int     `json:"completionRatePercent"`
	AveragePerDay         float64 `json:"averagePerDay"`
	MostProductiveHours   []int   `json:"mostProductiveHours"`
}

// FinanceSummary aggregates transactions and budgets over a period.
// BudgetTotal is zero when no budget overlaps the period, in which case
// BudgetAdherencePercent is 100.
type FinanceSummary struct {
	TotalIncome            float64            `json:"totalIncome"`
	TotalExpenses          float64            `json:"totalExpenses"`
	NetCashFlow            float64            `json:"netCashFlow"`
	ByCategory             map[string]float64 `json:"byCategory"`
	BudgetAdherencePercent int                `json:"budgetAdherencePercent"`
	BudgetTotal            float64            `json:"budgetTotal"`
}

// InsightType classifies an insight for display and ordering.
type InsightType string

// Insight types, in display order.
const (
	InsightPositive    InsightType = "positive"
	InsightNeutral     InsightType = "neutral"
	InsightImprovement InsightType = "improvement"
)

// Rank returns the display rank of the type: positive first, improvement last.
func (t InsightType) Rank() int {
	switch t {
	case InsightPositive:
		return 1
	case InsightNeutral:
		return 2
	case InsightImprovement:
		return 3
	default:
		return 4
	}
}

// Insight is a short observation derived from the summaries.
type Insight struct {
	Category       string      `json:"category"`
	Type           InsightType `json:"type"`
	Message        string      `json:"message"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// Report is the complete output of one review generation.
type Report struct {
	Period   Period          `json:"period"`
	Tasks    TasksSummary    `json:"tasks"`
	Habits   HabitsSummary   `json:"habits"`
	Focus    FocusSummary    `json:"focus"`
	Pomodoro PomodoroSummary `json:"pomodoro"`
	Finance  FinanceSummary  `json:"finance"`
	Insights []Insight       `json:"insights"`
}
