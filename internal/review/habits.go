package review

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/superpresidznt/jarvis/internal/dateutil"
)

// AggregateHabits summarizes check-ins of active habits for p.
//
// Only TotalCompletions, CompletionRatePercent and ByHabit[].Completions are
// scoped to the period. The streak figures come from the habits' current
// counters, the same numbers the habit list shows on the day the review runs.
func AggregateHabits(ctx context.Context, q Querier, p Period, loc *time.Location) (HabitsSummary, error) {
	summary := HabitsSummary{ByHabit: []HabitStat{}}
	start, end := bounds(p)

	rows, err := q.QueryContext(ctx, `
		SELECT h.name, h.current_streak, h.longest_streak,
		       (SELECT COUNT(*) FROM habit_logs l
		         WHERE l.habit_id = h.id
		           AND l.completed = 1
		           AND l.logged_at >= ? AND l.logged_at <= ?)
		FROM habits h
		WHERE h.active = 1
	`, start, end)
	if err != nil {
		return HabitsSummary{}, fmt.Errorf("querying habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var streakSum int
	for rows.Next() {
		var (
			stat    HabitStat
			longest int
		)
		if err := rows.Scan(&stat.Name, &stat.Streak, &longest, &stat.Completions); err != nil {
			return HabitsSummary{}, fmt.Errorf("scanning habit: %w", err)
		}
		summary.ByHabit = append(summary.ByHabit, stat)
		summary.TotalCompletions += stat.Completions
		streakSum += stat.Streak
		summary.BestStreakDays = max(summary.BestStreakDays, longest, stat.Streak)
	}
	if err := rows.Err(); err != nil {
		return HabitsSummary{}, fmt.Errorf("iterating habits: %w", err)
	}

	active := len(summary.ByHabit)
	if active == 0 {
		return summary, nil
	}

	summary.AverageStreakDays = int(math.Round(float64(streakSum) / float64(active)))
	possible := active * dateutil.DaysSpanned(p.Start, p.End, loc)
	summary.CompletionRatePercent = min(percent(summary.TotalCompletions, possible), 100)

	sort.SliceStable(summary.ByHabit, func(i, j int) bool {
		a, b := summary.ByHabit[i], summary.ByHabit[j]
		if a.Completions != b.Completions {
			return a.Completions > b.Completions
		}
		return a.Name < b.Name
	})
	return summary, nil
}
