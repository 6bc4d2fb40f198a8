package review

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// AggregateFocus summarizes completed focus sessions that started within p.
func AggregateFocus(ctx context.Context, q Querier, p Period, loc *time.Location) (FocusSummary, error) {
	summary := FocusSummary{
		MostProductiveHours: []int{},
		ByTask:              []TaskMinutes{},
	}
	start, end := bounds(p)

	rows, err := q.QueryContext(ctx, `
		SELECT f.start_time, f.duration_minutes,
		       COALESCE(t.title, NULLIF(f.title, ''), ?)
		FROM focus_sessions f
		LEFT JOIN tasks t ON t.id = f.task_id
		WHERE f.status = 'completed'
		  AND f.start_time >= ? AND f.start_time <= ?
	`, untitledSession, start, end)
	if err != nil {
		return FocusSummary{}, fmt.Errorf("querying focus sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hours [24]int
	byTask := map[string]int{}
	for rows.Next() {
		var (
			startedAt int64
			minutes   int
			name      string
		)
		if err := rows.Scan(&startedAt, &minutes, &name); err != nil {
			return FocusSummary{}, fmt.Errorf("scanning focus session: %w", err)
		}
		summary.TotalSessions++
		summary.TotalMinutes += minutes
		hours[hourOf(startedAt, loc)]++
		byTask[name] += minutes
	}
	if err := rows.Err(); err != nil {
		return FocusSummary{}, fmt.Errorf("iterating focus sessions: %w", err)
	}

	if summary.TotalSessions > 0 {
		summary.AverageSessionLengthMinutes = int(math.Round(float64(summary.TotalMinutes) / float64(summary.TotalSessions)))
	}
	summary.MostProductiveHours = topHours(hours, topHoursCount)

	for name, minutes := range byTask {
		summary.ByTask = append(summary.ByTask, TaskMinutes{TaskName: name, Minutes: minutes})
	}
	sort.Slice(summary.ByTask, func(i, j int) bool {
		a, b := summary.ByTask[i], summary.ByTask[j]
		if a.Minutes != b.Minutes {
			return a.Minutes > b.Minutes
		}
		return a.TaskName < b.TaskName
	})
	if len(summary.ByTask) > topTasksCount {
		summary.ByTask = summary.ByTask[:topTasksCount]
	}
	return summary, nil
}
