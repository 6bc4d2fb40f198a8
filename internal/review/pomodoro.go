package review

import (
	"context"
	"fmt"
	"time"

	"github.com/superpresidznt/jarvis/internal/dateutil"
)

// AggregatePomodoro summarizes pomodoro sessions started within p.
// TotalPomodoros counts every started session, interrupted ones included;
// minutes and productive hours only count completed sessions.
func AggregatePomodoro(ctx context.Context, q Querier, p Period, loc *time.Location) (PomodoroSummary, error) {
	summary := PomodoroSummary{MostProductiveHours: []int{}}
	start, end := bounds(p)

	rows, err := q.QueryContext(ctx, `
		SELECT started_at, duration_minutes, status
		FROM pomodoro_sessions
		WHERE started_at >= ? AND started_at <= ?
	`, start, end)
	if err != nil {
		return PomodoroSummary{}, fmt.Errorf("querying pomodoro sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		hours     [24]int
		completed int
	)
	for rows.Next() {
		var (
			startedAt int64
			minutes   int
			status    string
		)
		if err := rows.Scan(&startedAt, &minutes, &status); err != nil {
			return PomodoroSummary{}, fmt.Errorf("scanning pomodoro session: %w", err)
		}
		summary.TotalPomodoros++
		if status != "completed" {
			continue
		}
		completed++
		summary.TotalMinutes += minutes
		hours[hourOf(startedAt, loc)]++
	}
	if err := rows.Err(); err != nil {
		return PomodoroSummary{}, fmt.Errorf("iterating pomodoro sessions: %w", err)
	}

	summary.CompletionRatePercent = percent(completed, summary.TotalPomodoros)
	if completed > 0 {
		days := dateutil.DaysSpanned(p.Start, p.End, loc)
		summary.AveragePerDay = round1(float64(completed) / float64(days))
	}
	summary.MostProductiveHours = topHours(hours, topHoursCount)
	return summary, nil
}
