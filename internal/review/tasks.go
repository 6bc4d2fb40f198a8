package review

import (
	"context"
	"fmt"
	"time"
)

// AggregateTasks summarizes task activity for p.
//
// Completion and latency stats only count tasks completed inside the window.
// The completion-rate denominator counts every non-cancelled task that was
// open at some point during the window: created before the window ended and
// either still open or completed after it started.
func AggregateTasks(ctx context.Context, q Querier, p Period, _ *time.Location) (TasksSummary, error) {
	summary := TasksSummary{
		ByPriority: map[string]int{},
		ByProject:  map[string]int{},
	}
	start, end := bounds(p)

	created, err := countRow(ctx, q, `
		SELECT COUNT(*) FROM tasks WHERE created_at >= ? AND created_at <= ?
	`, start, end)
	if err != nil {
		return TasksSummary{}, fmt.Errorf("counting created tasks: %w", err)
	}
	summary.Created = created

	relevant, err := countRow(ctx, q, `
		SELECT COUNT(*) FROM tasks
		WHERE status != 'cancelled'
		  AND created_at <= ?
		  AND (completed_at IS NULL OR completed_at >= ?)
	`, end, start)
	if err != nil {
		return TasksSummary{}, fmt.Errorf("counting relevant tasks: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT t.priority, COALESCE(p.name, ''), t.created_at, t.completed_at
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.status = 'completed'
		  AND t.completed_at >= ? AND t.completed_at <= ?
	`, start, end)
	if err != nil {
		return TasksSummary{}, fmt.Errorf("querying completed tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var latencyMs int64
	for rows.Next() {
		var (
			priority    string
			project     string
			createdAt   int64
			completedAt int64
		)
		if err := rows.Scan(&priority, &project, &createdAt, &completedAt); err != nil {
			return TasksSummary{}, fmt.Errorf("scanning completed task: %w", err)
		}
		summary.Completed++
		latencyMs += completedAt - createdAt
		summary.ByPriority[priority]++
		if project == "" {
			project = noProjectName
		}
		summary.ByProject[project]++
	}
	if err := rows.Err(); err != nil {
		return TasksSummary{}, fmt.Errorf("iterating completed tasks: %w", err)
	}

	if summary.Completed > 0 {
		summary.AverageLatencyDays = round1(float64(latencyMs) / float64(summary.Completed) / msPerDay)
	}
	summary.CompletionRatePercent = percent(summary.Completed, relevant)
	return summary, nil
}
