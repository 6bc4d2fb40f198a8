package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/superpresidznt/jarvis/internal/dateutil"
	"github.com/superpresidznt/jarvis/internal/record"
)

// CreateTask adds a new task, creating its project on first use.
func (s *SQLite) CreateTask(ctx context.Context, t *record.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var projectID sql.NullInt64
	if t.Project != "" {
		id, err := ensureProject(ctx, tx, t.Project)
		if err != nil {
			return err
		}
		projectID = sql.NullInt64{Int64: id, Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (title, priority, project_id, status, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		t.Title,
		t.Priority,
		projectID,
		t.Status,
		t.CreatedAt.UnixMilli(),
		nullMillis(t.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	t.ID = id
	return nil
}

func ensureProject(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO projects (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("inserting project: %w", err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM projects WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("querying project: %w", err)
	}
	return id, nil
}

// GetTask retrieves a task by ID. Returns nil, nil if it does not exist.
func (s *SQLite) GetTask(ctx context.Context, id int64) (*record.Task, error) {
	var (
		t           record.Task
		createdAt   int64
		completedAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.priority, COALESCE(p.name, ''), t.status, t.created_at, t.completed_at
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.id = ?
	`, id).Scan(&t.ID, &t.Title, &t.Priority, &t.Project, &t.Status, &createdAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	t.CreatedAt = time.UnixMilli(createdAt)
	t.CompletedAt = timePtr(completedAt)
	return &t, nil
}

// CompleteTask marks a task as completed at the given time.
func (s *SQLite) CompleteTask(ctx context.Context, id int64, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, completed_at = ?
		WHERE id = ? AND status != ?
	`, record.TaskCompleted, at.UnixMilli(), id, record.TaskCompleted)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	return s.checkTaskUpdated(ctx, result, id)
}

// CancelTask marks a task as cancelled.
func (s *SQLite) CancelTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ? AND status != ?`,
		record.TaskCancelled, id, record.TaskCompleted)
	if err != nil {
		return fmt.Errorf("cancelling task: %w", err)
	}
	return s.checkTaskUpdated(ctx, result, id)
}

func (s *SQLite) checkTaskUpdated(ctx context.Context, result sql.Result, id int64) error {
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %d: %w", id, record.ErrNotFound)
	}
	return fmt.Errorf("task %d: %w", id, record.ErrAlreadyCompleted)
}

// CreateHabit adds a new habit.
func (s *SQLite) CreateHabit(ctx context.Context, h *record.Habit) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (name, current_streak, longest_streak, active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, h.Name, h.CurrentStreak, h.LongestStreak, h.Active, h.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	h.ID = id
	return nil
}

// FindHabit looks up an active habit by case-insensitive name.
// Returns nil, nil if none matches.
func (s *SQLite) FindHabit(ctx context.Context, name string) (*record.Habit, error) {
	var (
		h         record.Habit
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, current_streak, longest_streak, active, created_at
		FROM habits
		WHERE active = 1 AND name = ? COLLATE NOCASE
		ORDER BY id
		LIMIT 1
	`, name).Scan(&h.ID, &h.Name, &h.CurrentStreak, &h.LongestStreak, &h.Active, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying habit: %w", err)
	}
	h.CreatedAt = time.UnixMilli(createdAt)
	return &h, nil
}

// CheckInHabit logs a completion for the habit on at's calendar day and
// updates its streak counters. A second check-in on the same day is a no-op.
// Days are taken in at's location.
func (s *SQLite) CheckInHabit(ctx context.Context, habitID int64, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current, longest int
	err = tx.QueryRowContext(ctx, `SELECT current_streak, longest_streak FROM habits WHERE id = ?`, habitID).
		Scan(&current, &longest)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("habit %d: %w", habitID, record.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying habit: %w", err)
	}

	var last sql.NullInt64
	err = tx.QueryRowContext(ctx, `
		SELECT MAX(logged_at) FROM habit_logs
		WHERE habit_id = ? AND completed = 1 AND logged_at <= ?
	`, habitID, dateutil.EndOfDay(at).UnixMilli()).Scan(&last)
	if err != nil {
		return fmt.Errorf("querying last check-in: %w", err)
	}

	today := dateutil.StartOfDay(at)
	if last.Valid {
		lastDay := dateutil.StartOfDay(dateutil.FromUnixMilli(last.Int64, at.Location()))
		switch {
		case lastDay.Equal(today):
			return nil
		case lastDay.Equal(today.AddDate(0, 0, -1)):
			current++
		default:
			current = 1
		}
	} else {
		current = 1
	}
	longest = max(longest, current)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO habit_logs (habit_id, logged_at, completed) VALUES (?, ?, 1)
	`, habitID, at.UnixMilli()); err != nil {
		return fmt.Errorf("inserting habit log: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE habits SET current_streak = ?, longest_streak = ? WHERE id = ?
	`, current, longest, habitID); err != nil {
		return fmt.Errorf("updating habit streak: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateFocusSession records a focus session.
func (s *SQLite) CreateFocusSession(ctx context.Context, f *record.FocusSession) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (task_id, title, start_time, end_time, duration_minutes, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullID(f.TaskID), f.Title, f.StartTime.UnixMilli(), f.End().UnixMilli(), f.DurationMinutes, f.Status)
	if err != nil {
		return fmt.Errorf("inserting focus session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	f.ID = id
	return nil
}

// CreatePomodoro records a pomodoro session.
func (s *SQLite) CreatePomodoro(ctx context.Context, p *record.Pomodoro) error {
	var completedAt sql.NullInt64
	if p.Status == record.SessionCompleted {
		end := p.StartedAt.Add(time.Duration(p.DurationMinutes) * time.Minute)
		completedAt = sql.NullInt64{Int64: end.UnixMilli(), Valid: true}
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO pomodoro_sessions (task_id, started_at, completed_at, duration_minutes, status)
		VALUES (?, ?, ?, ?, ?)
	`, nullID(p.TaskID), p.StartedAt.UnixMilli(), completedAt, p.DurationMinutes, p.Status)
	if err != nil {
		return fmt.Errorf("inserting pomodoro: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// CreateTransaction records an income or expense.
func (s *SQLite) CreateTransaction(ctx context.Context, t *record.Transaction) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (type, amount, category, description, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.Type, t.Amount, t.Category, t.Description, t.OccurredAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	t.ID = id
	return nil
}

// CreateBudget records a spending budget.
func (s *SQLite) CreateBudget(ctx context.Context, b *record.Budget) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (category, amount, period_start, period_end)
		VALUES (?, ?, ?, ?)
	`, b.Category, b.Amount, b.PeriodStart.UnixMilli(), b.PeriodEnd.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	b.ID = id
	return nil
}
