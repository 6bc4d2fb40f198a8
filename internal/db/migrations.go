package db

import "fmt"

// migrate runs database migrations. All timestamps are Unix milliseconds.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT NOT NULL,
			priority     TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high', 'urgent')),
			project_id   INTEGER REFERENCES projects(id),
			status       TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'in_progress', 'completed', 'cancelled')),
			created_at   INTEGER NOT NULL,
			completed_at INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at);
		CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed_at);

		CREATE TABLE IF NOT EXISTS habits (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			active         INTEGER NOT NULL DEFAULT 1,
			created_at     INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS habit_logs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id  INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
			logged_at INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_habit_logs_habit ON habit_logs(habit_id, logged_at);

		CREATE TABLE IF NOT EXISTS focus_sessions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id          INTEGER REFERENCES tasks(id),
			title            TEXT NOT NULL DEFAULT '',
			start_time       INTEGER NOT NULL,
			end_time         INTEGER,
			duration_minutes INTEGER NOT NULL,
			status           TEXT NOT NULL CHECK(status IN ('completed', 'interrupted'))
		);

		CREATE INDEX IF NOT EXISTS idx_focus_start ON focus_sessions(start_time);

		CREATE TABLE IF NOT EXISTS pomodoro_sessions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id          INTEGER REFERENCES tasks(id),
			started_at       INTEGER NOT NULL,
			completed_at     INTEGER,
			duration_minutes INTEGER NOT NULL,
			status           TEXT NOT NULL CHECK(status IN ('completed', 'interrupted'))
		);

		CREATE INDEX IF NOT EXISTS idx_pomodoro_started ON pomodoro_sessions(started_at);

		CREATE TABLE IF NOT EXISTS transactions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			type        TEXT NOT NULL CHECK(type IN ('income', 'expense')),
			amount      REAL NOT NULL,
			category    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			occurred_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_occurred ON transactions(occurred_at);

		CREATE TABLE IF NOT EXISTS budgets (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			category     TEXT NOT NULL DEFAULT '',
			amount       REAL NOT NULL,
			period_start INTEGER NOT NULL,
			period_end   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id           TEXT PRIMARY KEY,
			kind         TEXT NOT NULL CHECK(kind IN ('weekly', 'monthly', 'custom')),
			period_start INTEGER NOT NULL,
			period_end   INTEGER NOT NULL,
			report       TEXT NOT NULL,
			narrative    TEXT NOT NULL DEFAULT '',
			created_at   INTEGER NOT NULL,
			exported_at  INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
