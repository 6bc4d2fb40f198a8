// Package record defines the tracked productivity records reviews are built from.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium', 'high' or 'urgent'")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidDuration = errors.New("duration must be greater than zero")
	ErrEndBeforeStart  = errors.New("end must not be before start")
)

// Domain errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyCompleted = errors.New("task already completed")
)

// Priority ranks how important a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority parses a priority name. Empty means medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Task is a to-do item.
type Task struct {
	ID          int64
	Title       string
	Priority    Priority
	Project     string // empty when unassigned
	Status      TaskStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewTask creates a new open task with validation.
func NewTask(title, priority, project string, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	return &Task{
		Title:     title,
		Priority:  p,
		Project:   strings.TrimSpace(project),
		Status:    TaskTodo,
		CreatedAt: now,
	}, nil
}

// Habit is a recurring behavior with streak counters.
type Habit struct {
	ID            int64
	Name          string
	CurrentStreak int
	LongestStreak int
	Active        bool
	CreatedAt     time.Time
}

// NewHabit creates a new active habit.
func NewHabit(name string, now time.Time) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTitle
	}
	return &Habit{Name: name, Active: true, CreatedAt: now}, nil
}

// SessionStatus is the final state of a focus or pomodoro session.
type SessionStatus string

const (
	SessionCompleted   SessionStatus = "completed"
	SessionInterrupted SessionStatus = "interrupted"
)

// ParseSessionStatus parses a session status. Empty means completed.
func ParseSessionStatus(s string) (SessionStatus, error) {
	switch st := SessionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return SessionCompleted, nil
	case SessionCompleted, SessionInterrupted:
		return st, nil
	default:
		return "", fmt.Errorf("session status must be 'completed' or 'interrupted', got %q", s)
	}
}

// FocusSession is a block of focused work, optionally linked to a task.
type FocusSession struct {
	ID              int64
	TaskID          *int64
	Title           string
	StartTime       time.Time
	DurationMinutes int
	Status          SessionStatus
}

// NewFocusSession creates a focus session with validation.
func NewFocusSession(title string, taskID *int64, start time.Time, minutes int, status SessionStatus) (*FocusSession, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &FocusSession{
		TaskID:          taskID,
		Title:           strings.TrimSpace(title),
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          status,
	}, nil
}

// End returns when the session finished.
func (f *FocusSession) End() time.Time {
	return f.StartTime.Add(time.Duration(f.DurationMinutes) * time.Minute)
}

// Pomodoro is a single timed work interval.
type Pomodoro struct {
	ID              int64
	TaskID          *int64
	StartedAt       time.Time
	DurationMinutes int
	Status          SessionStatus
}

// NewPomodoro creates a pomodoro with validation.
func NewPomodoro(taskID *int64, start time.Time, minutes int, status SessionStatus) (*Pomodoro, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Pomodoro{TaskID: taskID, StartedAt: start, DurationMinutes: minutes, Status: status}, nil
}

// TransactionType tells income from expenses.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is a single money movement.
type Transaction struct {
	ID          int64
	Type        TransactionType
	Amount      float64
	Category    string
	Description string
	OccurredAt  time.Time
}

// NewTransaction creates a transaction with validation. Amounts are positive;
// the type carries the direction.
func NewTransaction(kind TransactionType, amount float64, category, description string, at time.Time) (*Transaction, error) {
	if kind != Income && kind != Expense {
		return nil, fmt.Errorf("transaction type must be 'income' or 'expense', got %q", kind)
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "Other"
	}
	return &Transaction{
		Type:        kind,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(description),
		OccurredAt:  at,
	}, nil
}

// Budget caps spending in a category over a window. An empty category caps
// all spending.
type Budget struct {
	ID          int64
	Category    string
	Amount      float64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// NewBudget creates a budget with validation.
func NewBudget(category string, amount float64, start, end time.Time) (*Budget, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	return &Budget{
		Category:    strings.TrimSpace(category),
		Amount:      amount,
		PeriodStart: start,
		PeriodEnd:   end,
	}, nil
}
