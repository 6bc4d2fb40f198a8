package review

import (
	"fmt"
	"sort"
	"strings"
)

// Thresholds is the policy table of the insight rules. Every rule compares a
// summary field against exactly one named entry.
type Thresholds struct {
	FocusHighMinutes      int
	FocusLowMinutes       int
	TaskStrongRate        int
	TaskWeakRate          int
	TaskSlowLatencyDays   float64
	HabitStrongStreakDays int
	HabitStrongRate       int
	HabitWeakRate         int
	BudgetStrongAdherence int
	BudgetWeakAdherence   int
	PomodoroStrongRate    int
	PomodoroWeakRate      int
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FocusHighMinutes:      600,
		FocusLowMinutes:       120,
		TaskStrongRate:        80,
		TaskWeakRate:          50,
		TaskSlowLatencyDays:   7,
		HabitStrongStreakDays: 7,
		HabitStrongRate:       80,
		HabitWeakRate:         50,
		BudgetStrongAdherence: 80,
		BudgetWeakAdherence:   50,
		PomodoroStrongRate:    85,
		PomodoroWeakRate:      60,
	}
}

// fields maps threshold names to their storage in t.
func (t *Thresholds) fields() map[string]any {
	return map[string]any{
		"focus_high_minutes":       &t.FocusHighMinutes,
		"focus_low_minutes":        &t.FocusLowMinutes,
		"task_strong_rate":         &t.TaskStrongRate,
		"task_weak_rate":           &t.TaskWeakRate,
		"task_slow_latency_days":   &t.TaskSlowLatencyDays,
		"habit_strong_streak_days": &t.HabitStrongStreakDays,
		"habit_strong_rate":        &t.HabitStrongRate,
		"habit_weak_rate":          &t.HabitWeakRate,
		"budget_strong_adherence":  &t.BudgetStrongAdherence,
		"budget_weak_adherence":    &t.BudgetWeakAdherence,
		"pomodoro_strong_rate":     &t.PomodoroStrongRate,
		"pomodoro_weak_rate":       &t.PomodoroWeakRate,
	}
}

// ThresholdNames returns all threshold names in sorted order.
func ThresholdNames() []string {
	var t Thresholds
	names := make([]string, 0, 12)
	for name := range t.fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set overrides a single threshold by name.
func (t *Thresholds) Set(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("threshold %s must not be negative", name)
	}
	switch field := t.fields()[strings.ToLower(strings.TrimSpace(name))].(type) {
	case *int:
		*field = int(value)
	case *float64:
		*field = value
	default:
		return fmt.Errorf("unknown threshold %q", name)
	}
	return nil
}

// WithOverrides returns a copy of t with the named values applied.
func (t Thresholds) WithOverrides(overrides map[string]float64) (Thresholds, error) {
	for name, value := range overrides {
		if err := t.Set(name, value); err != nil {
			return Thresholds{}, err
		}
	}
	return t, nil
}
