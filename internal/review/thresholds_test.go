package review

import "testing"

func TestThresholdsSet(t *testing.T) {
	th := DefaultThresholds()

	if err := th.Set("task_strong_rate", 90); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if th.TaskStrongRate != 90 {
		t.Errorf("TaskStrongRate = %d, want 90", th.TaskStrongRate)
	}

	if err := th.Set("Task_Slow_Latency_Days", 3.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if th.TaskSlowLatencyDays != 3.5 {
		t.Errorf("TaskSlowLatencyDays = %v, want 3.5", th.TaskSlowLatencyDays)
	}
}

func TestThresholdsSet_Invalid(t *testing.T) {
	th := DefaultThresholds()

	if err := th.Set("nope", 1); err == nil {
		t.Error("expected error for unknown threshold")
	}
	if err := th.Set("focus_low_minutes", -1); err == nil {
		t.Error("expected error for negative threshold")
	}
	if th != DefaultThresholds() {
		t.Error("failed Set must not modify thresholds")
	}
}

func TestWithOverrides_LeavesReceiverUntouched(t *testing.T) {
	base := DefaultThresholds()

	got, err := base.WithOverrides(map[string]float64{"pomodoro_weak_rate": 40})
	if err != nil {
		t.Fatalf("WithOverrides failed: %v", err)
	}
	if got.PomodoroWeakRate != 40 {
		t.Errorf("PomodoroWeakRate = %d, want 40", got.PomodoroWeakRate)
	}
	if base.PomodoroWeakRate != 60 {
		t.Errorf("base modified: PomodoroWeakRate = %d", base.PomodoroWeakRate)
	}
}

func TestThresholdNames(t *testing.T) {
	names := ThresholdNames()
	if len(names) != 12 {
		t.Fatalf("expected 12 thresholds, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
