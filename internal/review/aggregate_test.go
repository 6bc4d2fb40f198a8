package review_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/superpresidznt/jarvis/internal/db"
	"github.com/superpresidznt/jarvis/internal/record"
	"github.com/superpresidznt/jarvis/internal/review"
)

var testNow = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *db.SQLite {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestGenerator(store *db.SQLite) *review.Generator {
	return review.NewGenerator(store, review.Options{
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	})
}

func day(d, hour, minute int) time.Time {
	return time.Date(2025, 3, d, hour, minute, 0, 0, time.UTC)
}

func weekly() review.Period {
	return review.WeeklyPeriod(testNow, time.UTC)
}

func seedTasks(t *testing.T, store *db.SQLite) {
	t.Helper()
	ctx := context.Background()

	for i := range 10 {
		project := ""
		if i%2 == 0 {
			project = "Home"
		}
		priority := "medium"
		if i < 3 {
			priority = "high"
		}
		tsk, err := record.NewTask("task", priority, project, day(3, 9, 0))
		if err != nil {
			t.Fatalf("NewTask failed: %v", err)
		}
		if err := store.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		if i < 8 {
			if err := store.CompleteTask(ctx, tsk.ID, day(5, 9, 0)); err != nil {
				t.Fatalf("CompleteTask failed: %v", err)
			}
		}
	}
}

func TestAggregateTasks(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store)

	got, err := review.AggregateTasks(context.Background(), store, weekly(), time.UTC)
	if err != nil {
		t.Fatalf("AggregateTasks failed: %v", err)
	}

	if got.Created != 10 || got.Completed != 8 {
		t.Errorf("created/completed = %d/%d, want 10/8", got.Created, got.Completed)
	}
	if got.CompletionRatePercent != 80 {
		t.Errorf("CompletionRatePercent = %d, want 80", got.CompletionRatePercent)
	}
	if got.AverageLatencyDays != 2 {
		t.Errorf("AverageLatencyDays = %v, want 2", got.AverageLatencyDays)
	}
	if got.ByPriority["high"] != 3 || got.ByPriority["medium"] != 5 {
		t.Errorf("ByPriority = %v", got.ByPriority)
	}
	if got.ByProject["Home"] != 4 || got.ByProject["No Project"] != 4 {
		t.Errorf("ByProject = %v", got.ByProject)
	}
}

func TestAggregateTasks_CancelledExcluded(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	done, _ := record.NewTask("done", "", "", day(4, 9, 0))
	dropped, _ := record.NewTask("dropped", "", "", day(4, 9, 0))
	for _, tsk := range []*record.Task{done, dropped} {
		if err := store.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	if err := store.CompleteTask(ctx, done.ID, day(6, 9, 0)); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if err := store.CancelTask(ctx, dropped.ID); err != nil {
		t.Fatalf("CancelTask failed: %v", err)
	}

	got, err := review.AggregateTasks(ctx, store, weekly(), time.UTC)
	if err != nil {
		t.Fatalf("AggregateTasks failed: %v", err)
	}
	if got.CompletionRatePercent != 100 {
		t.Errorf("CompletionRatePercent = %d, want 100", got.CompletionRatePercent)
	}
}

func seedHabits(t *testing.T, store *db.SQLite) {
	t.Helper()
	ctx := context.Background()

	read, _ := record.NewHabit("Read", day(1, 8, 0))
	run, _ := record.NewHabit("Run", day(1, 8, 0))
	for _, h := range []*record.Habit{read, run} {
		if err := store.CreateHabit(ctx, h); err != nil {
			t.Fatalf("CreateHabit failed: %v", err)
		}
	}
	for _, d := range []int{7, 8, 9} {
		if err := store.CheckInHabit(ctx, read.ID, day(d, 7, 0)); err != nil {
			t.Fatalf("CheckInHabit failed: %v", err)
		}
	}
	if err := store.CheckInHabit(ctx, run.ID, day(4, 18, 0)); err != nil {
		t.Fatalf("CheckInHabit failed: %v", err)
	}
}

func TestAggregateHabits(t *testing.T) {
	store := newTestStore(t)
	seedHabits(t, store)

	got, err := review.AggregateHabits(context.Background(), store, weekly(), time.UTC)
	if err != nil {
		t.Fatalf("AggregateHabits failed: %v", err)
	}

	if got.TotalCompletions != 4 {
		t.Errorf("TotalCompletions = %d, want 4", got.TotalCompletions)
	}
	// 4 check-ins out of 2 habits * 8 days.
	if got.CompletionRatePercent != 25 {
		t.Errorf("CompletionRatePercent = %d, want 25", got.CompletionRatePercent)
	}
	if got.BestStreakDays != 3 {
		t.Errorf("BestStreakDays = %d, want 3", got.BestStreakDays)
	}
	if got.AverageStreakDays != 2 {
		t.Errorf("AverageStreakDays = %d, want 2", got.AverageStreakDays)
	}
	if len(got.ByHabit) != 2 || got.ByHabit[0].Name != "Read" || got.ByHabit[0].Completions != 3 {
		t.Errorf("ByHabit = %+v", got.ByHabit)
	}
}

func TestAggregateHabits_FullAttendance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	h, _ := record.NewHabit("Water", day(1, 8, 0))
	if err := store.CreateHabit(ctx, h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	for _, at := range []time.Time{day(8, 8, 0), day(9, 8, 0), day(9, 20, 0)} {
		if err := store.CheckInHabit(ctx, h.ID, at); err != nil {
			t.Fatalf("CheckInHabit failed: %v", err)
		}
	}

	p, err := review.CustomPeriod(day(8, 0, 0), day(9, 23, 0))
	if err != nil {
		t.Fatalf("CustomPeriod failed: %v", err)
	}
	got, err := review.AggregateHabits(ctx, store, p, time.UTC)
	if err != nil {
		t.Fatalf("AggregateHabits failed: %v", err)
	}
	if got.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2", got.TotalCompletions)
	}
	if got.CompletionRatePercent != 100 {
		t.Errorf("CompletionRatePercent = %d, want 100", got.CompletionRatePercent)
	}
}

func seedFocus(t *testing.T, store *db.SQLite) {
	t.Helper()
	ctx := context.Background()

	tsk, _ := record.NewTask("Write report", "", "", day(3, 8, 0))
	if err := store.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	// Keeps the task out of completion-rate denominators.
	if err := store.CancelTask(ctx, tsk.ID); err != nil {
		t.Fatalf("CancelTask failed: %v", err)
	}

	sessions := []struct {
		title   string
		taskID  *int64
		start   time.Time
		minutes int
		status  record.SessionStatus
	}{
		{"", &tsk.ID, day(4, 9, 0), 60, record.SessionCompleted},
		{"", &tsk.ID, day(5, 9, 15), 30, record.SessionCompleted},
		{"", nil, day(5, 14, 0), 30, record.SessionCompleted},
		{"Inbox", nil, day(6, 16, 0), 20, record.SessionCompleted},
		{"", nil, day(6, 11, 0), 45, record.SessionInterrupted},
		{"Old", nil, day(1, 9, 0), 90, record.SessionCompleted},
	}
	for _, s := range sessions {
		f, err := record.NewFocusSession(s.title, s.taskID, s.start, s.minutes, s.status)
		if err != nil {
			t.Fatalf("NewFocusSession failed: %v", err)
		}
		if err := store.CreateFocusSession(ctx, f); err != nil {
			t.Fatalf("CreateFocusSession failed: %v", err)
		}
	}
}

func TestAggregateFocus(t *testing.T) {
	store := newTestStore(t)
	seedFocus(t, store)

	got, err := review.AggregateFocus(context.Background(), store, weekly(), time.UTC)
	if err != nil {
		t.Fatalf("AggregateFocus failed: %v", err)
	}

	if got.TotalSessions != 4 || got.TotalMinutes != 140 {
		t.Errorf("sessions/minutes = %d/%d, want 4/140", got.TotalSessions, got.TotalMinutes)
	}
	if got.AverageSessionLengthMinutes != 35 {
		t.Errorf("AverageSessionLengthMinutes = %d, want 35", got.AverageSessionLengthMinutes)
	}
	wantHours := []int{9, 14, 16}
	if len(got.MostProductiveHours) != 3 {
		t.Fatalf("MostProductiveHours = %v, want %v", got.MostProductiveHours, wantHours)
	}
	for i, h := range wantHours {
		if got.MostProductiveHours[i] != h {
			t.Errorf("MostProductiveHours = %v, want %v", got.MostProductiveHours, wantHours)
			break
		}
	}
	want := []review.TaskMinutes{
		{TaskName: "Write report", Minutes: 90},
		{TaskName: "Untitled", Minutes: 30},
		{TaskName: "Inbox", Minutes: 20},
	}
	if len(got.ByTask) != len(want) {
		t.Fatalf("ByTask = %+v, want %+v", got.ByTask, want)
	}
	for i := range want {
		if got.ByTask[i] != want[i] {
			t.Errorf("ByTask[%d] = %+v, want %+v", i, got.ByTask[i], want[i])
		}
	}
}

func seedPomodoros(t *testing.T, store *db.SQLite) {
	t.Helper()
	ctx := context.Background()

	for i, status := range []record.SessionStatus{
		record.SessionCompleted,
		record.SessionCompleted,
		record.SessionCompleted,
		record.SessionInterrupted,
	} {
		p, err := record.NewPomodoro(nil, day(4+i, 10, 0), 25, status)
		if err != nil {
			t.Fatalf("NewPomodoro failed: %v", err)
		}
		if err := store.CreatePomodoro(ctx, p); err != nil {
			t.Fatalf("CreatePomodoro failed: %v", err)
		}
	}
}

func TestAggregatePomodoro(t *testing.T) {
	store := newTestStore(t)
	seedPomodoros(t, store)

	got, err := review.AggregatePomodoro(context.Background(), store, weekly(), time.UTC)
	if err != nil {
		t.Fatalf("AggregatePomodoro failed: %v", err)
	}

	if got.TotalPomodoros != 4 || got.TotalMinutes != 75 {
		t.Errorf("pomodoros/minutes = %d/%d, want 4/75", got.TotalPomodoros, got.TotalMinutes)
	}
	if got.CompletionRatePercent != 75 {
		t.Errorf("CompletionRatePercent = %d, want 75", got.CompletionRatePercent)
	}
	// 3 completed over 8 days.
	if got.AveragePerDay != 0.4 {
		t.Errorf("AveragePerDay = %v, want 0.4", got.AveragePerDay)
	}
	if len(got.MostProductiveHours) != 1 || got.MostProductiveHours[0] != 10 {
		t.Errorf("MostProductiveHours = %v, want [10]", got.MostProductiveHours)
	}
}

func seedFinance(t *testing.T, store *db.SQLite, budgetCategory string, budget float64) {
	t.Helper()
	ctx := context.Background()

	txs := []struct {
		kind     record.TransactionType
		amount   float64
		category string
	}{
		{record.Income, 1000, "Salary"},
		{record.Expense, 300, "Food"},
		{record.Expense, 900, "Rent"},
	}
	for _, tx := range txs {
		r, err := record.NewTransaction(tx.kind, tx.amount, tx.category, "", day(5, 12, 0))
		if err != nil {
			t.Fatalf("NewTransaction failed: %v", err)
		}
		if err := store.CreateTransaction(ctx, r); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	if budget > 0 {
		b, err := record.NewBudget(budgetCategory, budget, day(1, 0, 0), day(31, 0, 0))
		if err != nil {
			t.Fatalf("NewBudget failed: %v", err)
		}
		if err := store.CreateBudget(ctx, b); err != nil {
			t.Fatalf("CreateBudget failed: %v", err)
		}
	}
}

func TestAggregateFinance(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		budget        float64
		wantAdherence int
		wantTotal     float64
	}{
		{"no budget", "", 0, 100, 0},
		{"overall budget", "", 1500, 20, 1500},
		{"category budget", "Food", 400, 25, 400},
		{"overspent clamps to zero", "Food", 200, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			seedFinance(t, store, tt.category, tt.budget)

			got, err := review.AggregateFinance(context.Background(), store, weekly(), time.UTC)
			if err != nil {
				t.Fatalf("AggregateFinance failed: %v", err)
			}
			if got.TotalIncome != 1000 || got.TotalExpenses != 1200 || got.NetCashFlow != -200 {
				t.Errorf("income/expenses/net = %v/%v/%v", got.TotalIncome, got.TotalExpenses, got.NetCashFlow)
			}
			if got.ByCategory["Food"] != 300 || got.ByCategory["Rent"] != 900 {
				t.Errorf("ByCategory = %v", got.ByCategory)
			}
			if _, ok := got.ByCategory["Salary"]; ok {
				t.Error("income must not appear in expense categories")
			}
			if got.BudgetAdherencePercent != tt.wantAdherence {
				t.Errorf("BudgetAdherencePercent = %d, want %d", got.BudgetAdherencePercent, tt.wantAdherence)
			}
			if got.BudgetTotal != tt.wantTotal {
				t.Errorf("BudgetTotal = %v, want %v", got.BudgetTotal, tt.wantTotal)
			}
		})
	}
}
