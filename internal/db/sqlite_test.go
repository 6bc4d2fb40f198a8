package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/superpresidznt/jarvis/internal/record"
	"github.com/superpresidznt/jarvis/internal/review"
)

func TestCreateTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tsk, err := record.NewTask("Write unit tests", "high", "Jarvis", time.Now())
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if tsk.ID == 0 {
		t.Error("expected ID to be set after insert")
	}

	got, err := repo.GetTask(ctx, tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Write unit tests" || got.Priority != record.PriorityHigh || got.Project != "Jarvis" {
		t.Errorf("unexpected task %+v", got)
	}
	if got.Status != record.TaskTodo || got.CompletedAt != nil {
		t.Errorf("expected open task, got %+v", got)
	}
}

func TestCreateTask_ReusesProject(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two"} {
		tsk, _ := record.NewTask(title, "", "Home", time.Now())
		if err := repo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	var n int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		t.Fatalf("counting projects: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 project, got %d", n)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetTask(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestCompleteTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tsk, _ := record.NewTask("Ship it", "", "", time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	at := time.Date(2025, 1, 8, 17, 0, 0, 0, time.UTC)
	if err := repo.CompleteTask(ctx, tsk.ID, at); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	got, _ := repo.GetTask(ctx, tsk.ID)
	if got.Status != record.TaskCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(at) {
		t.Errorf("unexpected task after completion %+v", got)
	}

	if err := repo.CompleteTask(ctx, tsk.ID, at); !errors.Is(err, record.ErrAlreadyCompleted) {
		t.Errorf("expected ErrAlreadyCompleted, got %v", err)
	}
	if err := repo.CompleteTask(ctx, 999, at); !errors.Is(err, record.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckInHabit_Streaks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	h, _ := record.NewHabit("Meditate", time.Now())
	if err := repo.CreateHabit(ctx, h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	day := func(d int) time.Time { return time.Date(2025, 1, d, 7, 30, 0, 0, time.UTC) }
	steps := []struct {
		at          time.Time
		wantCurrent int
		wantLongest int
	}{
		{day(1), 1, 1},
		{day(2), 2, 2},
		{day(2).Add(3 * time.Hour), 2, 2},
		{day(3), 3, 3},
		{day(6), 1, 3},
		{day(7), 2, 3},
	}

	for i, step := range steps {
		if err := repo.CheckInHabit(ctx, h.ID, step.at); err != nil {
			t.Fatalf("step %d: CheckInHabit failed: %v", i, err)
		}
		got, err := repo.FindHabit(ctx, "meditate")
		if err != nil || got == nil {
			t.Fatalf("step %d: FindHabit = %v, %v", i, got, err)
		}
		if got.CurrentStreak != step.wantCurrent || got.LongestStreak != step.wantLongest {
			t.Errorf("step %d: streak = %d/%d, want %d/%d",
				i, got.CurrentStreak, got.LongestStreak, step.wantCurrent, step.wantLongest)
		}
	}

	var logs int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM habit_logs WHERE habit_id = ?`, h.ID).Scan(&logs); err != nil {
		t.Fatalf("counting logs: %v", err)
	}
	if logs != 5 {
		t.Errorf("expected 5 logs, same-day check-in ignored; got %d", logs)
	}
}

func TestCheckInHabit_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.CheckInHabit(context.Background(), 42, time.Now())
	if !errors.Is(err, record.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSessionsAndMoney(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	f, _ := record.NewFocusSession("Deep work", nil, start, 50, record.SessionCompleted)
	if err := repo.CreateFocusSession(ctx, f); err != nil {
		t.Fatalf("CreateFocusSession failed: %v", err)
	}
	p, _ := record.NewPomodoro(nil, start, 25, record.SessionInterrupted)
	if err := repo.CreatePomodoro(ctx, p); err != nil {
		t.Fatalf("CreatePomodoro failed: %v", err)
	}
	tx, _ := record.NewTransaction(record.Expense, 12.5, "", "lunch", start)
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	b, _ := record.NewBudget("Food", 200, start, start.AddDate(0, 1, 0))
	if err := repo.CreateBudget(ctx, b); err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}

	if f.ID == 0 || p.ID == 0 || tx.ID == 0 || b.ID == 0 {
		t.Errorf("expected IDs to be set: %d %d %d %d", f.ID, p.ID, tx.ID, b.ID)
	}

	var endTime int64
	if err := repo.db.QueryRow(`SELECT end_time FROM focus_sessions WHERE id = ?`, f.ID).Scan(&endTime); err != nil {
		t.Fatalf("querying focus session: %v", err)
	}
	if want := start.Add(50 * time.Minute).UnixMilli(); endTime != want {
		t.Errorf("end_time = %d, want %d", endTime, want)
	}

	var category string
	if err := repo.db.QueryRow(`SELECT category FROM transactions WHERE id = ?`, tx.ID).Scan(&category); err != nil {
		t.Fatalf("querying transaction: %v", err)
	}
	if category != "Other" {
		t.Errorf("category = %q, want Other", category)
	}
}

func TestReviewArchive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	report := review.Report{
		Period: review.Period{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 23, 59, 59, 999_000_000, time.UTC),
			Kind:  review.PeriodMonthly,
		},
		Tasks:    review.TasksSummary{Completed: 3, ByPriority: map[string]int{"low": 3}, ByProject: map[string]int{}},
		Insights: []review.Insight{{Category: "Overall", Type: review.InsightNeutral, Message: "ok"}},
	}

	first := &review.Archived{Report: report, CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)}
	second := &review.Archived{Report: report, Narrative: "Nice month.", CreatedAt: time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)}
	for _, a := range []*review.Archived{first, second} {
		if err := repo.CreateReview(ctx, a); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
		if a.ID == "" {
			t.Fatal("expected ID to be assigned")
		}
	}

	list, err := repo.ListReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	limited, err := repo.ListReviews(ctx, 1)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 review, got %d", len(limited))
	}

	got, err := repo.GetReview(ctx, second.ID[:8])
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	if got == nil || got.ID != second.ID || got.Narrative != "Nice month." {
		t.Fatalf("unexpected review %+v", got)
	}
	if got.Report.Tasks.Completed != 3 || got.Report.Period.Kind != review.PeriodMonthly {
		t.Errorf("report not restored: %+v", got.Report)
	}
	if got.ExportedAt != nil {
		t.Error("expected review not yet exported")
	}

	exportedAt := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	if err := repo.MarkReviewExported(ctx, second.ID, exportedAt); err != nil {
		t.Fatalf("MarkReviewExported failed: %v", err)
	}
	got, _ = repo.GetReview(ctx, second.ID)
	if got.ExportedAt == nil || !got.ExportedAt.Equal(exportedAt) {
		t.Errorf("ExportedAt = %v, want %v", got.ExportedAt, exportedAt)
	}

	if err := repo.DeleteReview(ctx, first.ID); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if err := repo.DeleteReview(ctx, first.ID); !errors.Is(err, record.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	missing, err := repo.GetReview(ctx, first.ID)
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for deleted review, got %+v, %v", missing, err)
	}
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
