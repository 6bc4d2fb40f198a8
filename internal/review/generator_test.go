package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockGenerator(t *testing.T) (*Generator, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.MatchExpectationsInOrder(false)

	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(db, Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	return g, mock
}

func TestGenerate_ReadFailure(t *testing.T) {
	g, mock := newMockGenerator(t)
	boom := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)

	report, err := g.GenerateWeekly(context.Background())

	if report != nil {
		t.Errorf("expected no report on failure, got %+v", report)
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
	if readErr.Domain == "" {
		t.Error("expected failing domain to be named")
	}
}

func TestGenerateCustom_InvalidPeriod(t *testing.T) {
	g, mock := newMockGenerator(t)

	start := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	report, err := g.GenerateCustom(context.Background(), start, start.Add(-time.Hour))

	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
	if report != nil {
		t.Error("expected nil report")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected store access: %v", err)
	}
}

func TestReadError(t *testing.T) {
	inner := errors.New("locked")
	err := error(&ReadError{Domain: "finance", Err: inner})

	if !errors.Is(err, inner) {
		t.Error("expected ReadError to unwrap to its cause")
	}
	if got, want := err.Error(), "reading finance: locked"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(nil, Options{})

	if g.Location() != time.Local {
		t.Errorf("expected local timezone by default, got %v", g.Location())
	}
	if g.thresholds != DefaultThresholds() {
		t.Error("expected default thresholds")
	}

	th := DefaultThresholds()
	th.FocusLowMinutes = 10
	g = NewGenerator(nil, Options{Thresholds: &th})
	if g.thresholds.FocusLowMinutes != 10 {
		t.Error("expected thresholds option to be applied")
	}
}
