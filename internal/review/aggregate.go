package review

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"time"
)

// Querier is the read capability the aggregators need from the store.
// *sql.DB, *sql.Tx and the SQLite store all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	msPerDay        = float64(24 * time.Hour / time.Millisecond)
	topHoursCount   = 3
	topTasksCount   = 5
	noProjectName   = "No Project"
	untitledSession = "Untitled"
)

// percent returns round(100*n/d), or 0 when d is not positive.
func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(d)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// topHours returns up to n hours of day with the highest counts.
// Ties go to the earlier hour; hours with no occurrences are never returned.
func topHours(counts [24]int, n int) []int {
	hours := make([]int, 0, 24)
	for h, c := range counts {
		if c > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// hourOf returns the local hour of a stored millisecond timestamp.
func hourOf(ms int64, loc *time.Location) int {
	return time.UnixMilli(ms).In(loc).Hour()
}

// bounds returns the period as the millisecond values stored in the database.
func bounds(p Period) (int64, int64) {
	return p.Start.UnixMilli(), p.End.UnixMilli()
}

func countRow(ctx context.Context, q Querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
