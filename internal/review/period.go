package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/superpresidznt/jarvis/internal/dateutil"
)

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("invalid review period: start is after end")

// PeriodKind identifies how a review period was chosen.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodCustom  PeriodKind = "custom"
)

// ParsePeriodKind parses a period kind name.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch k := PeriodKind(strings.ToLower(strings.TrimSpace(s))); k {
	case PeriodWeekly, PeriodMonthly, PeriodCustom:
		return k, nil
	default:
		return "", fmt.Errorf("unknown period kind %q", s)
	}
}

// Title returns the capitalized kind name.
func (k PeriodKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Period is the closed [Start, End] window a review covers.
type Period struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Kind  PeriodKind `json:"kind"`
}

// WeeklyPeriod returns the last seven days up to and including today in loc.
func WeeklyPeriod(now time.Time, loc *time.Location) Period {
	start, end := dateutil.LastSevenDays(now.In(locationOrLocal(loc)))
	return Period{Start: start, End: end, Kind: PeriodWeekly}
}

// MonthlyPeriod returns the calendar month containing now in loc.
func MonthlyPeriod(now time.Time, loc *time.Location) Period {
	first, last := dateutil.MonthRange(now.In(locationOrLocal(loc)))
	return Period{Start: first, End: last, Kind: PeriodMonthly}
}

// CustomPeriod returns a period with caller-supplied bounds, used as-is.
// It returns ErrInvalidPeriod if start is after end.
func CustomPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: start, End: end, Kind: PeriodCustom}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks the start <= end invariant.
func (p Period) Validate() error {
	if p.Start.After(p.End) {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidPeriod,
			p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
	}
	return nil
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
