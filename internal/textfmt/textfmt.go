// Package textfmt formats review values for humans.
package textfmt

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Currency formats an amount as dollars with two decimals and thousands
// separators. Negative amounts put the sign before the symbol: -$200.00.
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	amount = math.Round(amount*100) / 100
	return sign + "$" + humanize.FormatFloat("#,###.##", amount)
}

// Duration formats minutes as "2h 30m", collapsing to "2h" or "45m".
func Duration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// Date formats t as "Jan 2, 2006".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateRange formats two dates as "Jan 2, 2006 - Jan 8, 2006".
func DateRange(start, end time.Time) string {
	return Date(start) + " - " + Date(end)
}

// Hour formats an hour of day as "09:00".
func Hour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// Hours joins hours of day as "09:00, 14:00 and 20:00".
func Hours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = Hour(h)
	}
	return JoinAnd(parts)
}

// JoinAnd joins items as "a, b and c".
func JoinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
