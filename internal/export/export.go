// Package export renders review reports as shareable text.
// Formatters are pure: they never mutate the report and never do I/O.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/textfmt"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat parses a format name. "md" and "txt" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want text, markdown or json)", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Render renders r in the given format.
func Render(r *review.Report, f Format) (string, error) {
	switch f {
	case FormatText:
		return Text(r), nil
	case FormatMarkdown:
		return Markdown(r), nil
	case FormatJSON:
		return JSON(r)
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
}

// JSON serializes the report verbatim.
func JSON(r *review.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data), nil
}

// ParseJSON is the inverse of JSON.
func ParseJSON(s string) (*review.Report, error) {
	var r review.Report
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}

// Title returns the report heading, e.g. "Weekly Review".
func Title(r *review.Report) string {
	return r.Period.Kind.Title() + " Review"
}

type entry struct {
	key   string
	count int
	value float64
}

// sortedCounts orders map entries by count descending then key.
func sortedCounts(m map[string]int) []entry {
	out := make([]entry, 0, len(m))
	for k, v := range m {
		out = append(out, entry{key: k, count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

// sortedAmounts orders map entries by amount descending then key.
func sortedAmounts(m map[string]float64) []entry {
	out := make([]entry, 0, len(m))
	for k, v := range m {
		out = append(out, entry{key: k, value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].value != out[j].value {
			return out[i].value > out[j].value
		}
		return out[i].key < out[j].key
	})
	return out
}

func joinCounts(m map[string]int) string {
	entries := sortedCounts(m)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s %d", e.key, e.count)
	}
	return strings.Join(parts, ", ")
}

func hoursOrNone(hours []int) string {
	if len(hours) == 0 {
		return "none"
	}
	return textfmt.Hours(hours)
}

func insightMarker(t review.InsightType) string {
	switch t {
	case review.InsightPositive:
		return "+"
	case review.InsightImprovement:
		return "!"
	default:
		return "-"
	}
}
