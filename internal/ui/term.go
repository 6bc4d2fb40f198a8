package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/superpresidznt/jarvis/internal/review"
)

// Color definitions for consistent styling across the UI.
var (
	// Positive insights and healthy metrics
	colorPositive = color.New(color.FgGreen)

	// Neutral observations
	colorNeutral = color.New(color.FgCyan)

	// Areas to improve
	colorImprovement = color.New(color.FgYellow, color.Bold)

	// Coaching narrative
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// applyColorMode sets color output from the configured mode.
// "auto" leaves fatih/color's terminal detection in place.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatInsightType(t review.InsightType, s string) string {
	switch t {
	case review.InsightPositive:
		return colorPositive.Sprint(s)
	case review.InsightImprovement:
		return colorImprovement.Sprint(s)
	default:
		return colorNeutral.Sprint(s)
	}
}

// formatInsight formats text for coaching output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
