package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds lipgloss colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	Panel       lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Positive    lipgloss.Color
	Neutral     lipgloss.Color
	Improvement lipgloss.Color
	Warning     lipgloss.Color

	// Tinted backgrounds for insight badges.
	PositiveBg    lipgloss.Color
	NeutralBg     lipgloss.Color
	ImprovementBg lipgloss.Color

	TextOnAccent lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	// Badges lean towards the background more on light themes.
	tint := 0.65
	if IsLight(t) {
		tint = 0.80
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		Panel:       lipgloss.Color(t.BgHighlight),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Positive:    lipgloss.Color(t.Positive),
		Neutral:     lipgloss.Color(t.Neutral),
		Improvement: lipgloss.Color(t.Improvement),
		Warning:     lipgloss.Color(t.Warning),

		PositiveBg:    lipgloss.Color(blendColors(t.Positive, t.Bg, tint)),
		NeutralBg:     lipgloss.Color(blendColors(t.Neutral, t.Bg, tint)),
		ImprovementBg: lipgloss.Color(blendColors(t.Improvement, t.Bg, tint)),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
	}
}

// IsLight reports whether the theme has a light background.
func IsLight(t *Theme) bool {
	return relativeLuminance(t.Bg) > 0.55
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a towards b; ratio 0 is a, 1 is b.
// Malformed input returns a unchanged.
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, ok1 := parseRGB(a)
	br, bg, bb, ok2 := parseRGB(b)
	if !ok1 || !ok2 {
		return a
	}
	ratio = max(0, min(1, ratio))
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// parseRGB parses a #rrggbb color.
func parseRGB(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
