package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Teal theme shared by the playground and the CLI output.
var (
	ColorPrimary = lipgloss.Color("#2dd4bf")
	ColorAccent  = lipgloss.Color("#99f6e4")
	ColorMuted   = lipgloss.Color("#4b6b66")
	ColorDanger  = lipgloss.Color("#f87171")
	ColorSurface = lipgloss.Color("#0f1d1a")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	Subtle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	MetricValue = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(ColorMuted)

	KeyHint = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// Control bar buttons
	Button = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Background(ColorSurface).
		Padding(0, 1)

	ButtonHot = lipgloss.NewStyle().
			Foreground(ColorSurface).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(ColorSurface).
			Background(ColorDanger).
			Bold(true).
			Padding(0, 1)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#5eead4"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#14b8a6"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f766e"))
)

// GradientText colours each rune of text on a Lab blend from start to end.
func GradientText(text string, start, end string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(start)
	b, errB := colorful.Hex(end)
	if errA != nil || errB != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
		out.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}
	return out.String()
}

// SparklineChart renders a mini sparkline from values, sampled to width.
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// Separator is a muted rule with a centre mark.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
