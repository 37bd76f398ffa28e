package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	Subtle      lipgloss.Style
	Selected    lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	PassStyle   lipgloss.Style
	FailStyle   lipgloss.Style
	KeyHint     lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	PassStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(t.Muted)
}

// CheckMark renders a pass or fail marker.
func CheckMark(passed bool) string {
	if passed {
		return PassStyle.Render("✓")
	}
	return FailStyle.Render("✗")
}

// Sparkline renders values as a one-line bar chart of at most width cells.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// Separator is a muted horizontal rule.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}

// KeyHelp renders "key action" pairs in a single line.
func KeyHelp(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(Selected.Render(pairs[i]) + " " + KeyHint.Render(pairs[i+1]))
	}
	return b.String()
}
