package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from a balance series.
// Values are min-shifted so negative balances still render sensibly.
func Sparkline(values []decimal.Decimal, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v.LessThan(lo) {
			lo = v
		}
		if v.GreaterThan(hi) {
			hi = v
		}
	}
	span := hi.Sub(lo)

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := 0
		if span.IsPositive() {
			frac, _ := v.Sub(lo).Div(span).Float64()
			idx = int(frac * float64(len(blocks)-1))
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// NetBars renders one cell per day, colored by the sign of the net change.
func NetBars(values []decimal.Decimal) string {
	t := theme.Active

	up := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	down := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	flat := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for _, v := range values {
		switch {
		case v.IsPositive():
			b.WriteString(up.Render("▀"))
		case v.IsNegative():
			b.WriteString(down.Render("▄"))
		default:
			b.WriteString(flat.Render("·"))
		}
	}
	return b.String()
}
