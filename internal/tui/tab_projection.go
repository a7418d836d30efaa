package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

func (a App) renderProjectionTab(cw, contentH int) string {
	t := theme.Active

	if a.result == nil || len(a.result.Days) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("\n  No projection data.")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	alertStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)

	days := a.result.Days

	// Clamp scroll so the last page stays full
	visible := contentH - 2 // header + column row
	if visible < 1 {
		visible = 1
	}
	maxScroll := len(days) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := a.projScroll
	if scroll > maxScroll {
		scroll = maxScroll
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-12s %-4s %14s %14s  %-12s  %s",
		"Date", "Day", "Net", "Balance", "Status", "Activity")))
	b.WriteString("\n")

	end := scroll + visible
	if end > len(days) {
		end = len(days)
	}
	for _, d := range days[scroll:end] {
		// Pad before styling so ANSI codes don't skew the columns
		status := okStyle.Render(fmt.Sprintf("%-12s", "OK"))
		if d.Alert == model.AlertBelowTarget {
			status = alertStyle.Render(fmt.Sprintf("%-12s", "BELOW"))
		}

		activity := dimStyle.Render(truncStr(d.Summary, cw-66))
		b.WriteString(rowStyle.Render(fmt.Sprintf("  %-12s %-4s %14s %14s  ",
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date),
			cli.FormatSignedMoney(d.NetChange),
			cli.FormatMoney(d.EndBalance))))
		b.WriteString(status)
		b.WriteString("  ")
		b.WriteString(activity)
		b.WriteString("\n")
	}

	if end < len(days) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more (j/k to scroll)", len(days)-end)))
	}

	return b.String()
}
