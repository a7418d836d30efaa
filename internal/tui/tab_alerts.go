package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/tui/components"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

func (a App) renderAlertsTab(cw int) string {
	t := theme.Active

	if a.result == nil {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("\n  No projection data.")
	}

	alerts := a.result.AlertDays()
	if len(alerts) == 0 {
		ok := lipgloss.NewStyle().Foreground(t.Green).Bold(true).
			Render("All clear. No days below target in this window.")
		return components.ContentCard("Alerts", ok, cw)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	alertStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, d := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(alertStyle.Render(d.Date.Format("Mon Jan 02")))
		b.WriteString(mutedStyle.Render("  balance "))
		b.WriteString(valStyle.Render(cli.FormatMoney(d.EndBalance)))
		b.WriteString(mutedStyle.Render("  add funds "))
		b.WriteString(valStyle.Render(cli.FormatMoney(d.Shortfall)))
	}

	title := fmt.Sprintf("Alerts · %d day(s) below target", len(alerts))
	return components.ContentCard(title, b.String(), cw)
}
