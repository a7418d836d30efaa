package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/tui/components"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active

	if a.result == nil || len(a.result.Days) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("\n  No projection data.")
	}

	days := a.result.Days
	last := days[len(days)-1]

	minBal := days[0].EndBalance
	for _, d := range days[1:] {
		if d.EndBalance.LessThan(minBal) {
			minBal = d.EndBalance
		}
	}

	alerts := a.result.AlertDays()
	alertDetail := "all days at or above target"
	if len(alerts) > 0 {
		alertDetail = "first on " + alerts[0].Date.Format("Jan 2")
	}

	transferDetail := "no surplus this window"
	if len(a.result.Transfers) > 0 {
		next := a.result.Transfers[0]
		transferDetail = fmt.Sprintf("next %s on %s",
			cli.FormatMoney(next.Amount), next.Date.Format("Jan 2"))
	}

	cards := []struct{ Label, Value, Detail string }{
		{"End Balance", cli.FormatMoney(last.EndBalance), last.Date.Format("Jan 2")},
		{"Lowest Balance", cli.FormatMoney(minBal), ""},
		{"Alert Days", strconv.Itoa(len(alerts)), alertDetail},
		{"Transfers Out", cli.FormatMoney(a.result.TotalTransferred()), transferDetail},
	}

	out := components.MetricCardRow(cards, cw)

	// Balance trajectory chart
	balances := make([]decimal.Decimal, len(days))
	nets := make([]decimal.Decimal, len(days))
	for i, d := range days {
		balances[i] = d.EndBalance
		nets[i] = d.NetChange
	}

	chartW := components.CardInnerWidth(cw)
	if len(balances) > chartW {
		balances = sampleSeries(balances, chartW)
		nets = sampleSeries(nets, chartW)
	}

	body := components.Sparkline(balances, t.Accent) + "\n" +
		components.NetBars(nets)
	out += "\n" + components.ContentCard(
		fmt.Sprintf("Balance · next %dd", a.window), body, cw)

	// Upcoming activity
	out += "\n" + components.ContentCard("Upcoming", a.renderUpcoming(components.CardInnerWidth(cw)), cw)

	return out
}

// renderUpcoming lists the next few days with ledger activity.
func (a App) renderUpcoming(width int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var lines []string
	for _, d := range a.result.Days {
		if d.Summary == "" {
			continue
		}
		line := mutedStyle.Render(d.Date.Format("Jan 02")+"  ") +
			valStyle.Render(truncStr(d.Summary, width-8))
		if d.Alert == model.AlertBelowTarget {
			line = mutedStyle.Render(d.Date.Format("Jan 02")+"  ") +
				lipgloss.NewStyle().Foreground(t.Red).Render(truncStr(d.Summary, width-8))
		}
		lines = append(lines, line)
		if len(lines) >= 8 {
			break
		}
	}
	if len(lines) == 0 {
		return mutedStyle.Render("No forecast activity in this window.")
	}

	out := lines[0]
	for _, l := range lines[1:] {
		out += "\n" + l
	}
	return out
}

// sampleSeries reduces a series to at most n points, keeping the endpoints.
func sampleSeries(values []decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}
