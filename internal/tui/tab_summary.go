package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/tui/components"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	st := a.summary.Statement

	lineFor := func(label string, v decimal.Decimal) string {
		style := valStyle
		if v.IsNegative() {
			style = lipgloss.NewStyle().Foreground(t.Red)
		} else if v.IsPositive() {
			style = lipgloss.NewStyle().Foreground(t.Green)
		}
		return mutedStyle.Render(fmt.Sprintf("%-20s", label)) + style.Render(cli.FormatSignedMoney(v))
	}

	statement := strings.Join([]string{
		lineFor("Revenue", st.Revenue),
		lineFor("Fixed Expenses", st.FixedExpenses),
		lineFor("Variable Expenses", st.VariableExpenses),
		lineFor("Profit Margin", st.ProfitMargin),
		lineFor("Misc Income", st.MiscIncome),
		lineFor("Misc Expenses", st.MiscExpenses),
		lineFor("Net Income", st.NetIncome),
	}, "\n")

	title := "Cash Flow Statement · " + time.Now().Format("January 2006")
	out := components.ContentCard(title, statement, cw)

	// Category breakdown
	categories := make([]string, 0, len(a.summary.Categories))
	for cat := range a.summary.Categories {
		if len(a.summary.Categories[cat]) == 0 {
			continue
		}
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		descs := make([]string, 0, len(a.summary.Categories[cat]))
		for desc := range a.summary.Categories[cat] {
			descs = append(descs, desc)
		}
		sort.Strings(descs)

		var b strings.Builder
		for i, desc := range descs {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%-28s", truncStr(desc, 27))))
			b.WriteString(valStyle.Render(cli.FormatSignedMoney(a.summary.Categories[cat][desc])))
		}
		out += "\n" + components.ContentCard(cat, b.String(), cw)
	}

	return out
}
