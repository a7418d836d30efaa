package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/tui/components"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	cfg, _ := config.Load()

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valStyle.Render(value)
	}

	general := strings.Join([]string{
		line("Config file", config.Path()),
		line("Data directory", a.dataDir),
		line("Default user", cfg.General.DefaultUser),
		line("Default window", fmt.Sprintf("%d days", cfg.General.DefaultWindowDays)),
		line("Theme", cfg.Appearance.Theme),
	}, "\n")

	out := components.ContentCard("Configuration", general, cw)

	if a.data != nil {
		current, target, err := a.data.Profile.ParseBalances()
		profile := ""
		if err == nil {
			profile = strings.Join([]string{
				line("Current balance", cli.FormatMoney(current)),
				line("Target balance", cli.FormatMoney(target)),
				line("Categories", strings.Join(a.data.Profile.Categories.Valid, ", ")),
				line("Transactions", fmt.Sprintf("%d (%d skipped)", len(a.data.Transactions), a.data.RowErrors)),
			}, "\n")
		} else {
			profile = labelStyle.Render(err.Error())
		}
		out += "\n" + components.ContentCard("Profile · "+a.user, profile, cw)
	}

	hint := labelStyle.Render("Edit with `cashsim setup`, or change profile.toml and press r to reload.")
	out += "\n" + hint

	return out
}
