package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkellman/cashsim/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, user, dataAge string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	right := ""
	if user != "" {
		right = user + " "
	}
	if dataAge != "" {
		right += fmt.Sprintf("Data: %s ", dataAge)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
