package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, loadTime string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	right := ""
	if refreshing {
		right = "refreshing... "
	} else if loadTime != "" {
		right = fmt.Sprintf("Loaded in %s ", loadTime)
	}

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
