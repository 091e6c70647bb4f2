package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/tui/theme"
)

// ProgressBar renders a parsing progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		" " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForAttainment maps a value-vs-target ratio to a status color.
// Green at or above target, shading down to red below half of it.
func ColorForAttainment(ratio float64) string {
	t := theme.Active
	switch {
	case ratio >= 1.0:
		return string(t.Green)
	case ratio >= 0.85:
		return string(t.Yellow)
	case ratio >= 0.5:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// TargetBar renders a labeled bar showing a metric's attainment of its target.
func TargetBar(label string, value, target float64, labelW, barWidth int) string {
	t := theme.Active

	ratio := 0.0
	if target > 0 {
		ratio = value / target
	}
	pct := ratio
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForAttainment(ratio)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForAttainment(ratio))).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + bar.ViewAs(pct) +
		" " + pctStyle.Render(fmt.Sprintf("%3.0f%%", ratio*100))
}
