package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/tui/components"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

func (a App) renderDailyTab(cw int) string {
	t := theme.Active

	if len(a.daily) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  No data for the selected period.")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green)
	badStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	fmtRow := "%-12s %12s %12s %12s %9s %10s %10s"
	b.WriteString(headerStyle.Render(fmt.Sprintf(fmtRow,
		"Date", "Shift 1", "Shift 2", "Total", "Avg Eff", "Downtime", "vs Target")))
	b.WriteString("\n")

	target := a.targets.DailyTonnes

	for _, d := range a.daily {
		day := dailySlotTonnes(d.Shifts, model.SlotDay)
		night := dailySlotTonnes(d.Shifts, model.SlotNight)

		variance := ""
		varStyle := dimStyle
		if target > 0 {
			pct := (d.TotalProduction - target) / target * 100
			variance = cli.FormatVariance(pct) + "%"
			if pct >= 0 {
				varStyle = goodStyle
			} else {
				varStyle = badStyle
			}
		}

		line := fmt.Sprintf("%-12s %12s %12s %12s %9s %10s ",
			d.Date,
			day,
			night,
			cli.FormatTonnes(d.TotalProduction),
			cli.FormatPercent(d.AvgEfficiency),
			cli.FormatMinutes(d.TotalDowntime),
		)
		b.WriteString(rowStyle.Render(line))
		b.WriteString(varStyle.Render(fmt.Sprintf("%10s", variance)))
		b.WriteString("\n")
	}

	return components.ContentCard(fmt.Sprintf("Daily Production (%dd)", a.days),
		strings.TrimRight(b.String(), "\n"), cw)
}

func dailySlotTonnes(shifts []model.Shift, slot model.ShiftSlot) string {
	for _, s := range shifts {
		if s.Slot == slot {
			return cli.FormatTonnes(s.FinalProductTonnes)
		}
	}
	return "N/A"
}
