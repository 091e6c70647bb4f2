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

// shiftsState tracks the shifts tab list and detail pane.
type shiftsState struct {
	cursor       int
	offset       int // first visible list row
	detailScroll int
}

func (a App) renderShiftsTab(cw, contentH int) string {
	t := theme.Active

	if len(a.filtered) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  No shifts in the selected time range.")
	}

	if a.isCompactLayout() {
		listH := contentH - 2
		return a.renderShiftList(cw, listH)
	}

	// Split view: list on the left, selected shift detail on the right
	listW := cw * 55 / 100
	detailW := cw - listW
	listH := contentH - 2

	list := a.renderShiftList(listW, listH)
	detail := a.renderShiftDetail(detailW, contentH)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (a *App) ensureCursorVisible(visible int) {
	if a.shiftsState.cursor < a.shiftsState.offset {
		a.shiftsState.offset = a.shiftsState.cursor
	}
	if a.shiftsState.cursor >= a.shiftsState.offset+visible {
		a.shiftsState.offset = a.shiftsState.cursor - visible + 1
	}
	if a.shiftsState.offset < 0 {
		a.shiftsState.offset = 0
	}
}

func (a App) renderShiftList(outerW, listH int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	visible := listH - 3 // title + header + possible overflow line
	if visible < 3 {
		visible = 3
	}
	a.ensureCursorVisible(visible)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-7s %10s %8s  %s", "Date", "Shift", "Product", "Eff", "Responsible")))
	b.WriteString("\n")

	end := a.shiftsState.offset + visible
	if end > len(a.filtered) {
		end = len(a.filtered)
	}

	for i := a.shiftsState.offset; i < end; i++ {
		s := a.filtered[i]
		respW := innerW - 42
		if respW < 4 {
			respW = 4
		}
		line := fmt.Sprintf("%-12s %-7s %10s %8s  %s",
			s.Date,
			s.Slot.String(),
			cli.FormatTonnes(s.FinalProductTonnes),
			cli.FormatPercent(s.Efficiency),
			truncStr(s.Responsible, respW),
		)
		if i == a.shiftsState.cursor {
			b.WriteString(selStyle.Render(truncStr(line, innerW)))
		} else {
			b.WriteString(rowStyle.Render(truncStr(line, innerW)))
		}
		b.WriteString("\n")
	}

	if end < len(a.filtered) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(a.filtered)-end)))
	}

	title := fmt.Sprintf("Shifts (%d)", len(a.filtered))
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), outerW)
}

func (a App) renderShiftDetail(outerW, contentH int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	if a.shiftsState.cursor >= len(a.filtered) {
		return ""
	}
	s := a.filtered[a.shiftsState.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	lines := []string{
		row("Shift", cli.FormatShiftIdentifier(s)),
		row("Hours", cli.FormatShiftTime(s)),
		row("Responsible", truncStr(s.Responsible, innerW-14)),
		"",
		row("Final Product", cli.FormatTonnes(s.FinalProductTonnes)),
		row("Efficiency", cli.FormatPercent(s.Efficiency)),
		row("Downtime", cli.FormatMinutes(s.Downtime)),
		row("Quality Rate", cli.FormatPercent(s.QualityRate)),
		row("Stops", fmt.Sprintf("%d", s.StopsFrequency)),
		row("Op. Hours", fmt.Sprintf("%.1f h", s.OperatingHours)),
		row("Max Flow", fmt.Sprintf("%.1f T/h", s.MaxFlowRate)),
	}

	if v := optRow("Ore Flowrate", s.OreFlowrate, "T", row); v != "" {
		lines = append(lines, v)
	}
	if v := optRow("Received", s.ReceivedPhosphate, "T", row); v != "" {
		lines = append(lines, v)
	}
	if v := optRow("Waste", s.WasteTonnes, "T", row); v != "" {
		lines = append(lines, v)
	}

	if s.Notes != "" {
		lines = append(lines, "")
		for _, n := range strings.Split(s.Notes, "\n") {
			lines = append(lines, dimStyle.Render(truncStr(n, innerW)))
		}
	}

	// Apply detail pane scroll
	scroll := a.shiftsState.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	body := strings.Join(lines[scroll:], "\n")

	return components.ContentCard("Detail", body, outerW)
}

func optRow(label string, v *float64, unit string, row func(string, string) string) string {
	if v == nil {
		return ""
	}
	return row(label, cli.FormatValue(model.Val(v), unit))
}
