package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/tui/components"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if len(a.filtered) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  No shifts in the selected time range.\n  Press + to widen the window.")
		return empty
	}

	// Row 1: headline metric cards with trend deltas
	b.WriteString(components.MetricCardRow(a.headlineMetrics(), cw))
	b.WriteString("\n")

	// Row 2: daily production bar chart
	if len(a.daily) > 0 {
		vals := make([]float64, len(a.daily))
		labels := make([]string, len(a.daily))
		// GroupByDate is newest first, charts read oldest-left
		for i, d := range a.daily {
			j := len(a.daily) - 1 - i
			vals[j] = d.TotalProduction
			labels[j] = chartDateLabel(d.Date, j == 0)
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily Production (%dd)", a.days),
			components.BarChart(vals, labels, t.Blue, chartInnerW, 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: target attainment bars + top shift / consumption cards
	halves := components.LayoutRow(cw, 2)

	attainment := a.renderAttainmentCard(halves[0])
	right := components.ContentCard("Top Shift", a.renderTopShiftBody(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(attainment)
		b.WriteString("\n")
		b.WriteString(right)
	} else {
		b.WriteString(components.CardRow([]string{attainment, right}))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Reagent Consumption", a.renderConsumptionBody(), cw))

	return b.String()
}

// headlineMetrics builds the four overview cards with previous-period deltas.
func (a App) headlineMetrics() []components.Metric {
	t := theme.Active

	pick := func(name string) *model.KPI {
		for i := range a.kpis {
			if a.kpis[i].Name == name {
				return &a.kpis[i]
			}
		}
		return nil
	}

	trendColor := func(k *model.KPI) lipgloss.Color {
		switch k.Trend {
		case model.TrendUp:
			return t.Green
		case model.TrendDown:
			return t.Red
		default:
			return t.TextDim
		}
	}

	card := func(name, value string, k *model.KPI) components.Metric {
		m := components.Metric{Label: name, Value: value}
		if k != nil {
			m.Delta = fmt.Sprintf("%s %s vs prev %dd", cli.TrendArrow(k.Trend), k.Trend.Word(), a.days)
			m.DeltaColor = trendColor(k)
		}
		return m
	}

	var totalProduction float64
	for _, d := range a.daily {
		totalProduction += d.TotalProduction
	}

	metrics := make([]components.Metric, 0, 4)
	metrics = append(metrics, card("Production", cli.FormatTonnes(totalProduction), pick("Avg Production")))

	if k := pick("Efficiency"); k != nil {
		metrics = append(metrics, card("Efficiency", cli.FormatPercent(k.Value), k))
	}
	if k := pick("Downtime"); k != nil {
		metrics = append(metrics, card("Downtime", cli.FormatMinutes(k.Value), k))
	}
	if k := pick("Quality Rate"); k != nil {
		metrics = append(metrics, card("Quality", cli.FormatPercent(k.Value), k))
	}
	return metrics
}

// renderAttainmentCard shows KPI values as bars against their targets.
func (a App) renderAttainmentCard(outerW int) string {
	innerW := components.CardInnerWidth(outerW)

	labelW := 14
	barW := innerW - labelW - 7
	if barW < 10 {
		barW = 10
	}

	shown := []string{"Avg Production", "Efficiency", "Quality Rate", "Operating Hours", "Ore Flowrate"}
	var lines []string
	for _, name := range shown {
		for _, k := range a.kpis {
			if k.Name == name {
				lines = append(lines, components.TargetBar(truncStr(k.Name, labelW), k.Value, k.Target, labelW, barW))
			}
		}
	}

	return components.ContentCard("Target Attainment", strings.Join(lines, "\n"), outerW)
}

func (a App) renderTopShiftBody(innerW int) string {
	t := theme.Active
	if a.top == nil {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("No shifts in range")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(valueStyle.Render(cli.FormatShiftIdentifier(*a.top)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Product   ") + valueStyle.Render(cli.FormatTonnes(a.top.FinalProductTonnes)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Efficiency") + " " + valueStyle.Render(cli.FormatPercent(a.top.Efficiency)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Downtime  ") + valueStyle.Render(cli.FormatMinutes(a.top.Downtime)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Run by    ") + valueStyle.Render(truncStr(a.top.Responsible, innerW-10)))
	if a.top.Notes != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(a.top.Notes, "\n") {
			b.WriteString(dimStyle.Render(truncStr(line, innerW)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderConsumptionBody() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	row := func(name string, v float64, unit string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", name)) + valueStyle.Render(cli.FormatValue(v, unit))
	}

	return strings.Join([]string{
		row("Ester", a.consumption.Ester, "L"),
		row("Amin", a.consumption.Amin, "L"),
		row("Acid", a.consumption.Acid, "L"),
		row("Floculant", a.consumption.Floculant, "m³"),
	}, "\n")
}

// chartDateLabel builds a compact X-axis label for a canonical date.
// The first (oldest) column shows the month, the rest just the day number.
func chartDateLabel(date string, first bool) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return ""
	}
	if first {
		return d.Format("Jan 2")
	}
	return strconv.Itoa(d.Day())
}
