// Package report serializes a pipeline run into a formatted XLSX workbook,
// the printable hand-off consumed outside the dashboard.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AI-MHT/dash/internal/model"
)

const sheetName = "Shift Report"

// Data is the full hand-off from the pipeline to the export layer.
type Data struct {
	Filter      model.Filter
	Shifts      []model.Shift // filtered, input order
	KPIs        []model.KPI
	Daily       []model.DailyAggregate
	Top         *model.Shift
	Consumption model.ConsumptionTotals
	DailyTarget float64 // per-day production target for the summary table
	GeneratedAt time.Time
}

// FileName returns the conventional report file name for a generation date.
func FileName(t time.Time) string {
	return fmt.Sprintf("Shift_Report_%s.xlsx", t.Format("2006-01-02"))
}

// Write builds the report workbook and writes it to w.
func Write(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	f.SetSheetName("Sheet1", sheetName)

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("creating styles: %w", err)
	}
	headStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	dimStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "808080"}})

	b := builder{f: f, row: 1, headStyle: headStyle}

	// Title, range, and active filters
	b.styledRow(titleStyle, "Shift Report")
	b.styledRow(dimStyle, fmt.Sprintf("%s to %s",
		d.Filter.From.Format("Jan 02, 2006"), d.Filter.To.Format("Jan 02, 2006")))
	if line := filterLine(d.Filter); line != "" {
		b.styledRow(dimStyle, line)
	}
	b.blank()

	// KPIs
	b.section("Key Performance Indicators")
	b.header("Metric", "Value", "Target", "Status")
	for _, k := range d.KPIs {
		b.cells(k.Name, valueWithUnit(k.Value, k.Unit), valueWithUnit(k.Target, k.Unit), trendWord(k.Trend))
	}
	b.blank()

	// Chemical consumption
	b.section("Chemical Consumption")
	b.header("Chemical", "Total Consumption")
	b.cells("Ester", fmt.Sprintf("%.1f L", d.Consumption.Ester))
	b.cells("Amin", fmt.Sprintf("%.1f L", d.Consumption.Amin))
	b.cells("Acid", fmt.Sprintf("%.1f L", d.Consumption.Acid))
	b.cells("Floculant", fmt.Sprintf("%.1f m³", d.Consumption.Floculant))
	b.blank()

	// Top performing shift
	if d.Top != nil {
		top := *d.Top
		b.section("Top Performing Shift")
		b.header("Shift", "Production", "Efficiency", "Quality Rate", "Downtime", "Stops")
		b.cells(
			fmt.Sprintf("%s - Shift %d", top.Date, int(top.Slot)),
			fmt.Sprintf("%.1f T", top.FinalProductTonnes),
			fmt.Sprintf("%.1f%%", top.Efficiency),
			fmt.Sprintf("%.1f%%", top.QualityRate),
			fmt.Sprintf("%.0f min", top.Downtime),
			top.StopsFrequency,
		)
		if top.Notes != "" {
			b.cells("Notes")
			for _, line := range strings.Split(top.Notes, "\n") {
				b.styledRow(dimStyle, line)
			}
		}
		b.blank()
	}

	// Daily production summary
	b.section("Daily Production Summary")
	b.header("Date", "Shift 1 (T)", "Shift 2 (T)", "Total (T)", "Target (T)", "Variance")
	for _, day := range d.Daily {
		s1, s2 := "N/A", "N/A"
		for _, s := range day.Shifts {
			switch s.Slot {
			case model.SlotDay:
				s1 = fmt.Sprintf("%.1f", s.FinalProductTonnes)
			case model.SlotNight:
				s2 = fmt.Sprintf("%.1f", s.FinalProductTonnes)
			}
		}
		variance := day.TotalProduction - d.DailyTarget
		b.cells(day.Date, s1, s2,
			fmt.Sprintf("%.1f", day.TotalProduction),
			fmt.Sprintf("%.0f", d.DailyTarget),
			fmt.Sprintf("%+.1f", variance),
		)
	}
	b.blank()

	// Detailed shift data
	b.section("Detailed Shift Data")
	b.header("Date", "Shift", "Production (T)", "Efficiency", "Downtime", "Quality", "Stops", "Responsible")
	for _, s := range d.Shifts {
		responsible := s.Responsible
		if responsible == "" {
			responsible = "N/A"
		}
		b.cells(s.Date, int(s.Slot),
			fmt.Sprintf("%.1f", s.FinalProductTonnes),
			fmt.Sprintf("%.1f%%", s.Efficiency),
			fmt.Sprintf("%.0f min", s.Downtime),
			fmt.Sprintf("%.1f%%", s.QualityRate),
			s.StopsFrequency,
			responsible,
		)
	}
	b.blank()

	b.styledRow(dimStyle, "Generated on "+d.GeneratedAt.Format("2006-01-02 15:04"))

	if b.err != nil {
		return fmt.Errorf("building report: %w", b.err)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 24)
	_ = f.SetColWidth(sheetName, "B", "F", 16)
	_ = f.SetColWidth(sheetName, "G", "H", 14)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// filterLine summarizes the active optional filters, empty when none.
func filterLine(f model.Filter) string {
	var parts []string
	if f.Slot != model.SlotAny {
		parts = append(parts, fmt.Sprintf("Shift: %d", int(f.Slot)))
	}
	if f.Responsible != "" {
		parts = append(parts, "Responsible: "+f.Responsible)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filters: " + strings.Join(parts, " | ")
}

func valueWithUnit(v float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

func trendWord(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return "↑ Good"
	case model.TrendDown:
		return "↓ Needs Attention"
	default:
		return "→ Stable"
	}
}

// builder appends rows to the sheet, tracking the cursor and the first error.
type builder struct {
	f         *excelize.File
	row       int
	headStyle int
	err       error
}

func (b *builder) cells(values ...any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, b.row)
	if err != nil {
		b.err = err
		return
	}
	if err := b.f.SetSheetRow(sheetName, cell, &values); err != nil {
		b.err = err
		return
	}
	b.row++
}

func (b *builder) styledSpan(style int, cols int) {
	if b.err != nil {
		return
	}
	start, _ := excelize.CoordinatesToCellName(1, b.row)
	end, _ := excelize.CoordinatesToCellName(cols, b.row)
	if err := b.f.SetCellStyle(sheetName, start, end, style); err != nil {
		b.err = err
	}
}

func (b *builder) header(values ...any) {
	b.styledSpan(b.headStyle, len(values))
	b.cells(values...)
}

func (b *builder) section(title string) {
	b.styledSpan(b.headStyle, 1)
	b.cells(title)
}

func (b *builder) styledRow(style int, text string) {
	b.styledSpan(style, 1)
	b.cells(text)
}

func (b *builder) blank() {
	b.row++
}
