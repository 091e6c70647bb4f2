package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AI-MHT/dash/internal/model"
)

func reportData() Data {
	top := model.Shift{
		ID: "2025-05-12-Day", Date: "2025-05-12", Slot: model.SlotDay,
		FinalProductTonnes: 5400, Efficiency: 95, QualityRate: 100,
		Downtime: 90, StopsFrequency: 1, Responsible: "A. Benali",
		Notes: "Feed: 6100.0 T (Target: 6500.0 T)",
	}
	night := model.Shift{
		ID: "2025-05-12-Night", Date: "2025-05-12", Slot: model.SlotNight,
		FinalProductTonnes: 4600, Efficiency: 89, QualityRate: 100,
		Downtime: 210, StopsFrequency: 3,
	}
	return Data{
		Filter: model.Filter{
			From: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		},
		Shifts: []model.Shift{top, night},
		KPIs: []model.KPI{
			{Name: "Avg Production", Value: 5000, Target: 5000, Unit: "T", Trend: model.TrendStable},
		},
		Daily: []model.DailyAggregate{
			{Date: "2025-05-12", Shifts: []model.Shift{top, night},
				TotalProduction: 10000, AvgEfficiency: 92, TotalDowntime: 300},
		},
		Top:         &top,
		Consumption: model.ConsumptionTotals{Ester: 800, Amin: 300, Acid: 120, Floculant: 40},
		DailyTarget: 10000,
		GeneratedAt: time.Date(2025, 5, 13, 8, 30, 0, 0, time.UTC),
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, reportData()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		t.Fatalf("sheet %q not present", sheetName)
	}

	title, err := f.GetCellValue(sheetName, "A1")
	if err != nil {
		t.Fatalf("reading A1: %v", err)
	}
	if title != "Shift Report" {
		t.Errorf("A1 = %q, want workbook title", title)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}
	for _, want := range []string{
		"Key Performance Indicators",
		"Avg Production",
		"Chemical Consumption",
		"800.0 L",
		"Top Performing Shift",
		"Daily Production Summary",
		"2025-05-12",
		"Detailed Shift Data",
		"A. Benali",
	} {
		if !containsCell(flat, want) {
			t.Errorf("workbook missing cell %q", want)
		}
	}
}

func containsCell(cells []string, want string) bool {
	for _, c := range cells {
		if c == want {
			return true
		}
	}
	return false
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2025, 5, 13, 8, 30, 0, 0, time.UTC))
	if got != "Shift_Report_2025-05-13.xlsx" {
		t.Errorf("FileName = %q", got)
	}
}

func TestFilterLine(t *testing.T) {
	f := model.Filter{}
	if got := filterLine(f); got != "" {
		t.Errorf("no filters should yield empty line, got %q", got)
	}

	f.Slot = model.SlotNight
	f.Responsible = "A. Benali"
	want := "Filters: Shift: 2 | Responsible: A. Benali"
	if got := filterLine(f); got != want {
		t.Errorf("filterLine = %q, want %q", got, want)
	}
}
