package source

import (
	"testing"

	"github.com/AI-MHT/dash/internal/model"
)

func TestParseFlatDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12/05/2025", "2025-05-12", false},
		{"01/01/2024", "2024-01-01", false},
		{"2025-05-12", "2025-05-12", false},
		{"May 12", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parseFlatDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFlatDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFlatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlatEfficiency(t *testing.T) {
	tests := []struct {
		hours float64
		stops int
		want  float64
	}{
		{12, 0, 100},  // full shift, no stops
		{0, 0, 0},     // no operating hours at all
		{-1, 0, 0},    // negative guards to 0
		{6, 10, 50},   // half hours (40) + half stop factor (10)
		{12, 20, 80},  // saturated stops zero out the stop factor
		{24, 0, 100},  // hours factor capped at the shift length
		{9, 4, 76},    // 60 + 16
	}
	for _, tt := range tests {
		if got := flatEfficiency(tt.hours, tt.stops); got != tt.want {
			t.Errorf("flatEfficiency(%v, %d) = %v, want %v", tt.hours, tt.stops, got, tt.want)
		}
	}
}

func TestFlatDowntime(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{12, 0},
		{10, 120},
		{0, 720},
		{14, 0}, // overtime never goes negative
		{11.5, 30},
	}
	for _, tt := range tests {
		if got := flatDowntime(tt.hours); got != tt.want {
			t.Errorf("flatDowntime(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestFlatQualityRate(t *testing.T) {
	// No flow figure: fixed 90
	if got := flatQualityRate(5000, 0); got != 90 {
		t.Errorf("flatQualityRate(5000, 0) = %v, want 90", got)
	}
	// Perfect achievement: product equals maxFlow * 12
	if got := flatQualityRate(7200, 600); got != 100 {
		t.Errorf("flatQualityRate(7200, 600) = %v, want 100", got)
	}
	// Half achievement lands mid-band
	if got := flatQualityRate(3600, 600); got != 90 {
		t.Errorf("flatQualityRate(3600, 600) = %v, want 90", got)
	}
	// Over-achievement is capped
	if got := flatQualityRate(20000, 600); got != 100 {
		t.Errorf("flatQualityRate(20000, 600) = %v, want 100", got)
	}
}

func flatHeaders() map[string]int {
	names := []string{
		"id",
		"completion time",
		"shift",
		"final product (tonnes)",
		"operating hours (hr)",
		"frequency of stops",
		"maximum flow reached (t/hr)",
		"ore phosphate solids flowrate (t)",
		"total ester consumption(l)",
		"responsible",
		"comment",
	}
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func TestFlatRowToShift(t *testing.T) {
	headers := flatHeaders()
	row := []string{"42", "12/05/2025", "2", "5216.4", "10", "3", "620", "6100", "450.5", "K. Older", "smooth run"}

	s, err := flatRowToShift(row, headers, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID != "42" {
		t.Errorf("ID = %q, want 42 (column value wins)", s.ID)
	}
	if s.Date != "2025-05-12" {
		t.Errorf("Date = %q, want 2025-05-12", s.Date)
	}
	if s.Slot != model.SlotNight {
		t.Errorf("Slot = %v, want SlotNight", s.Slot)
	}
	if s.FinalProductTonnes != 5216.4 {
		t.Errorf("FinalProductTonnes = %v, want 5216.4", s.FinalProductTonnes)
	}
	if s.StopsFrequency != 3 {
		t.Errorf("StopsFrequency = %v, want 3", s.StopsFrequency)
	}
	if s.Downtime != 120 {
		t.Errorf("Downtime = %v, want 120", s.Downtime)
	}
	if model.Val(s.OreFlowrate) != 6100 {
		t.Errorf("OreFlowrate = %v, want 6100", model.Val(s.OreFlowrate))
	}
	if model.Val(s.EsterConsumption) != 450.5 {
		t.Errorf("EsterConsumption = %v, want 450.5", model.Val(s.EsterConsumption))
	}
	if s.Responsible != "K. Older" {
		t.Errorf("Responsible = %q", s.Responsible)
	}
}

func TestFlatRowToShift_UnderscoreMeansAbsent(t *testing.T) {
	headers := flatHeaders()
	row := []string{"", "12/05/2025", "1", "5000", "10", "0", "600", "_", "_", "", ""}

	s, err := flatRowToShift(row, headers, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.OreFlowrate != nil {
		t.Errorf("OreFlowrate = %v, want nil for underscore cell", *s.OreFlowrate)
	}
	if s.EsterConsumption != nil {
		t.Error("EsterConsumption should be nil for underscore cell")
	}
	if s.ID != "2025-05-12-Day" {
		t.Errorf("ID = %q, want synthesized 2025-05-12-Day", s.ID)
	}
}

func TestFlatRowToShift_BlankAndBrokenRows(t *testing.T) {
	headers := flatHeaders()

	// Blank completion time: skipped without error
	s, err := flatRowToShift([]string{"", "", "1", "5000"}, headers, 3)
	if err != nil || s != nil {
		t.Errorf("blank row: got (%v, %v), want (nil, nil)", s, err)
	}

	// Missing final product: counted as a parse error
	_, err = flatRowToShift([]string{"", "12/05/2025", "1", ""}, headers, 4)
	if err == nil {
		t.Error("expected error for missing final product tonnage")
	}

	// Unparseable date
	_, err = flatRowToShift([]string{"", "sometime", "1", "5000"}, headers, 5)
	if err == nil {
		t.Error("expected error for invalid date")
	}
}
