package pipeline

import (
	"testing"

	"github.com/AI-MHT/dash/internal/model"
)

func TestGroupByDate_NewestFirst(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "", 1000),
		mkShift("2025-05-12", model.SlotDay, "", 2000),
		mkShift("2025-05-11", model.SlotDay, "", 3000),
		mkShift("2025-05-12", model.SlotNight, "", 4000),
	}

	days := GroupByDate(shifts)
	if len(days) != 3 {
		t.Fatalf("len = %d, want 3", len(days))
	}

	wantOrder := []string{"2025-05-12", "2025-05-11", "2025-05-10"}
	for i, w := range wantOrder {
		if days[i].Date != w {
			t.Errorf("days[%d].Date = %s, want %s", i, days[i].Date, w)
		}
	}
}

func TestGroupByDate_Totals(t *testing.T) {
	d1 := mkShift("2025-05-12", model.SlotDay, "", 5200)
	d1.Efficiency = 96
	d1.Downtime = 30
	d2 := mkShift("2025-05-12", model.SlotNight, "", 4800)
	d2.Efficiency = 88
	d2.Downtime = 70

	days := GroupByDate([]model.Shift{d1, d2})
	if len(days) != 1 {
		t.Fatalf("len = %d, want 1", len(days))
	}

	agg := days[0]
	if agg.TotalProduction != 10000 {
		t.Errorf("TotalProduction = %v, want 10000", agg.TotalProduction)
	}
	if agg.AvgEfficiency != 92 {
		t.Errorf("AvgEfficiency = %v, want 92 (mean, not sum)", agg.AvgEfficiency)
	}
	if agg.TotalDowntime != 100 {
		t.Errorf("TotalDowntime = %v, want 100", agg.TotalDowntime)
	}
	if len(agg.Shifts) != 2 {
		t.Errorf("len(Shifts) = %d, want 2", len(agg.Shifts))
	}
}

func TestGroupByDate_Partition(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "", 1),
		mkShift("2025-05-11", model.SlotDay, "", 2),
		mkShift("2025-05-11", model.SlotNight, "", 3),
		mkShift("2025-05-12", model.SlotNight, "", 4),
	}

	days := GroupByDate(shifts)

	total := 0
	for _, d := range days {
		total += len(d.Shifts)
		for _, s := range d.Shifts {
			if s.Date != d.Date {
				t.Errorf("shift %s grouped under %s", s.ID, d.Date)
			}
		}
	}
	if total != len(shifts) {
		t.Errorf("groups hold %d shifts, want %d (every shift in exactly one group)", total, len(shifts))
	}
}

func TestGroupByDate_Empty(t *testing.T) {
	if days := GroupByDate(nil); len(days) != 0 {
		t.Errorf("len = %d, want 0", len(days))
	}
}

func TestFindTop(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "", 4800),
		mkShift("2025-05-11", model.SlotDay, "", 5200),
		mkShift("2025-05-12", model.SlotDay, "", 5100),
	}

	top := FindTop(shifts)
	if top == nil {
		t.Fatal("top = nil")
	}
	if top.Date != "2025-05-11" {
		t.Errorf("top.Date = %s, want 2025-05-11", top.Date)
	}
}

func TestFindTop_TieKeepsFirst(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "", 5000),
		mkShift("2025-05-11", model.SlotDay, "", 5000),
	}

	top := FindTop(shifts)
	if top.Date != "2025-05-10" {
		t.Errorf("top.Date = %s, want first of the tied shifts", top.Date)
	}
}

func TestFindTop_Empty(t *testing.T) {
	if top := FindTop(nil); top != nil {
		t.Errorf("top = %v, want nil", top)
	}
}

func TestTotalConsumption(t *testing.T) {
	s1 := mkShift("2025-05-10", model.SlotDay, "", 1)
	s1.EsterConsumption = model.Ptr(450.5)
	s1.AminConsumption = model.Ptr(200)
	s1.FloculantConsumption = model.Ptr(30)

	s2 := mkShift("2025-05-10", model.SlotNight, "", 2)
	s2.EsterConsumption = model.Ptr(349.5)
	s2.AcidConsumption = model.Ptr(120)
	// Amin and Floculant absent: treated as 0

	totals := TotalConsumption([]model.Shift{s1, s2})

	if totals.Ester != 800 {
		t.Errorf("Ester = %v, want 800", totals.Ester)
	}
	if totals.Amin != 200 {
		t.Errorf("Amin = %v, want 200", totals.Amin)
	}
	if totals.Acid != 120 {
		t.Errorf("Acid = %v, want 120", totals.Acid)
	}
	if totals.Floculant != 30 {
		t.Errorf("Floculant = %v, want 30", totals.Floculant)
	}
}

func TestTotalConsumption_Empty(t *testing.T) {
	totals := TotalConsumption(nil)
	if totals != (model.ConsumptionTotals{}) {
		t.Errorf("totals = %+v, want zero value", totals)
	}
}
