package pipeline

import (
	"testing"

	"github.com/AI-MHT/dash/internal/model"
)

func kpiByName(kpis []model.KPI, name string) *model.KPI {
	for i := range kpis {
		if kpis[i].Name == name {
			return &kpis[i]
		}
	}
	return nil
}

func TestComputeKPIs_EmptyInput(t *testing.T) {
	kpis := ComputeKPIs(nil, nil, model.DefaultTargets())
	if kpis == nil {
		t.Fatal("kpis = nil, want empty slice")
	}
	if len(kpis) != 0 {
		t.Errorf("len = %d, want 0", len(kpis))
	}
}

func TestComputeKPIs_Catalog(t *testing.T) {
	d1 := mkShift("2025-05-12", model.SlotDay, "A. Benali", 5200)
	d1.Efficiency = 96
	d1.Downtime = 30
	d1.QualityRate = 100
	d1.StopsFrequency = 2
	d1.OperatingHours = 11.5
	d1.MaxFlowRate = 640
	d1.EsterConsumption = model.Ptr(400)

	d2 := mkShift("2025-05-12", model.SlotNight, "K. Older", 4800)
	d2.Efficiency = 88
	d2.Downtime = 70
	d2.QualityRate = 98
	d2.StopsFrequency = 4
	d2.OperatingHours = 10.5
	d2.MaxFlowRate = 600
	d2.EsterConsumption = model.Ptr(350)

	kpis := ComputeKPIs([]model.Shift{d1, d2}, nil, model.DefaultTargets())

	if len(kpis) != 14 {
		t.Fatalf("len = %d, want the full 14-entry catalog", len(kpis))
	}

	if k := kpiByName(kpis, "Avg Production"); k == nil || k.Value != 5000 {
		t.Errorf("Avg Production = %+v, want mean 5000", k)
	}
	if k := kpiByName(kpis, "Efficiency"); k == nil || k.Value != 92 {
		t.Errorf("Efficiency = %+v, want mean 92", k)
	}
	if k := kpiByName(kpis, "Downtime"); k == nil || k.Value != 50 {
		t.Errorf("Downtime = %+v, want mean 50", k)
	}
	// Consumption aggregates as a sum, not a mean
	if k := kpiByName(kpis, "Ester Consumption"); k == nil || k.Value != 750 {
		t.Errorf("Ester Consumption = %+v, want sum 750", k)
	}
	if k := kpiByName(kpis, "Avg Production"); k.Target != 5000 || k.Unit != "T" {
		t.Errorf("Avg Production target/unit = %v/%s", k.Target, k.Unit)
	}
}

func TestComputeKPIs_TrendAgainstBaseline(t *testing.T) {
	cur := mkShift("2025-05-12", model.SlotDay, "", 6000)
	prev := mkShift("2025-05-05", model.SlotDay, "", 5000)

	kpis := ComputeKPIs([]model.Shift{cur}, []model.Shift{prev}, model.DefaultTargets())

	// 6000 vs 5000 is +20%, clearly rising
	if k := kpiByName(kpis, "Avg Production"); k.Trend != model.TrendUp {
		t.Errorf("Avg Production trend = %s, want up", k.Trend)
	}
}

func TestComputeKPIs_NoBaselineIsStable(t *testing.T) {
	cur := mkShift("2025-05-12", model.SlotDay, "", 6000)
	kpis := ComputeKPIs([]model.Shift{cur}, nil, model.DefaultTargets())
	if k := kpiByName(kpis, "Avg Production"); k.Trend != model.TrendStable {
		t.Errorf("trend with empty baseline = %s, want stable", k.Trend)
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		baseline float64
		inverse  bool
		want     model.Trend
	}{
		{"rising", 120, 100, false, model.TrendUp},
		{"falling", 80, 100, false, model.TrendDown},
		{"exactly at threshold is stable", 105, 100, false, model.TrendStable},
		{"just past threshold rises", 105.1, 100, false, model.TrendUp},
		{"small change is stable", 102, 100, false, model.TrendStable},
		{"zero baseline is stable", 50, 0, false, model.TrendStable},
		{"inverse metric falling reads up", 80, 100, true, model.TrendUp},
		{"inverse metric rising reads down", 120, 100, true, model.TrendDown},
		{"inverse within threshold stays stable", 104, 100, true, model.TrendStable},
	}

	for _, tt := range tests {
		if got := classifyTrend(tt.current, tt.baseline, tt.inverse); got != tt.want {
			t.Errorf("%s: classifyTrend(%v, %v, %v) = %s, want %s",
				tt.name, tt.current, tt.baseline, tt.inverse, got, tt.want)
		}
	}
}

// End-to-end over one reporting day: filter, group, rank, and compute.
func TestPipeline_SingleDay(t *testing.T) {
	d1 := mkShift("2025-05-12", model.SlotDay, "A. Benali", 5200)
	d1.Efficiency = 96
	d1.Downtime = 30
	d2 := mkShift("2025-05-12", model.SlotNight, "K. Older", 4800)
	d2.Efficiency = 88
	d2.Downtime = 70

	f := model.Filter{From: day("2025-05-12"), To: day("2025-05-12")}
	filtered := Filter([]model.Shift{d1, d2}, f)

	days := GroupByDate(filtered)
	if len(days) != 1 {
		t.Fatalf("days = %d, want 1", len(days))
	}
	agg := days[0]
	if agg.TotalProduction != 10000 || agg.AvgEfficiency != 92 || agg.TotalDowntime != 100 {
		t.Errorf("daily aggregate = %+v", agg)
	}

	top := FindTop(filtered)
	if top == nil || top.Slot != model.SlotDay {
		t.Errorf("top = %+v, want the day shift", top)
	}

	kpis := ComputeKPIs(filtered, nil, model.DefaultTargets())
	if k := kpiByName(kpis, "Avg Production"); k.Value != 5000 {
		t.Errorf("Avg Production = %v, want 5000", k.Value)
	}
}
