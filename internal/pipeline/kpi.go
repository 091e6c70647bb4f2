package pipeline

import (
	"math"

	"github.com/AI-MHT/dash/internal/model"
)

// trendThreshold is the relative change below which a KPI reads as stable.
// The boundary is exclusive: a change of exactly 5% is still stable.
const trendThreshold = 0.05

type aggregation int

const (
	aggMean aggregation = iota
	aggSum
)

// kpiDef describes one entry of the fixed KPI catalog: how to extract the
// metric from a shift, how to aggregate it, its target, and whether lower
// values are operationally better.
type kpiDef struct {
	name     string
	unit     string
	category string
	agg      aggregation
	inverse  bool
	value    func(model.Shift) float64
	target   func(model.Targets) float64
}

var kpiCatalog = []kpiDef{
	{
		name: "Avg Production", unit: "T", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return s.FinalProductTonnes },
		target: func(t model.Targets) float64 { return t.AvgProduction },
	},
	{
		name: "Efficiency", unit: "%", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return s.Efficiency },
		target: func(t model.Targets) float64 { return t.Efficiency },
	},
	{
		name: "Downtime", unit: "min", category: "reliability", agg: aggMean, inverse: true,
		value:  func(s model.Shift) float64 { return s.Downtime },
		target: func(t model.Targets) float64 { return t.Downtime },
	},
	{
		name: "Quality Rate", unit: "%", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return s.QualityRate },
		target: func(t model.Targets) float64 { return t.QualityRate },
	},
	{
		name: "Stop Frequency", unit: "", category: "reliability", agg: aggMean, inverse: true,
		value:  func(s model.Shift) float64 { return float64(s.StopsFrequency) },
		target: func(t model.Targets) float64 { return t.StopFrequency },
	},
	{
		name: "Operating Hours", unit: "h", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return s.OperatingHours },
		target: func(t model.Targets) float64 { return t.OperatingHours },
	},
	{
		name: "Ore Flowrate", unit: "T", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return model.Val(s.OreFlowrate) },
		target: func(t model.Targets) float64 { return t.OreFlowrate },
	},
	{
		name: "Max Flow Rate", unit: "T/h", category: "production", agg: aggMean,
		value:  func(s model.Shift) float64 { return s.MaxFlowRate },
		target: func(t model.Targets) float64 { return t.MaxFlowRate },
	},
	{
		name: "Waste Rate", unit: "T", category: "production", agg: aggMean, inverse: true,
		value:  func(s model.Shift) float64 { return model.Val(s.WasteTonnes) },
		target: func(t model.Targets) float64 { return t.WasteRate },
	},
	{
		name: "Ester Consumption", unit: "L", category: "consumption", agg: aggSum,
		value:  func(s model.Shift) float64 { return model.Val(s.EsterConsumption) },
		target: func(t model.Targets) float64 { return t.EsterTotal },
	},
	{
		name: "Amin Consumption", unit: "L", category: "consumption", agg: aggSum,
		value:  func(s model.Shift) float64 { return model.Val(s.AminConsumption) },
		target: func(t model.Targets) float64 { return t.AminTotal },
	},
	{
		name: "Acid Consumption", unit: "L", category: "consumption", agg: aggSum,
		value:  func(s model.Shift) float64 { return model.Val(s.AcidConsumption) },
		target: func(t model.Targets) float64 { return t.AcidTotal },
	},
	{
		name: "Floculant Consumption", unit: "m³", category: "consumption", agg: aggSum,
		value:  func(s model.Shift) float64 { return model.Val(s.FloculantConsumption) },
		target: func(t model.Targets) float64 { return t.FloculantTotal },
	},
	{
		name: "Received Phosphate", unit: "T", category: "production", agg: aggSum,
		value:  func(s model.Shift) float64 { return model.Val(s.ReceivedPhosphate) },
		target: func(t model.Targets) float64 { return t.ReceivedPhosphate },
	},
}

// ComputeKPIs computes the fixed metric catalog over the filtered set,
// classifying each trend against the same metric computed over baseline (the
// previous period's shifts). Empty input yields an empty list, not an error.
func ComputeKPIs(shifts, baseline []model.Shift, targets model.Targets) []model.KPI {
	if len(shifts) == 0 {
		return []model.KPI{}
	}

	kpis := make([]model.KPI, 0, len(kpiCatalog))
	for _, def := range kpiCatalog {
		kpis = append(kpis, model.KPI{
			Name:     def.name,
			Value:    aggregate(shifts, def),
			Target:   def.target(targets),
			Unit:     def.unit,
			Category: def.category,
			Trend:    classifyTrend(aggregate(shifts, def), aggregate(baseline, def), def.inverse),
		})
	}
	return kpis
}

func aggregate(shifts []model.Shift, def kpiDef) float64 {
	if len(shifts) == 0 {
		return 0
	}
	var sum float64
	for _, s := range shifts {
		sum += def.value(s)
	}
	if def.agg == aggMean {
		return sum / float64(len(shifts))
	}
	return sum
}

// classifyTrend compares current against baseline with the ±5% relative
// threshold. Inverse metrics (lower is better) swap the labels so an
// improving metric always reads "up". A zero baseline reads as stable,
// avoiding division by zero.
func classifyTrend(current, baseline float64, inverse bool) model.Trend {
	if baseline == 0 {
		return model.TrendStable
	}

	change := (current - baseline) / baseline
	if math.Abs(change) <= trendThreshold {
		return model.TrendStable
	}

	rising := change > 0
	if inverse {
		rising = !rising
	}
	if rising {
		return model.TrendUp
	}
	return model.TrendDown
}
