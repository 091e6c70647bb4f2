package model

import "time"

// DailyAggregate holds the per-day roll-up of a date's shift records.
type DailyAggregate struct {
	Date            string
	Shifts          []Shift
	TotalProduction float64
	AvgEfficiency   float64
	TotalDowntime   float64
}

// Trend classifies a KPI's movement against the previous period.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Word returns the report wording for a trend.
func (t Trend) Word() string {
	switch t {
	case TrendUp:
		return "Good"
	case TrendDown:
		return "Needs Attention"
	default:
		return "Stable"
	}
}

// KPI is one named, targeted, trend-classified metric computed over a
// filtered shift set. Recomputed in full on every filter change.
type KPI struct {
	Name     string
	Value    float64
	Target   float64
	Unit     string
	Category string
	Trend    Trend
}

// ConsumptionTotals holds summed reagent usage over a filtered shift set.
type ConsumptionTotals struct {
	Ester     float64
	Amin      float64
	Acid      float64
	Floculant float64
}

// Filter restricts a shift collection to a date range plus optional slot and
// responsible-party predicates. Passed by value; never mutated by the
// pipeline.
type Filter struct {
	From        time.Time // inclusive
	To          time.Time // inclusive
	Slot        ShiftSlot // SlotAny for no restriction
	Responsible string    // "" for no restriction, exact case-sensitive match
}

// HasRestrictions reports whether any optional predicate is active.
func (f Filter) HasRestrictions() bool {
	return f.Slot != SlotAny || f.Responsible != ""
}

// Targets holds the per-KPI target values. Defaults reflect the plant's
// nominal figures; the config file can override any of them.
type Targets struct {
	AvgProduction     float64
	Efficiency        float64
	Downtime          float64
	QualityRate       float64
	StopFrequency     float64
	OperatingHours    float64
	OreFlowrate       float64
	MaxFlowRate       float64
	WasteRate         float64
	EsterTotal        float64
	AminTotal         float64
	AcidTotal         float64
	FloculantTotal    float64
	ReceivedPhosphate float64
	DailyTonnes       float64 // per-day production target for the summary table
}

// DefaultTargets returns the nominal plant targets.
func DefaultTargets() Targets {
	return Targets{
		AvgProduction:     5000,
		Efficiency:        95,
		Downtime:          60,
		QualityRate:       95,
		StopFrequency:     5,
		OperatingHours:    11,
		OreFlowrate:       5200,
		MaxFlowRate:       650,
		WasteRate:         900,
		EsterTotal:        5600,
		AminTotal:         5600,
		AcidTotal:         5600,
		FloculantTotal:    420,
		ReceivedPhosphate: 30000,
		DailyTonnes:       10000,
	}
}
