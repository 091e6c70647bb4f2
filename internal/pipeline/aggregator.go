package pipeline

import (
	"sort"

	"github.com/AI-MHT/dash/internal/model"
)

// GroupByDate groups shifts by exact date-string equality and computes the
// per-day totals and averages. The result is sorted by date descending (most
// recent day first), the order the daily tables and charts rely on; records
// within a day keep their input order.
func GroupByDate(shifts []model.Shift) []model.DailyAggregate {
	byDate := make(map[string][]model.Shift)
	var order []string

	for _, s := range shifts {
		if _, ok := byDate[s.Date]; !ok {
			order = append(order, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	days := make([]model.DailyAggregate, 0, len(order))
	for _, date := range order {
		group := byDate[date]
		agg := model.DailyAggregate{Date: date, Shifts: group}
		for _, s := range group {
			agg.TotalProduction += s.FinalProductTonnes
			agg.AvgEfficiency += s.Efficiency
			agg.TotalDowntime += s.Downtime
		}
		agg.AvgEfficiency /= float64(len(group))
		days = append(days, agg)
	}

	// Canonical dates sort lexicographically; descending puts today first.
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return days
}

// FindTop returns the shift with the strictly greatest final product
// tonnage, or nil for empty input. Ties keep the first occurrence; no other
// field participates in the ranking.
func FindTop(shifts []model.Shift) *model.Shift {
	if len(shifts) == 0 {
		return nil
	}
	top := shifts[0]
	for _, s := range shifts[1:] {
		if s.FinalProductTonnes > top.FinalProductTonnes {
			top = s
		}
	}
	return &top
}

// TotalConsumption sums the reagent usage fields across the filtered set,
// treating absent values as 0. All-zero for empty input.
func TotalConsumption(shifts []model.Shift) model.ConsumptionTotals {
	var t model.ConsumptionTotals
	for _, s := range shifts {
		t.Ester += model.Val(s.EsterConsumption)
		t.Amin += model.Val(s.AminConsumption)
		t.Acid += model.Val(s.AcidConsumption)
		t.Floculant += model.Val(s.FloculantConsumption)
	}
	return t
}
