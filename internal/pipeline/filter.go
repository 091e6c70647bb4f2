// Package pipeline holds the pure derivation functions of the reporting
// core: filtering, daily aggregation, KPI computation, top-shift selection,
// and consumption totals. Every function takes an immutable snapshot and
// returns freshly allocated values; none holds state between calls, so the
// derivations may run in any order over the same filtered set.
package pipeline

import (
	"sort"
	"time"

	"github.com/AI-MHT/dash/internal/model"
)

// Filter returns the shifts satisfying f: date within the inclusive range,
// and matching the slot and responsible restrictions when set. Input order
// is preserved. An empty result is a valid outcome, not an error.
func Filter(shifts []model.Shift, f model.Filter) []model.Shift {
	result := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		day, err := s.Day()
		if err != nil {
			continue
		}
		if day.Before(f.From) || day.After(f.To) {
			continue
		}
		if f.Slot != model.SlotAny && s.Slot != f.Slot {
			continue
		}
		if f.Responsible != "" && s.Responsible != f.Responsible {
			continue
		}
		result = append(result, s)
	}
	return result
}

// PreviousPeriod returns the filter for the period of equal length
// immediately preceding f's date range, keeping the slot and responsible
// restrictions. It is the deterministic trend baseline for ComputeKPIs.
func PreviousPeriod(f model.Filter) model.Filter {
	days := int(f.To.Sub(f.From).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	prev := f
	prev.To = f.From.AddDate(0, 0, -1)
	prev.From = prev.To.AddDate(0, 0, -(days - 1))
	return prev
}

// DefaultRange returns the trailing window of n days ending today, the
// dashboard's default reporting view. Bounds are UTC midnights so they
// compare cleanly against record dates, which parse as UTC.
func DefaultRange(n int, now time.Time) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return to.AddDate(0, 0, -(n - 1)), to
}

// UniqueResponsibles lists the distinct responsible parties present in the
// dataset, sorted, for filter pickers and flag completion.
func UniqueResponsibles(shifts []model.Shift) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, s := range shifts {
		if s.Responsible == "" {
			continue
		}
		if _, ok := seen[s.Responsible]; ok {
			continue
		}
		seen[s.Responsible] = struct{}{}
		names = append(names, s.Responsible)
	}
	sort.Strings(names)
	return names
}
