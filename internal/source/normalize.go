// Package source discovers, parses, and normalizes raw shift datasets.
//
// Two raw formats exist in the field: nested daily JSON records (per-day
// "Indicateurs Performance" + "Synthese Globale" blocks keyed by Day/Night)
// and flat BWP-style XLSX workbooks with one row per shift. Both are
// translated here into the canonical model.Shift; everything downstream
// operates only on that shape.
package source

import (
	"fmt"

	"github.com/AI-MHT/dash/internal/model"
)

// Normalize converts one raw daily record into canonical shift records, one
// per present slot. A slot missing its realized final-product indicator is a
// construction error: production tonnage is the primary metric and silently
// substituting zero would corrupt every report built on it.
func Normalize(date string, raw RawDailyRecord) ([]model.Shift, error) {
	var shifts []model.Shift

	if raw.Day != nil {
		s, err := normalizeSlot(date, model.SlotDay, *raw.Day)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if raw.Night != nil {
		s, err := normalizeSlot(date, model.SlotNight, *raw.Night)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	return shifts, nil
}

func normalizeSlot(date string, slot model.ShiftSlot, raw RawShift) (model.Shift, error) {
	ind := raw.Indicators

	if ind.WashedRealized == nil {
		return model.Shift{}, fmt.Errorf("shift %s %s: missing realized final product (Lavé Flotté)", date, slot)
	}

	s := model.Shift{
		ID:        fmt.Sprintf("%s-%s", date, slot),
		Date:      date,
		Slot:      slot,
		StartTime: slot.StartTime(),
		EndTime:   slot.EndTime(),

		FinalProductTonnes: *ind.WashedRealized,
		OperatingHours:     model.Val(ind.HoursRealized),
		MaxFlowRate:        model.Val(ind.FlowRealized),
		Efficiency:         efficiency(ind.HoursRealized, ind.HoursPlanned),
		Downtime:           totalStoppageHours(raw.Stoppages) * 60,
		QualityRate:        100, // no quality indicator in this format

		OreFlowrate:          ind.FeedRealized,
		EsterConsumption:     ind.EsterRealized,
		AminConsumption:      ind.AmineRealized,
		AcidConsumption:      ind.AcidRealized,
		FloculantConsumption: ind.FloculantRealized,
		ReceivedPhosphate:    ind.RecoveryRealized,
		WasteTonnes:          ind.WasteRealized,

		Responsible: ind.Responsible,
		Notes:       realizedVsPlannedNotes(ind),
	}

	return s, nil
}

// efficiency is realized over planned operating hours as a percentage.
// Planned hours of 0 resolve to 0 rather than a non-finite value that would
// corrupt every downstream mean.
func efficiency(realized, planned *float64) float64 {
	p := model.Val(planned)
	if p == 0 {
		return 0
	}
	return model.Val(realized) / p * 100
}

// totalStoppageHours prefers the reported total and falls back to summing
// the per-cause durations when the total line is absent.
func totalStoppageHours(st RawStoppageSummary) float64 {
	if st.Total != nil {
		return *st.Total
	}
	return model.Val(st.External) +
		model.Val(st.PlannedMaintenance) +
		model.Val(st.Decided) +
		model.Val(st.MaintenanceFaults) +
		model.Val(st.InstallationFaults) +
		model.Val(st.Utilization) +
		model.Val(st.Process)
}

// realizedVsPlannedNotes synthesizes the three-line feed/recovery/waste
// summary carried on each record for display and report export.
func realizedVsPlannedNotes(ind RawIndicators) string {
	return fmt.Sprintf(
		"Feed: %.1f T (Target: %.1f T)\nRecovery: %.1f T (Target: %.1f T)\nWaste: %.1f T (Target: %.1f T)",
		model.Val(ind.FeedRealized), model.Val(ind.FeedPlanned),
		model.Val(ind.RecoveryRealized), model.Val(ind.RecoveryPlanned),
		model.Val(ind.WasteRealized), model.Val(ind.WastePlanned),
	)
}
