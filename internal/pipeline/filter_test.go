package pipeline

import (
	"testing"
	"time"

	"github.com/AI-MHT/dash/internal/model"
)

func mkShift(date string, slot model.ShiftSlot, responsible string, tonnes float64) model.Shift {
	return model.Shift{
		ID:                 date + "-" + slot.String(),
		Date:               date,
		Slot:               slot,
		Responsible:        responsible,
		FinalProductTonnes: tonnes,
	}
}

func day(date string) time.Time {
	d, _ := time.Parse(model.DateLayout, date)
	return d
}

func TestFilter_InclusiveBounds(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-09", model.SlotDay, "", 1),
		mkShift("2025-05-10", model.SlotDay, "", 2),
		mkShift("2025-05-11", model.SlotDay, "", 3),
		mkShift("2025-05-12", model.SlotDay, "", 4),
		mkShift("2025-05-13", model.SlotDay, "", 5),
	}

	f := model.Filter{From: day("2025-05-10"), To: day("2025-05-12")}
	got := Filter(shifts, f)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Date != "2025-05-10" || got[2].Date != "2025-05-12" {
		t.Errorf("both boundary dates must be included, got %s..%s", got[0].Date, got[2].Date)
	}
}

func TestFilter_SlotAndResponsible(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "A. Benali", 1),
		mkShift("2025-05-10", model.SlotNight, "A. Benali", 2),
		mkShift("2025-05-11", model.SlotDay, "K. Older", 3),
	}
	f := model.Filter{From: day("2025-05-01"), To: day("2025-05-31")}

	f.Slot = model.SlotNight
	if got := Filter(shifts, f); len(got) != 1 || got[0].Slot != model.SlotNight {
		t.Errorf("slot filter: got %d shifts", len(got))
	}

	f.Slot = model.SlotAny
	f.Responsible = "A. Benali"
	if got := Filter(shifts, f); len(got) != 2 {
		t.Errorf("responsible filter: got %d shifts, want 2", len(got))
	}

	// Exact match only, no case folding
	f.Responsible = "a. benali"
	if got := Filter(shifts, f); len(got) != 0 {
		t.Errorf("responsible match must be exact, got %d shifts", len(got))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "A. Benali", 1),
		mkShift("2025-05-11", model.SlotNight, "A. Benali", 2),
	}
	f := model.Filter{From: day("2025-05-01"), To: day("2025-05-31"), Slot: model.SlotDay}

	once := Filter(shifts, f)
	twice := Filter(once, f)

	if len(once) != len(twice) {
		t.Fatalf("filtering an already-filtered set changed it: %d -> %d", len(once), len(twice))
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-12", model.SlotDay, "", 1),
		mkShift("2025-05-10", model.SlotDay, "", 2),
		mkShift("2025-05-11", model.SlotDay, "", 3),
	}
	f := model.Filter{From: day("2025-05-01"), To: day("2025-05-31")}

	got := Filter(shifts, f)
	for i := range shifts {
		if got[i].ID != shifts[i].ID {
			t.Fatalf("input order not preserved at %d: %s", i, got[i].ID)
		}
	}
}

func TestPreviousPeriod(t *testing.T) {
	f := model.Filter{
		From:        day("2025-05-08"),
		To:          day("2025-05-14"), // 7 days
		Slot:        model.SlotDay,
		Responsible: "A. Benali",
	}

	prev := PreviousPeriod(f)

	if !prev.To.Equal(day("2025-05-07")) {
		t.Errorf("prev.To = %v, want 2025-05-07", prev.To)
	}
	if !prev.From.Equal(day("2025-05-01")) {
		t.Errorf("prev.From = %v, want 2025-05-01", prev.From)
	}
	if prev.Slot != model.SlotDay || prev.Responsible != "A. Benali" {
		t.Error("previous period must keep the slot and responsible restrictions")
	}
}

func TestPreviousPeriod_SingleDay(t *testing.T) {
	f := model.Filter{From: day("2025-05-12"), To: day("2025-05-12")}
	prev := PreviousPeriod(f)

	if !prev.From.Equal(day("2025-05-11")) || !prev.To.Equal(day("2025-05-11")) {
		t.Errorf("single-day window: prev = %v..%v, want 2025-05-11", prev.From, prev.To)
	}
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2025, 5, 14, 15, 30, 0, 0, time.UTC)
	from, to := DefaultRange(7, now)

	if !to.Equal(day("2025-05-14")) {
		t.Errorf("to = %v, want 2025-05-14", to)
	}
	if !from.Equal(day("2025-05-08")) {
		t.Errorf("from = %v, want 2025-05-08 (7-day trailing window)", from)
	}
}

func TestDefaultRange_LocalTimezone(t *testing.T) {
	// The window ends on the caller's local calendar day, but the bounds
	// must be UTC midnights so records dated today stay inside it.
	zones := []*time.Location{
		time.FixedZone("UTC+2", 2*3600),
		time.FixedZone("UTC-7", -7*3600),
	}
	for _, loc := range zones {
		now := time.Date(2025, 5, 14, 15, 30, 0, 0, loc)
		from, to := DefaultRange(7, now)

		if !to.Equal(day("2025-05-14")) {
			t.Errorf("%v: to = %v, want 2025-05-14 UTC", loc, to)
		}
		if !from.Equal(day("2025-05-08")) {
			t.Errorf("%v: from = %v, want 2025-05-08 UTC", loc, from)
		}

		got := Filter([]model.Shift{
			mkShift("2025-05-14", model.SlotDay, "A. Benali", 5200),
			mkShift("2025-05-08", model.SlotNight, "A. Benali", 4800),
		}, model.Filter{From: from, To: to})
		if len(got) != 2 {
			t.Errorf("%v: %d records inside default window, want 2", loc, len(got))
		}
	}
}

func TestUniqueResponsibles(t *testing.T) {
	shifts := []model.Shift{
		mkShift("2025-05-10", model.SlotDay, "K. Older", 1),
		mkShift("2025-05-10", model.SlotNight, "A. Benali", 2),
		mkShift("2025-05-11", model.SlotDay, "A. Benali", 3),
		mkShift("2025-05-11", model.SlotNight, "", 4),
	}

	got := UniqueResponsibles(shifts)
	want := []string{"A. Benali", "K. Older"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v (sorted, deduplicated, empty dropped)", got, want)
		}
	}
}
