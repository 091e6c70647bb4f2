package store

import (
	"path/filepath"
	"testing"

	"github.com/AI-MHT/dash/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func cachedShift(id, date string, slot model.ShiftSlot) model.Shift {
	return model.Shift{
		ID:                 id,
		Date:               date,
		Slot:               slot,
		StartTime:          "07:00",
		EndTime:            "19:00",
		FinalProductTonnes: 5200,
		OperatingHours:     11.5,
		MaxFlowRate:        620,
		StopsFrequency:     2,
		Efficiency:         92.5,
		Downtime:           150,
		QualityRate:        100,
		EsterConsumption:   model.Ptr(450.0),
		Responsible:        "A. Benali",
		Notes:              "Feed: 6100.0 T (Target: 6500.0 T)",
	}
}

func TestSaveFileAndLoadAllShifts(t *testing.T) {
	c := openTestCache(t)

	shifts := []model.Shift{
		cachedShift("2025-05-12-Day", "2025-05-12", model.SlotDay),
		cachedShift("2025-05-12-Night", "2025-05-12", model.SlotNight),
	}
	if err := c.SaveFile("data/may.xlsx", 1000, 4096, 1, shifts); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	got, err := c.LoadAllShifts()
	if err != nil {
		t.Fatalf("LoadAllShifts() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cached shifts, want 2", len(got))
	}

	first := got[0]
	if first.SourceFile != "data/may.xlsx" {
		t.Errorf("SourceFile = %q", first.SourceFile)
	}
	s := first.Shift
	if s.ID != "2025-05-12-Day" || s.Slot != model.SlotDay {
		t.Errorf("shift identity = %q slot %d", s.ID, s.Slot)
	}
	if s.FinalProductTonnes != 5200 || s.OperatingHours != 11.5 {
		t.Errorf("numeric fields lost: %v / %v", s.FinalProductTonnes, s.OperatingHours)
	}
	if s.EsterConsumption == nil || *s.EsterConsumption != 450 {
		t.Errorf("EsterConsumption = %v, want 450", s.EsterConsumption)
	}
	if s.OreFlowrate != nil {
		t.Errorf("OreFlowrate = %v, want nil for absent value", *s.OreFlowrate)
	}
	if s.Notes != "Feed: 6100.0 T (Target: 6500.0 T)" {
		t.Errorf("Notes = %q", s.Notes)
	}
}

func TestSaveFileReplacesPreviousRows(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveFile("data/may.xlsx", 1000, 4096, 0, []model.Shift{
		cachedShift("2025-05-12-Day", "2025-05-12", model.SlotDay),
		cachedShift("2025-05-12-Night", "2025-05-12", model.SlotNight),
	}); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	// Reparse with fewer rows; stale rows for the same file must go away.
	if err := c.SaveFile("data/may.xlsx", 2000, 2048, 0, []model.Shift{
		cachedShift("2025-05-13-Day", "2025-05-13", model.SlotDay),
	}); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	got, err := c.LoadAllShifts()
	if err != nil {
		t.Fatalf("LoadAllShifts() error: %v", err)
	}
	if len(got) != 1 || got[0].Shift.ID != "2025-05-13-Day" {
		t.Fatalf("got %d shifts after resave, want only the reparsed row", len(got))
	}
}

func TestGetTrackedFiles(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveFile("data/may.xlsx", 1234, 4096, 3, nil); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles() error: %v", err)
	}
	fi, ok := tracked["data/may.xlsx"]
	if !ok {
		t.Fatal("file not tracked after SaveFile")
	}
	if fi.MtimeNs != 1234 || fi.SizeBytes != 4096 || fi.ParseErrors != 3 {
		t.Errorf("tracked info = %+v", fi)
	}
}

func TestPruneMissing(t *testing.T) {
	c := openTestCache(t)

	files := []string{"data/may.xlsx", "data/june.xlsx"}
	for i, path := range files {
		err := c.SaveFile(path, int64(i), 100, 0, []model.Shift{
			cachedShift("s", "2025-05-12", model.SlotDay),
		})
		if err != nil {
			t.Fatalf("SaveFile(%q) error: %v", path, err)
		}
	}

	present := map[string]struct{}{"data/june.xlsx": {}}
	if err := c.PruneMissing(present); err != nil {
		t.Fatalf("PruneMissing() error: %v", err)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles() error: %v", err)
	}
	if len(tracked) != 1 {
		t.Fatalf("tracked %d files after prune, want 1", len(tracked))
	}
	if _, ok := tracked["data/june.xlsx"]; !ok {
		t.Error("surviving file was pruned")
	}

	shifts, err := c.LoadAllShifts()
	if err != nil {
		t.Fatalf("LoadAllShifts() error: %v", err)
	}
	for _, cs := range shifts {
		if cs.SourceFile == "data/may.xlsx" {
			t.Error("shifts from pruned file still cached")
		}
	}
}
