// Package store provides a SQLite-backed cache of normalized shift records,
// keyed by source file, so unchanged dataset files are not reparsed on every
// invocation.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/AI-MHT/dash/internal/model"
)

// Cache wraps the cache database.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a source file.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
}

// GetTrackedFiles returns file_path -> FileInfo for every tracked file.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, parse_errors FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces the cached shifts for one source file and updates its
// tracking row, in a single transaction.
func (c *Cache) SaveFile(path string, mtimeNs, sizeBytes int64, parseErrors int, shifts []model.Shift) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM shifts WHERE source_file = ?", path); err != nil {
		return err
	}

	for _, s := range shifts {
		_, err := tx.Exec(`INSERT OR REPLACE INTO shifts
			(source_file, shift_id, date, slot, start_time, end_time,
			 final_product, operating_hours, max_flow_rate, stops_frequency,
			 efficiency, downtime, quality_rate,
			 ore_flowrate, startup_time,
			 ester_consumption, amin_consumption, acid_consumption, floculant_consumption,
			 received_phosphate, waste_tonnes, responsible, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			path, s.ID, s.Date, int(s.Slot), s.StartTime, s.EndTime,
			s.FinalProductTonnes, s.OperatingHours, s.MaxFlowRate, s.StopsFrequency,
			s.Efficiency, s.Downtime, s.QualityRate,
			nullable(s.OreFlowrate), nullable(s.StartupTime),
			nullable(s.EsterConsumption), nullable(s.AminConsumption),
			nullable(s.AcidConsumption), nullable(s.FloculantConsumption),
			nullable(s.ReceivedPhosphate), nullable(s.WasteTonnes),
			s.Responsible, s.Notes,
		)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parse_errors, parsed_at)
		VALUES (?, ?, ?, ?, ?)`, path, mtimeNs, sizeBytes, parseErrors, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// CachedShift pairs a shift with the file it was parsed from.
type CachedShift struct {
	SourceFile string
	Shift      model.Shift
}

// LoadAllShifts reads every cached shift from the database.
func (c *Cache) LoadAllShifts() ([]CachedShift, error) {
	rows, err := c.db.Query(`SELECT source_file, shift_id, date, slot, start_time, end_time,
		final_product, operating_hours, max_flow_rate, stops_frequency,
		efficiency, downtime, quality_rate,
		ore_flowrate, startup_time,
		ester_consumption, amin_consumption, acid_consumption, floculant_consumption,
		received_phosphate, waste_tonnes, responsible, notes
		FROM shifts ORDER BY date, slot`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []CachedShift
	for rows.Next() {
		var cs CachedShift
		var slot int
		var ore, startup, ester, amin, acid, floc, received, waste sql.NullFloat64
		err := rows.Scan(&cs.SourceFile, &cs.Shift.ID, &cs.Shift.Date, &slot,
			&cs.Shift.StartTime, &cs.Shift.EndTime,
			&cs.Shift.FinalProductTonnes, &cs.Shift.OperatingHours,
			&cs.Shift.MaxFlowRate, &cs.Shift.StopsFrequency,
			&cs.Shift.Efficiency, &cs.Shift.Downtime, &cs.Shift.QualityRate,
			&ore, &startup, &ester, &amin, &acid, &floc, &received, &waste,
			&cs.Shift.Responsible, &cs.Shift.Notes,
		)
		if err != nil {
			return nil, err
		}
		cs.Shift.Slot = model.ShiftSlot(slot)
		cs.Shift.OreFlowrate = fromNull(ore)
		cs.Shift.StartupTime = fromNull(startup)
		cs.Shift.EsterConsumption = fromNull(ester)
		cs.Shift.AminConsumption = fromNull(amin)
		cs.Shift.AcidConsumption = fromNull(acid)
		cs.Shift.FloculantConsumption = fromNull(floc)
		cs.Shift.ReceivedPhosphate = fromNull(received)
		cs.Shift.WasteTonnes = fromNull(waste)
		result = append(result, cs)
	}
	return result, rows.Err()
}

// PruneMissing removes cache entries for files no longer present on disk.
func (c *Cache) PruneMissing(present map[string]struct{}) error {
	tracked, err := c.GetTrackedFiles()
	if err != nil {
		return err
	}
	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if _, err := c.db.Exec("DELETE FROM shifts WHERE source_file = ?", path); err != nil {
			return err
		}
		if _, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
			return err
		}
	}
	return nil
}

func nullable(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
