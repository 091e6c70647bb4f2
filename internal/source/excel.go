package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/AI-MHT/dash/internal/model"
)

// Flat-format derivation constants, kept from the historical BWP importer so
// regenerated reports match the archived ones.
const (
	flatMaxShiftHours = 12
	flatMaxStops      = 20
)

// ParseXLSXFile reads a flat BWP-style workbook: a header row followed by one
// row per shift. Header lookup is case-insensitive and tolerant of column
// order; "_" cells mark absent values. Rows missing a date or the final
// product figure are counted and skipped.
func ParseXLSXFile(path string) ParseResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("opening %s: %w", path, err)}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ParseResult{Err: fmt.Errorf("%s: workbook has no sheets", path)}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	if len(rows) < 2 {
		return ParseResult{}
	}

	headers := make(map[string]int)
	for i, h := range rows[0] {
		if h != "" {
			headers[strings.ToLower(strings.TrimSpace(h))] = i
		}
	}

	for _, required := range []string{"completion time", "final product (tonnes)", "shift"} {
		if _, ok := headers[required]; !ok {
			return ParseResult{Err: fmt.Errorf("%s: missing required column %q", path, required)}
		}
	}

	var result ParseResult
	for n, row := range rows[1:] {
		s, err := flatRowToShift(row, headers, n+2)
		if err != nil {
			result.ParseErrors++
			log.Warn().Err(err).Str("file", path).Msg("skipping shift row")
			continue
		}
		if s == nil {
			continue // blank row
		}
		result.Shifts = append(result.Shifts, *s)
	}

	return result
}

func flatRowToShift(row []string, headers map[string]int, rowNum int) (*model.Shift, error) {
	cell := func(name string) string {
		idx, ok := headers[name]
		if !ok || idx >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[idx])
		if v == "_" {
			return ""
		}
		return v
	}
	num := func(name string) float64 {
		v, _ := strconv.ParseFloat(cell(name), 64)
		return v
	}
	opt := func(name string) *float64 {
		raw := cell(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		return &v
	}

	rawDate := cell("completion time")
	if rawDate == "" {
		return nil, nil
	}
	date, err := parseFlatDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", rowNum, err)
	}

	if cell("final product (tonnes)") == "" {
		return nil, fmt.Errorf("row %d (%s): missing final product tonnage", rowNum, date)
	}

	slot := model.SlotDay
	if v, _ := strconv.Atoi(cell("shift")); v == 2 {
		slot = model.SlotNight
	}

	hours := num("operating hours (hr)")
	stops := int(num("frequency of stops"))
	product := num("final product (tonnes)")
	maxFlow := num("maximum flow reached (t/hr)")

	id := cell("id")
	if id == "" {
		id = fmt.Sprintf("%s-%s", date, slot)
	}

	s := &model.Shift{
		ID:        id,
		Date:      date,
		Slot:      slot,
		StartTime: slot.StartTime(),
		EndTime:   slot.EndTime(),

		FinalProductTonnes: product,
		OperatingHours:     hours,
		MaxFlowRate:        maxFlow,
		StopsFrequency:     stops,
		Efficiency:         flatEfficiency(hours, stops),
		Downtime:           flatDowntime(hours),
		QualityRate:        flatQualityRate(product, maxFlow),

		OreFlowrate:          opt("ore phosphate solids flowrate (t)"),
		StartupTime:          opt("start-up preparation time (hr)"),
		EsterConsumption:     opt("total ester consumption(l)"),
		AminConsumption:      opt("total amin consumption(l)"),
		AcidConsumption:      opt("total acid consumption(l)"),
		FloculantConsumption: opt("total floculant consumption(m3)"),
		ReceivedPhosphate:    opt("received phosphate (t)"),

		Responsible: cell("responsible"),
		Notes:       cell("comment"),
	}

	return s, nil
}

// parseFlatDate accepts the workbook's DD/MM/YYYY convention as well as
// already-canonical dates.
func parseFlatDate(raw string) (string, error) {
	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		return fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0]), nil
	}
	if len(raw) == 10 && raw[4] == '-' && raw[7] == '-' {
		return raw, nil
	}
	return "", fmt.Errorf("invalid date %q, expected DD/MM/YYYY", raw)
}

// flatEfficiency weights realized operating hours (80%) against a low-stop
// factor (20%), the derivation used by the historical importer.
func flatEfficiency(operatingHours float64, stops int) float64 {
	if operatingHours <= 0 {
		return 0
	}
	hoursFactor := math.Min(operatingHours/flatMaxShiftHours, 1) * 80
	stopsFactor := (1 - math.Min(float64(stops)/flatMaxStops, 1)) * 20
	return round1(hoursFactor + stopsFactor)
}

// flatDowntime is the shortfall against a full shift window, in minutes.
func flatDowntime(operatingHours float64) float64 {
	return math.Round(math.Max(0, flatMaxShiftHours-operatingHours) * 60)
}

// flatQualityRate scales achievement against the theoretical maximum
// throughput into an 80–100 band; 90 when no flow figure is available.
func flatQualityRate(product, maxFlow float64) float64 {
	if maxFlow <= 0 {
		return 90
	}
	theoreticalMax := maxFlow * flatMaxShiftHours
	achievement := math.Min(product/theoreticalMax, 1)
	return round1(80 + achievement*20)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
