package source

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
)

// ParseJSONFile reads a nested dataset file: a single JSON object keyed by
// date ("2006-01-02"), each value a RawDailyRecord. Days that fail to
// normalize are counted and skipped so one bad record does not sink the
// whole file.
func ParseJSONFile(path string) ParseResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{Err: err}
	}

	var days map[string]RawDailyRecord
	if err := json.Unmarshal(data, &days); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding %s: %w", path, err)}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var result ParseResult
	for _, date := range dates {
		shifts, err := Normalize(date, days[date])
		if err != nil {
			result.ParseErrors++
			log.Warn().Err(err).Str("file", path).Str("date", date).Msg("skipping malformed daily record")
			continue
		}
		result.Shifts = append(result.Shifts, shifts...)
	}

	return result
}
