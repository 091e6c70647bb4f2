// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AI-MHT/dash/internal/model"
)

// FormatTonnes formats a tonnage with one decimal and unit.
// e.g., 5216.4 -> "5,216.4 T"
func FormatTonnes(v float64) string {
	return FormatValue(v, "T")
}

// FormatValue formats a metric value with one decimal and an optional unit.
func FormatValue(v float64, unit string) string {
	s := groupThousands(v)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMinutes formats a downtime figure in minutes.
func FormatMinutes(v float64) string {
	return fmt.Sprintf("%.0f min", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a canonical date for display, e.g. "May 12, 2025".
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatShiftIdentifier renders the shift's display identity,
// e.g. "May 12, 2025 - Shift 1 (Day)".
func FormatShiftIdentifier(s model.Shift) string {
	return fmt.Sprintf("%s - Shift %d (%s)", FormatDate(s.Date), int(s.Slot), s.Slot)
}

// FormatShiftTime renders the shift's wall-clock window.
func FormatShiftTime(s model.Shift) string {
	return s.StartTime + " - " + s.EndTime
}

// FormatVariance renders a signed production variance.
func FormatVariance(v float64) string {
	if v > 0 {
		return "+" + groupThousands(v)
	}
	return groupThousands(v)
}

// TrendArrow returns the glyph for a trend direction.
func TrendArrow(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return "↑"
	case model.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

// groupThousands formats v with one decimal and comma-grouped integer part.
func groupThousands(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.1f", v)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	n, _ := strconv.ParseInt(intPart, 10, 64)
	out := FormatNumber(n) + frac
	if neg {
		return "-" + out
	}
	return out
}
