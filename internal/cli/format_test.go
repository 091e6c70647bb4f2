package cli

import (
	"testing"

	"github.com/AI-MHT/dash/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTonnes(t *testing.T) {
	if got := FormatTonnes(5216.44); got != "5,216.4 T" {
		t.Errorf("got %q, want %q", got, "5,216.4 T")
	}
	if got := FormatTonnes(0); got != "0.0 T" {
		t.Errorf("got %q, want %q", got, "0.0 T")
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(420.5, "m³"); got != "420.5 m³" {
		t.Errorf("got %q", got)
	}
	if got := FormatValue(92, ""); got != "92.0" {
		t.Errorf("unitless value = %q, want 92.0", got)
	}
}

func TestFormatPercentAndMinutes(t *testing.T) {
	if got := FormatPercent(92.35); got != "92.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatMinutes(150); got != "150 min" {
		t.Errorf("FormatMinutes = %q", got)
	}
}

func TestFormatVariance(t *testing.T) {
	if got := FormatVariance(3.2); got != "+3.2" {
		t.Errorf("positive variance = %q, want explicit sign", got)
	}
	if got := FormatVariance(-1.5); got != "-1.5" {
		t.Errorf("negative variance = %q", got)
	}
}

func TestFormatShiftIdentifier(t *testing.T) {
	s := model.Shift{Date: "2025-05-12", Slot: model.SlotDay}
	if got := FormatShiftIdentifier(s); got != "May 12, 2025 - Shift 1 (Day)" {
		t.Errorf("got %q", got)
	}

	s.Slot = model.SlotNight
	if got := FormatShiftIdentifier(s); got != "May 12, 2025 - Shift 2 (Night)" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDate_Unparseable(t *testing.T) {
	// Malformed dates pass through rather than rendering an error
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("got %q", got)
	}
}

func TestTrendArrow(t *testing.T) {
	if got := TrendArrow(model.TrendUp); got != "↑" {
		t.Errorf("up = %q", got)
	}
	if got := TrendArrow(model.TrendDown); got != "↓" {
		t.Errorf("down = %q", got)
	}
	if got := TrendArrow(model.TrendStable); got != "→" {
		t.Errorf("stable = %q", got)
	}
}
