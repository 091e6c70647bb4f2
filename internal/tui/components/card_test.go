package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AI-MHT/dash/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total int
		n     int
		want  []int
	}{
		{120, 4, []int{30, 30, 30, 30}},
		{121, 4, []int{31, 30, 30, 30}},
		{123, 4, []int{31, 31, 31, 30}},
		{10, 3, []int{4, 3, 3}},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v", tt.total, tt.n, got)
		}
		sum := 0
		for i, w := range got {
			if w != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d)[%d] = %d, want %d", tt.total, tt.n, i, w, tt.want[i])
			}
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}

	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow with no columns = %v, want nil", got)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	metrics := []Metric{
		{Label: "PRODUCTION", Value: "52,164 T"},
		{Label: "EFFICIENCY", Value: "92.3%"},
		{Label: "DOWNTIME", Value: "150 min"},
		{Label: "QUALITY", Value: "100.0%"},
	}
	row := MetricCardRow(metrics, 120)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 120 {
			t.Errorf("line %d width = %d, want 120", i, w)
		}
	}
}

func TestCardRowPadsToTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "one line", 24)
	tall := ContentCard("Tall", "a\nb\nc\nd\ne", 24)

	shortLines := len(strings.Split(short, "\n"))
	tallLines := len(strings.Split(tall, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tall, short})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want tallest card height %d", got, tallLines)
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(60); got != 56 {
		t.Errorf("CardInnerWidth(60) = %d, want 56", got)
	}
	if got := CardInnerWidth(8); got != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want clamped minimum 10", got)
	}
}
