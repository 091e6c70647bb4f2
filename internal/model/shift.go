// Package model defines domain types for shift records and derived metrics.
package model

import "time"

// DateLayout is the canonical calendar-date format used throughout.
const DateLayout = "2006-01-02"

// ShiftSlot identifies the operating window of a calendar day.
type ShiftSlot int

const (
	// SlotAny matches either slot in a filter.
	SlotAny ShiftSlot = 0
	// SlotDay is the 07:00–19:00 window.
	SlotDay ShiftSlot = 1
	// SlotNight is the 19:00–07:00 window.
	SlotNight ShiftSlot = 2
)

func (s ShiftSlot) String() string {
	switch s {
	case SlotDay:
		return "Day"
	case SlotNight:
		return "Night"
	default:
		return "Any"
	}
}

// StartTime returns the conventional wall-clock start of the slot.
func (s ShiftSlot) StartTime() string {
	if s == SlotNight {
		return "19:00"
	}
	return "07:00"
}

// EndTime returns the conventional wall-clock end of the slot.
func (s ShiftSlot) EndTime() string {
	if s == SlotNight {
		return "07:00"
	}
	return "19:00"
}

// Shift is the canonical per-shift performance record. All pipeline
// computation operates on this shape; the source package translates both raw
// dataset formats into it.
//
// Optional metrics are pointers so that a true zero and an absent value stay
// distinguishable. Val reads them with the zero-default policy.
type Shift struct {
	ID        string
	Date      string // DateLayout
	Slot      ShiftSlot
	StartTime string
	EndTime   string

	FinalProductTonnes float64
	OperatingHours     float64
	MaxFlowRate        float64
	StopsFrequency     int
	Efficiency         float64 // percent, may exceed 100
	Downtime           float64 // minutes
	QualityRate        float64 // percent

	OreFlowrate          *float64
	StartupTime          *float64
	EsterConsumption     *float64
	AminConsumption      *float64
	AcidConsumption      *float64
	FloculantConsumption *float64
	ReceivedPhosphate    *float64
	WasteTonnes          *float64

	Responsible string
	Notes       string
}

// Day parses the record's calendar date.
func (s Shift) Day() (time.Time, error) {
	return time.Parse(DateLayout, s.Date)
}

// Val dereferences an optional metric, treating absent as 0.
func Val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to v, for building optional fields.
func Ptr(v float64) *float64 { return &v }
