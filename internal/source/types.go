package source

import "github.com/AI-MHT/dash/internal/model"

// RawDailyRecord is one entry of the nested dataset format: a calendar day
// holding up to two shift sub-records keyed by slot name.
type RawDailyRecord struct {
	Day   *RawShift `json:"Day,omitempty"`
	Night *RawShift `json:"Night,omitempty"`
}

// RawShift groups the performance indicators and the stoppage summary
// reported for one shift.
type RawShift struct {
	Indicators RawIndicators      `json:"Indicateurs Performance"`
	Stoppages  RawStoppageSummary `json:"Synthese Globale"`
}

// RawIndicators mirrors the "Indicateurs Performance" block of the plant's
// daily report. Field keys are the exact French column labels from the
// source workbook; values are pointers so absent indicators stay
// distinguishable from true zeros.
type RawIndicators struct {
	Responsible string `json:"Responsable"`

	FeedPlanned  *float64 `json:"Alimentation (tsm) - Prévu"`
	FeedRealized *float64 `json:"Alimentation (tsm) - Réalisé"`

	RecoveryPlanned  *float64 `json:"Reprise (tsm) - Prévu"`
	RecoveryRealized *float64 `json:"Reprise (tsm) - Réalisé"`

	WashedPlanned  *float64 `json:"Lavé Flotté (tsm) - Prévu"`
	WashedRealized *float64 `json:"Lavé Flotté (tsm) - Réalisé"`

	WastePlanned  *float64 `json:"Stérile (t) - Prévu"`
	WasteRealized *float64 `json:"Stérile (t) - Réalisé"`

	HoursPlanned  *float64 `json:"HM(h) - Prévu"`
	HoursRealized *float64 `json:"HM(h) - Réalisé"`

	FlowPlanned  *float64 `json:"Débit (tsm/h) - Prévu"`
	FlowRealized *float64 `json:"Débit (tsm/h) - Réalisé"`

	AminePlanned  *float64 `json:"CS Amine (g/t) - Prévu"`
	AmineRealized *float64 `json:"CS Amine (g/t) - Réalisé"`

	AcidPlanned  *float64 `json:"CS Acide (g/t) - Prévu"`
	AcidRealized *float64 `json:"CS Acide (g/t) - Réalisé"`

	EsterPlanned  *float64 `json:"CS Ester (g/t) - Prévu"`
	EsterRealized *float64 `json:"CS Ester (g/t) - Réalisé"`

	FloculantPlanned  *float64 `json:"CS Floculant (g/t) - Prévu"`
	FloculantRealized *float64 `json:"CS Floculant (g/t) - Réalisé"`
}

// RawStoppageSummary mirrors the "Synthese Globale" block: stoppage durations
// in hours, broken down by cause, plus the reported total.
type RawStoppageSummary struct {
	External           *float64 `json:"Arrêts Externes (h) - Durée (h)"`
	PlannedMaintenance *float64 `json:"Maintenance et travaux planifiés (h) - Durée (h)"`
	Decided            *float64 `json:"Arrêt décidé (h) - Durée (h)"`
	MaintenanceFaults  *float64 `json:"Pannes Maintenance (h) - Durée (h)"`
	InstallationFaults *float64 `json:"Pannes Installations (h) - Durée (h)"`
	Utilization        *float64 `json:"Arrêts Utilisation (h) - Durée (h)"`
	Process            *float64 `json:"Arrêts Process (h) - Durée (h)"`
	Total              *float64 `json:"Total des arrêts (h) - Durée (h)"`
}

// FileKind distinguishes the two dataset formats a data directory may hold.
type FileKind int

const (
	// KindJSON is a nested daily-record file (object keyed by date).
	KindJSON FileKind = iota
	// KindXLSX is a flat BWP-style workbook (one row per shift).
	KindXLSX
)

func (k FileKind) String() string {
	if k == KindXLSX {
		return "xlsx"
	}
	return "json"
}

// DiscoveredFile is a dataset file found during directory scanning.
type DiscoveredFile struct {
	Path string
	Kind FileKind
}

// ParseResult holds the output of parsing a single dataset file.
type ParseResult struct {
	Shifts      []model.Shift
	ParseErrors int
	Err         error
}
