package core

import "time"

// InterventionKind classifies how the reporting unit became involved.
type InterventionKind string

const (
	InterventionPatrol    InterventionKind = "recorrido"
	InterventionReport    InterventionKind = "reporte"
	InterventionOperative InterventionKind = "operativo"
)

// Valid reports whether k is a known intervention kind.
func (k InterventionKind) Valid() bool {
	switch k {
	case InterventionPatrol, InterventionReport, InterventionOperative:
		return true
	}
	return false
}

// Shift identifies the duty shift an event was recorded under.
type Shift string

const (
	ShiftA     Shift = "A"
	ShiftB     Shift = "B"
	ShiftC     Shift = "C"
	ShiftMixed Shift = "Mixto"
	ShiftDaily Shift = "Diario"
)

// Valid reports whether s is a known shift.
func (s Shift) Valid() bool {
	switch s {
	case ShiftA, ShiftB, ShiftC, ShiftMixed, ShiftDaily:
		return true
	}
	return false
}

// Event is an IPH incident report. The ID is assigned by storage on the
// first successful commit and never reused. Link slices hold the officers,
// detainees and motives persisted atomically with the event row.
type Event struct {
	ID            int64            `json:"id"`
	EventTypeID   int64            `json:"event_type_id"`
	Intervention  InterventionKind `json:"intervention,omitempty"`
	RegionID      int64            `json:"region_id"`
	Shift         Shift            `json:"shift,omitempty"`
	VehicleUnitID int64            `json:"vehicle_unit_id"`
	DispatchFolio int64            `json:"dispatch_folio,omitempty"`
	Neighborhood  string           `json:"neighborhood,omitempty"`
	Street        string           `json:"street,omitempty"`
	Quadrant      string           `json:"quadrant,omitempty"`
	GeoZone       string           `json:"geo_zone,omitempty"`
	Delegation    string           `json:"delegation,omitempty"`
	Coordinates   string           `json:"coordinates,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
	Narrative     string           `json:"narrative,omitempty"`

	Officers  []EventOfficer  `json:"officers,omitempty"`
	Detainees []EventDetainee `json:"detainees,omitempty"`
	Motives   []EventMotive   `json:"motives,omitempty"`
}

// EventOfficer links an event to a participating officer. The pair
// (event_id, officer_id) is the composite identity.
type EventOfficer struct {
	EventID   int64 `json:"event_id,omitempty"`
	OfficerID int64 `json:"officer_id"`
}

// EventDetainee links an event to a detained person. The link carries its
// own surrogate id so the same detainee can appear on distinct link rows,
// and seizure records attach to the link rather than the detainee.
type EventDetainee struct {
	ID              int64  `json:"id,omitempty"`
	EventID         int64  `json:"event_id,omitempty"`
	DetaineeID      int64  `json:"detainee_id"`
	DetentionRecord string `json:"detention_record,omitempty"`
}

// EventMotive links an event to a legal motive. The pair
// (event_id, motive_id) is the composite identity.
type EventMotive struct {
	EventID  int64 `json:"event_id,omitempty"`
	MotiveID int64 `json:"motive_id"`
}

// DrugSeizure records a drug seized from a detainee on a given event.
type DrugSeizure struct {
	DrugID          int64   `json:"drug_id"`
	EventDetaineeID int64   `json:"event_detainee_id"`
	Quantity        float64 `json:"quantity,omitempty"`
	Unit            string  `json:"unit,omitempty"`
}

// WeaponSeizure records a weapon seized from a detainee on a given event.
type WeaponSeizure struct {
	WeaponID        int64 `json:"weapon_id"`
	EventDetaineeID int64 `json:"event_detainee_id"`
	Quantity        int   `json:"quantity,omitempty"`
}
