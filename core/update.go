package core

import "time"

// EventUpdate is a partial update to an event's own columns. Nil fields are
// left untouched. Link sets (officers, detainees, motives) are fixed at
// creation and not updatable here.
type EventUpdate struct {
	EventTypeID   *int64            `json:"event_type_id,omitempty"`
	Intervention  *InterventionKind `json:"intervention,omitempty"`
	RegionID      *int64            `json:"region_id,omitempty"`
	Shift         *Shift            `json:"shift,omitempty"`
	VehicleUnitID *int64            `json:"vehicle_unit_id,omitempty"`
	DispatchFolio *int64            `json:"dispatch_folio,omitempty"`
	Neighborhood  *string           `json:"neighborhood,omitempty"`
	Street        *string           `json:"street,omitempty"`
	Quadrant      *string           `json:"quadrant,omitempty"`
	GeoZone       *string           `json:"geo_zone,omitempty"`
	Delegation    *string           `json:"delegation,omitempty"`
	Coordinates   *string           `json:"coordinates,omitempty"`
	OccurredAt    *time.Time        `json:"occurred_at,omitempty"`
	Narrative     *string           `json:"narrative,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u *EventUpdate) Empty() bool {
	return u.EventTypeID == nil &&
		u.Intervention == nil &&
		u.RegionID == nil &&
		u.Shift == nil &&
		u.VehicleUnitID == nil &&
		u.DispatchFolio == nil &&
		u.Neighborhood == nil &&
		u.Street == nil &&
		u.Quadrant == nil &&
		u.GeoZone == nil &&
		u.Delegation == nil &&
		u.Coordinates == nil &&
		u.OccurredAt == nil &&
		u.Narrative == nil
}
