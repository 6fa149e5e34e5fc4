package api

import (
	"time"

	"iph/core"
)

// createEventRequest is the POST /api/events payload. Link sets arrive as
// plain id lists (detainees with an optional detention record) and are
// converted to the domain graph before validation runs against the
// catalogs.
type createEventRequest struct {
	EventTypeID   int64     `json:"event_type_id" validate:"required,gt=0"`
	Intervention  string    `json:"intervention" validate:"omitempty,oneof=recorrido reporte operativo"`
	RegionID      int64     `json:"region_id" validate:"required,gt=0"`
	Shift         string    `json:"shift" validate:"omitempty,oneof=A B C Mixto Diario"`
	VehicleUnitID int64     `json:"vehicle_unit_id" validate:"required,gt=0"`
	DispatchFolio int64     `json:"dispatch_folio" validate:"omitempty,gt=0"`
	Neighborhood  string    `json:"neighborhood"`
	Street        string    `json:"street"`
	Quadrant      string    `json:"quadrant"`
	GeoZone       string    `json:"geo_zone"`
	Delegation    string    `json:"delegation"`
	Coordinates   string    `json:"coordinates"`
	OccurredAt    time.Time `json:"occurred_at"`
	Narrative     string    `json:"narrative"`

	Officers  []int64               `json:"officers" validate:"omitempty,dive,gt=0"`
	Detainees []detaineeLinkRequest `json:"detainees" validate:"omitempty,dive"`
	Motives   []int64               `json:"motives" validate:"omitempty,dive,gt=0"`
}

type detaineeLinkRequest struct {
	DetaineeID      int64  `json:"detainee_id" validate:"required,gt=0"`
	DetentionRecord string `json:"detention_record"`
}

func (req *createEventRequest) toEvent() *core.Event {
	event := &core.Event{
		EventTypeID:   req.EventTypeID,
		Intervention:  core.InterventionKind(req.Intervention),
		RegionID:      req.RegionID,
		Shift:         core.Shift(req.Shift),
		VehicleUnitID: req.VehicleUnitID,
		DispatchFolio: req.DispatchFolio,
		Neighborhood:  req.Neighborhood,
		Street:        req.Street,
		Quadrant:      req.Quadrant,
		GeoZone:       req.GeoZone,
		Delegation:    req.Delegation,
		Coordinates:   req.Coordinates,
		OccurredAt:    req.OccurredAt,
		Narrative:     req.Narrative,
	}
	for _, officerID := range req.Officers {
		event.Officers = append(event.Officers, core.EventOfficer{OfficerID: officerID})
	}
	for _, d := range req.Detainees {
		event.Detainees = append(event.Detainees, core.EventDetainee{
			DetaineeID:      d.DetaineeID,
			DetentionRecord: d.DetentionRecord,
		})
	}
	for _, motiveID := range req.Motives {
		event.Motives = append(event.Motives, core.EventMotive{MotiveID: motiveID})
	}
	return event
}

// updateEventRequest is the PATCH /api/events/{id} payload. Absent fields
// stay untouched; link sets are not updatable.
type updateEventRequest struct {
	EventTypeID   *int64     `json:"event_type_id" validate:"omitempty,gt=0"`
	Intervention  *string    `json:"intervention" validate:"omitempty,oneof=recorrido reporte operativo"`
	RegionID      *int64     `json:"region_id" validate:"omitempty,gt=0"`
	Shift         *string    `json:"shift" validate:"omitempty,oneof=A B C Mixto Diario"`
	VehicleUnitID *int64     `json:"vehicle_unit_id" validate:"omitempty,gt=0"`
	DispatchFolio *int64     `json:"dispatch_folio" validate:"omitempty,gt=0"`
	Neighborhood  *string    `json:"neighborhood"`
	Street        *string    `json:"street"`
	Quadrant      *string    `json:"quadrant"`
	GeoZone       *string    `json:"geo_zone"`
	Delegation    *string    `json:"delegation"`
	Coordinates   *string    `json:"coordinates"`
	OccurredAt    *time.Time `json:"occurred_at"`
	Narrative     *string    `json:"narrative"`
}

func (req *updateEventRequest) toUpdate() *core.EventUpdate {
	update := &core.EventUpdate{
		EventTypeID:   req.EventTypeID,
		RegionID:      req.RegionID,
		VehicleUnitID: req.VehicleUnitID,
		DispatchFolio: req.DispatchFolio,
		Neighborhood:  req.Neighborhood,
		Street:        req.Street,
		Quadrant:      req.Quadrant,
		GeoZone:       req.GeoZone,
		Delegation:    req.Delegation,
		Coordinates:   req.Coordinates,
		OccurredAt:    req.OccurredAt,
		Narrative:     req.Narrative,
	}
	if req.Intervention != nil {
		kind := core.InterventionKind(*req.Intervention)
		update.Intervention = &kind
	}
	if req.Shift != nil {
		shift := core.Shift(*req.Shift)
		update.Shift = &shift
	}
	return update
}

type createVehicleUnitRequest struct {
	Callsign     string     `json:"callsign" validate:"required"`
	Make         int        `json:"make"`
	Model        int        `json:"model"`
	Year         int        `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	RegisteredAt *time.Time `json:"registered_at"`
	Active       *bool      `json:"active"`
}

type createOfficerRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin oficial comandante"`
	ChatID   *int64 `json:"chat_id"`
}

type createDetaineeRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Age      *int   `json:"age" validate:"omitempty,gte=0,lte=120"`
	TaxID    string `json:"tax_id"`
}

type createMotiveRequest struct {
	Text       string `json:"text" validate:"required"`
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
}

type descriptionRequest struct {
	Description string `json:"description" validate:"required"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

type createWeaponRequest struct {
	Kind string `json:"kind" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type drugSeizureRequest struct {
	DrugID   int64   `json:"drug_id" validate:"required,gt=0"`
	Quantity float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit     string  `json:"unit"`
}

type weaponSeizureRequest struct {
	WeaponID int64 `json:"weapon_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"omitempty,gt=0"`
}
