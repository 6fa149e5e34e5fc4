package core

import "time"

// EventType classifies an event and gates which motive categories are
// legal for it (see rules.go).
type EventType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Region is a patrol region referenced by events.
type Region struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// VehicleUnit is a patrol vehicle referenced by events.
type VehicleUnit struct {
	ID           int64      `json:"id"`
	Callsign     string     `json:"callsign"`
	Make         int        `json:"make,omitempty"`
	Model        int        `json:"model,omitempty"`
	Year         int        `json:"year,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	Active       bool       `json:"active"`
}

// OfficerRole is the role an officer holds in the system.
type OfficerRole string

const (
	RoleAdmin     OfficerRole = "admin"
	RoleOfficer   OfficerRole = "oficial"
	RoleCommander OfficerRole = "comandante"
)

// Valid reports whether r is a known officer role.
func (r OfficerRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleCommander:
		return true
	}
	return false
}

// Officer is a police officer who can participate in events.
type Officer struct {
	ID       int64       `json:"id"`
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone,omitempty"`
	Email    string      `json:"email"`
	Role     OfficerRole `json:"role"`
	// ChatID is the officer's external chat identifier, unique when present.
	ChatID *int64 `json:"chat_id,omitempty"`
}

// Detainee is a detained person referenced by event detainee links.
type Detainee struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Age      *int   `json:"age,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
}

// MotiveCategory classifies motives. Exactly two rows exist: Delito
// (offense) and Falta Administrativa (administrative infraction).
type MotiveCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Motive is a legal motive attached to events. Every motive belongs to
// exactly one category.
type Motive struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	CategoryID int64  `json:"category_id"`
}

// Drug is a catalog entry for seizable drugs.
type Drug struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Weapon is a catalog entry for seizable weapons.
type Weapon struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}
