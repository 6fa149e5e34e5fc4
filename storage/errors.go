package storage

import "errors"

// Storage error constants
var (
	// ErrEventNotFound is returned when an event is not found
	ErrEventNotFound = errors.New("event not found")

	// ErrEventTypeNotFound is returned when an event type is not found
	ErrEventTypeNotFound = errors.New("event type not found")

	// ErrRegionNotFound is returned when a region is not found
	ErrRegionNotFound = errors.New("region not found")

	// ErrVehicleUnitNotFound is returned when a vehicle unit is not found
	ErrVehicleUnitNotFound = errors.New("vehicle unit not found")

	// ErrOfficerNotFound is returned when an officer is not found
	ErrOfficerNotFound = errors.New("officer not found")

	// ErrDetaineeNotFound is returned when a detainee is not found
	ErrDetaineeNotFound = errors.New("detainee not found")

	// ErrMotiveNotFound is returned when a motive is not found
	ErrMotiveNotFound = errors.New("motive not found")

	// ErrMotiveCategoryNotFound is returned when a motive category is not found
	ErrMotiveCategoryNotFound = errors.New("motive category not found")

	// ErrDetaineeLinkNotFound is returned when an event detainee link is not found
	ErrDetaineeLinkNotFound = errors.New("event detainee link not found")

	// ErrDrugNotFound is returned when a drug catalog entry is not found
	ErrDrugNotFound = errors.New("drug not found")

	// ErrWeaponNotFound is returned when a weapon catalog entry is not found
	ErrWeaponNotFound = errors.New("weapon not found")

	// Generic storage errors

	// ErrNotFound is a generic "not found" error
	ErrNotFound = errors.New("not found")

	// ErrNoFields is returned when a partial update carries no fields
	ErrNoFields = errors.New("no fields to update")

	// ErrDatabaseClosed is returned when attempting to use a closed database connection
	ErrDatabaseClosed = errors.New("database is closed")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("constraint violation")
)
