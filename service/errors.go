package service

import (
	"fmt"
	"sort"
	"strings"
)

// Reference categories reported by ReferenceNotFoundError.
const (
	RefEventType   = "event_type"
	RefRegion      = "region"
	RefVehicleUnit = "vehicle_unit"
	RefOfficers    = "officers"
	RefDetainees   = "detainees"
	RefMotives     = "motives"
)

// ReferenceNotFoundError reports every unknown catalog id in an event
// payload, grouped by category. Validation never stops at the first
// missing id, so one round trip surfaces everything to fix.
type ReferenceNotFoundError struct {
	Missing map[string][]int64
}

func (e *ReferenceNotFoundError) Error() string {
	categories := make([]string, 0, len(e.Missing))
	for category := range e.Missing {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		ids := e.Missing[category]
		idStrs := make([]string, len(ids))
		for i, id := range ids {
			idStrs[i] = fmt.Sprintf("%d", id)
		}
		parts = append(parts, fmt.Sprintf("%s: [%s]", category, strings.Join(idStrs, ", ")))
	}
	return "referenced ids not found: " + strings.Join(parts, "; ")
}

// add records missing ids under a category, skipping empty sets.
func (e *ReferenceNotFoundError) add(category string, ids ...int64) {
	if len(ids) == 0 {
		return
	}
	if e.Missing == nil {
		e.Missing = make(map[string][]int64)
	}
	e.Missing[category] = append(e.Missing[category], ids...)
}

// empty reports whether no missing ids were recorded.
func (e *ReferenceNotFoundError) empty() bool {
	return len(e.Missing) == 0
}

// RequiredFieldError reports a structurally incomplete event payload.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("required field missing or empty: %s", e.Field)
}
