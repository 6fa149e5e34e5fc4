package core

import "fmt"

// Well-known catalog ids. These are domain constants: the seed loader
// creates the rows in this order and the rule table below keys on them.
const (
	EventTypeFiscalia      int64 = 1
	EventTypeDenuncia      int64 = 2
	EventTypeJuzgadoCivico int64 = 3
	EventTypeConocimiento  int64 = 4

	MotiveCategoryOffense    int64 = 1 // Delito
	MotiveCategoryInfraction int64 = 2 // Falta Administrativa
)

// Rule identifiers carried on RuleViolation so callers can distinguish
// which policy rejected the payload.
const (
	RuleDetaineesNotAllowed = "detainees_not_allowed"
	RuleMotiveCategory      = "motive_category_not_allowed"
)

// RuleViolation is returned when an event payload is internally
// inconsistent per domain policy. It is a value judgement about the
// payload, not a storage or lookup failure.
type RuleViolation struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("business rule %s: %s", v.Rule, v.Detail)
}

// eventTypePolicy declares what an event type admits. AllowedCategory
// restricts attached motives to a single category; zero means any.
type eventTypePolicy struct {
	DisplayName     string
	AllowDetainees  bool
	AllowedCategory int64
}

// eventTypePolicies is the declarative rule table. Adding a policy for a
// new event type is a one-line change; event types without an entry carry
// no restrictions.
var eventTypePolicies = map[int64]eventTypePolicy{
	EventTypeFiscalia:      {DisplayName: "Fiscalía", AllowDetainees: true, AllowedCategory: MotiveCategoryOffense},
	EventTypeDenuncia:      {DisplayName: "Denuncia", AllowDetainees: true, AllowedCategory: MotiveCategoryOffense},
	EventTypeJuzgadoCivico: {DisplayName: "Juzgado Cívico", AllowDetainees: true, AllowedCategory: MotiveCategoryInfraction},
	EventTypeConocimiento:  {DisplayName: "Conocimiento", AllowDetainees: false, AllowedCategory: MotiveCategoryOffense},
}

var motiveCategoryNames = map[int64]string{
	MotiveCategoryOffense:    "Delito",
	MotiveCategoryInfraction: "Falta Administrativa",
}

// EventTypeDisplayName returns the policy table's display name for an
// event type, or the empty string when no policy exists.
func EventTypeDisplayName(eventTypeID int64) string {
	return eventTypePolicies[eventTypeID].DisplayName
}

// CheckEventRules evaluates the domain policy for a candidate event. It is
// a pure function: motives must already be resolved (category included) and
// are checked in the given order, reporting the first violation found.
//
// The detainee check runs before the motive checks since it is independent
// of motive resolution.
func CheckEventRules(eventTypeID int64, motives []Motive, hasDetainees bool) *RuleViolation {
	policy, ok := eventTypePolicies[eventTypeID]
	if !ok {
		return nil
	}

	if !policy.AllowDetainees && hasDetainees {
		return &RuleViolation{
			Rule:   RuleDetaineesNotAllowed,
			Detail: fmt.Sprintf("'%s' events cannot have detainees", policy.DisplayName),
		}
	}

	if policy.AllowedCategory != 0 {
		for _, m := range motives {
			if m.CategoryID != policy.AllowedCategory {
				return &RuleViolation{
					Rule: RuleMotiveCategory,
					Detail: fmt.Sprintf("'%s' events only admit motives of category '%s'; motive '%s' (id %d) is of category '%s'",
						policy.DisplayName,
						motiveCategoryNames[policy.AllowedCategory],
						m.Text, m.ID,
						motiveCategoryNames[m.CategoryID]),
				}
			}
		}
	}

	return nil
}
