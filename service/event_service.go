package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"iph/core"
	"iph/metrics"
	"iph/storage"
)

// EventServiceOptions tune payload requirements. Both default to true,
// matching field reporting practice: an IPH without responding officers or
// a legal motive is incomplete.
type EventServiceOptions struct {
	RequireOfficers bool
	RequireMotives  bool
}

// EventService orchestrates event creation: referential validation, domain
// rule evaluation and the atomic graph insert all run inside a single
// transaction, so a payload either commits whole or leaves no trace.
type EventService struct {
	db       *storage.SQLite
	events   *storage.SQLiteEventStorage
	catalogs *storage.SQLiteCatalogStorage
	logger   *zap.SugaredLogger
	opts     EventServiceOptions
}

// NewEventService creates the event service.
func NewEventService(db *storage.SQLite, events *storage.SQLiteEventStorage, catalogs *storage.SQLiteCatalogStorage, logger *zap.SugaredLogger, opts EventServiceOptions) *EventService {
	return &EventService{
		db:       db,
		events:   events,
		catalogs: catalogs,
		logger:   logger,
		opts:     opts,
	}
}

// CreateEvent validates and persists an event with its officer, detainee
// and motive links. On success the event's id and link ids are populated.
//
// Error contract, in evaluation order:
//   - *RequiredFieldError when the payload is structurally incomplete
//   - *ReferenceNotFoundError listing every unknown id, all categories
//   - *core.RuleViolation when the payload breaks domain policy
func (s *EventService) CreateEvent(ctx context.Context, event *core.Event) error {
	if err := s.checkRequired(event); err != nil {
		return err
	}

	start := time.Now()
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		motives, err := s.validateReferences(tx, event)
		if err != nil {
			return err
		}

		if v := core.CheckEventRules(event.EventTypeID, motives, len(event.Detainees) > 0); v != nil {
			metrics.EventRejections.WithLabelValues(metrics.RejectionRuleViolation).Inc()
			return v
		}

		return s.events.InsertEventGraph(tx, event)
	})
	metrics.DBQueryDuration.WithLabelValues("create_event").Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	metrics.EventsCreated.Inc()
	s.logger.Infow("Event created",
		"event_id", event.ID,
		"event_type_id", event.EventTypeID,
		"officers", len(event.Officers),
		"detainees", len(event.Detainees),
		"motives", len(event.Motives))
	return nil
}

func (s *EventService) checkRequired(event *core.Event) error {
	switch {
	case event.EventTypeID == 0:
		return &RequiredFieldError{Field: "event_type_id"}
	case event.RegionID == 0:
		return &RequiredFieldError{Field: "region_id"}
	case event.VehicleUnitID == 0:
		return &RequiredFieldError{Field: "vehicle_unit_id"}
	case s.opts.RequireOfficers && len(event.Officers) == 0:
		return &RequiredFieldError{Field: "officers"}
	case s.opts.RequireMotives && len(event.Motives) == 0:
		return &RequiredFieldError{Field: "motives"}
	}
	return nil
}

// validateReferences checks every referenced id against the catalogs in one
// pass, collecting all misses before failing. Returns the resolved motives
// in payload order for rule evaluation.
func (s *EventService) validateReferences(tx *sql.Tx, event *core.Event) ([]core.Motive, error) {
	refErr := &ReferenceNotFoundError{}

	exists, err := s.catalogs.EventTypeExists(tx, event.EventTypeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		refErr.add(RefEventType, event.EventTypeID)
	}

	exists, err = s.catalogs.RegionExists(tx, event.RegionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		refErr.add(RefRegion, event.RegionID)
	}

	exists, err = s.catalogs.VehicleUnitExists(tx, event.VehicleUnitID)
	if err != nil {
		return nil, err
	}
	if !exists {
		refErr.add(RefVehicleUnit, event.VehicleUnitID)
	}

	if len(event.Officers) > 0 {
		ids := make([]int64, len(event.Officers))
		for i, o := range event.Officers {
			ids[i] = o.OfficerID
		}
		missing, err := s.catalogs.MissingOfficerIDs(tx, ids)
		if err != nil {
			return nil, err
		}
		refErr.add(RefOfficers, missing...)
	}

	if len(event.Detainees) > 0 {
		ids := make([]int64, len(event.Detainees))
		for i, d := range event.Detainees {
			ids[i] = d.DetaineeID
		}
		missing, err := s.catalogs.MissingDetaineeIDs(tx, ids)
		if err != nil {
			return nil, err
		}
		refErr.add(RefDetainees, missing...)
	}

	var motives []core.Motive
	if len(event.Motives) > 0 {
		ids := make([]int64, len(event.Motives))
		for i, m := range event.Motives {
			ids[i] = m.MotiveID
		}
		resolved, missing, err := s.catalogs.ResolveMotives(tx, ids)
		if err != nil {
			return nil, err
		}
		refErr.add(RefMotives, missing...)
		motives = resolved
	}

	if !refErr.empty() {
		metrics.EventRejections.WithLabelValues(metrics.RejectionMissingReference).Inc()
		return nil, refErr
	}
	return motives, nil
}

// GetEvent returns an event with its link sets.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*core.Event, error) {
	return s.events.GetEvent(ctx, id)
}

// ListEvents returns a page of events plus the total count.
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]core.Event, int64, error) {
	events, err := s.events.ListEvents(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.events.CountEvents(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// SearchEventsByFolio returns events whose dispatch folio contains the
// given digit substring.
func (s *EventService) SearchEventsByFolio(ctx context.Context, folio string, limit, offset int) ([]core.Event, error) {
	return s.events.SearchEventsByFolio(ctx, folio, limit, offset)
}

// ListEventsByRegion returns a page of events for one region. Unknown
// regions yield a ReferenceNotFoundError rather than an empty page.
func (s *EventService) ListEventsByRegion(ctx context.Context, regionID int64, limit, offset int) ([]core.Event, error) {
	var events []core.Event
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		exists, err := s.catalogs.RegionExists(tx, regionID)
		if err != nil {
			return err
		}
		if !exists {
			refErr := &ReferenceNotFoundError{}
			refErr.add(RefRegion, regionID)
			return refErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events, err = s.events.ListEventsByRegion(ctx, regionID, limit, offset)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent applies a partial update to an event's own columns. Updated
// reference fields are validated against the catalogs; link sets and
// domain rules are not re-evaluated, since the stored link sets were
// validated at creation and remain untouched.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, update *core.EventUpdate) error {
	if update.Empty() {
		return storage.ErrNoFields
	}

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		refErr := &ReferenceNotFoundError{}

		if update.EventTypeID != nil {
			exists, err := s.catalogs.EventTypeExists(tx, *update.EventTypeID)
			if err != nil {
				return err
			}
			if !exists {
				refErr.add(RefEventType, *update.EventTypeID)
			}
		}
		if update.RegionID != nil {
			exists, err := s.catalogs.RegionExists(tx, *update.RegionID)
			if err != nil {
				return err
			}
			if !exists {
				refErr.add(RefRegion, *update.RegionID)
			}
		}
		if update.VehicleUnitID != nil {
			exists, err := s.catalogs.VehicleUnitExists(tx, *update.VehicleUnitID)
			if err != nil {
				return err
			}
			if !exists {
				refErr.add(RefVehicleUnit, *update.VehicleUnitID)
			}
		}

		if !refErr.empty() {
			metrics.EventRejections.WithLabelValues(metrics.RejectionMissingReference).Inc()
			return refErr
		}

		return s.events.UpdateEventTx(tx, id, update)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Event updated", "event_id", id)
	return nil
}

// DeleteEvent removes an event; its link rows and seizure records cascade.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return err
	}
	metrics.EventsDeleted.Inc()
	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}
