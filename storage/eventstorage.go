package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"iph/core"
)

// SQLiteEventStorage persists events and their officer/detainee/motive
// link sets.
type SQLiteEventStorage struct {
	db *SQLite
}

// NewSQLiteEventStorage creates event storage backed by the given database.
func NewSQLiteEventStorage(db *SQLite) *SQLiteEventStorage {
	return &SQLiteEventStorage{db: db}
}

// InsertEventGraph inserts the event row and all of its link rows within
// the caller's transaction. IDs are assigned on the event and on each
// detainee link. Any failure leaves the transaction poisoned so the caller
// rolls back the whole graph.
func (s *SQLiteEventStorage) InsertEventGraph(tx *sql.Tx, event *core.Event) error {
	result, err := tx.Exec(`
		INSERT INTO events (
			event_type_id, intervention, region_id, shift, vehicle_unit_id,
			dispatch_folio, neighborhood, street, quadrant, geo_zone,
			delegation, coordinates, occurred_at, narrative
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.EventTypeID, nullString(string(event.Intervention)), event.RegionID,
		nullString(string(event.Shift)), event.VehicleUnitID,
		nullInt64(event.DispatchFolio), nullString(event.Neighborhood),
		nullString(event.Street), nullString(event.Quadrant),
		nullString(event.GeoZone), nullString(event.Delegation),
		nullString(event.Coordinates), event.OccurredAt, nullString(event.Narrative))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get event id: %w", err)
	}
	event.ID = eventID

	for i := range event.Officers {
		event.Officers[i].EventID = eventID
		_, err := tx.Exec(
			"INSERT INTO event_officers (event_id, officer_id) VALUES (?, ?)",
			eventID, event.Officers[i].OfficerID)
		if err != nil {
			return fmt.Errorf("failed to link officer %d: %w", event.Officers[i].OfficerID, err)
		}
	}

	for i := range event.Detainees {
		event.Detainees[i].EventID = eventID
		result, err := tx.Exec(
			"INSERT INTO event_detainees (event_id, detainee_id, detention_record) VALUES (?, ?, ?)",
			eventID, event.Detainees[i].DetaineeID, nullString(event.Detainees[i].DetentionRecord))
		if err != nil {
			return fmt.Errorf("failed to link detainee %d: %w", event.Detainees[i].DetaineeID, err)
		}
		linkID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get detainee link id: %w", err)
		}
		event.Detainees[i].ID = linkID
	}

	for i := range event.Motives {
		event.Motives[i].EventID = eventID
		_, err := tx.Exec(
			"INSERT INTO event_motives (event_id, motive_id) VALUES (?, ?)",
			eventID, event.Motives[i].MotiveID)
		if err != nil {
			return fmt.Errorf("failed to link motive %d: %w", event.Motives[i].MotiveID, err)
		}
	}

	return nil
}

const eventColumns = `
	id, event_type_id, intervention, region_id, shift, vehicle_unit_id,
	dispatch_folio, neighborhood, street, quadrant, geo_zone, delegation,
	coordinates, occurred_at, narrative`

// GetEvent loads an event and its link sets by id.
func (s *SQLiteEventStorage) GetEvent(ctx context.Context, id int64) (*core.Event, error) {
	row := s.db.ReadDB.QueryRowContext(ctx,
		"SELECT"+eventColumns+" FROM events WHERE id = ?", id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := s.loadLinks(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns a page of events ordered by id descending, newest first.
func (s *SQLiteEventStorage) ListEvents(ctx context.Context, limit, offset int) ([]core.Event, error) {
	return s.listEvents(ctx,
		"SELECT"+eventColumns+" FROM events ORDER BY id DESC LIMIT ? OFFSET ?",
		limit, offset)
}

// CountEvents returns the total number of events.
func (s *SQLiteEventStorage) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.ReadDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// SearchEventsByFolio returns events whose dispatch folio contains the
// given digits, as a substring match on the folio's decimal form.
func (s *SQLiteEventStorage) SearchEventsByFolio(ctx context.Context, folio string, limit, offset int) ([]core.Event, error) {
	pattern := "%" + folio + "%"
	return s.listEvents(ctx,
		"SELECT"+eventColumns+` FROM events
		WHERE CAST(dispatch_folio AS TEXT) LIKE ?
		ORDER BY id DESC LIMIT ? OFFSET ?`,
		pattern, limit, offset)
}

// ListEventsByRegion returns a page of events belonging to one region.
func (s *SQLiteEventStorage) ListEventsByRegion(ctx context.Context, regionID int64, limit, offset int) ([]core.Event, error) {
	return s.listEvents(ctx,
		"SELECT"+eventColumns+" FROM events WHERE region_id = ? ORDER BY id DESC LIMIT ? OFFSET ?",
		regionID, limit, offset)
}

// UpdateEvent applies a partial update to an event's own columns. Returns
// ErrNoFields when the update is empty and ErrEventNotFound when no row
// matches.
func (s *SQLiteEventStorage) UpdateEvent(ctx context.Context, id int64, update *core.EventUpdate) error {
	query, args, err := buildEventUpdate(id, update)
	if err != nil {
		return err
	}

	result, err := s.db.WriteDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkEventAffected(result)
}

// UpdateEventTx is UpdateEvent within the caller's transaction, for callers
// that validate referenced ids in the same snapshot as the write.
func (s *SQLiteEventStorage) UpdateEventTx(tx *sql.Tx, id int64, update *core.EventUpdate) error {
	query, args, err := buildEventUpdate(id, update)
	if err != nil {
		return err
	}

	result, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkEventAffected(result)
}

func buildEventUpdate(id int64, update *core.EventUpdate) (string, []interface{}, error) {
	var (
		sets []string
		args []interface{}
	)

	addSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.EventTypeID != nil {
		addSet("event_type_id", *update.EventTypeID)
	}
	if update.Intervention != nil {
		addSet("intervention", string(*update.Intervention))
	}
	if update.RegionID != nil {
		addSet("region_id", *update.RegionID)
	}
	if update.Shift != nil {
		addSet("shift", string(*update.Shift))
	}
	if update.VehicleUnitID != nil {
		addSet("vehicle_unit_id", *update.VehicleUnitID)
	}
	if update.DispatchFolio != nil {
		addSet("dispatch_folio", *update.DispatchFolio)
	}
	if update.Neighborhood != nil {
		addSet("neighborhood", *update.Neighborhood)
	}
	if update.Street != nil {
		addSet("street", *update.Street)
	}
	if update.Quadrant != nil {
		addSet("quadrant", *update.Quadrant)
	}
	if update.GeoZone != nil {
		addSet("geo_zone", *update.GeoZone)
	}
	if update.Delegation != nil {
		addSet("delegation", *update.Delegation)
	}
	if update.Coordinates != nil {
		addSet("coordinates", *update.Coordinates)
	}
	if update.OccurredAt != nil {
		addSet("occurred_at", *update.OccurredAt)
	}
	if update.Narrative != nil {
		addSet("narrative", *update.Narrative)
	}

	if len(sets) == 0 {
		return "", nil, ErrNoFields
	}

	query := fmt.Sprintf("UPDATE events SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)
	return query, args, nil
}

func checkEventAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes an event. Link rows and seizure records cascade
// through foreign keys.
func (s *SQLiteEventStorage) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.WriteDB.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (s *SQLiteEventStorage) listEvents(ctx context.Context, query string, args ...interface{}) ([]core.Event, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []core.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		if err := s.loadLinks(ctx, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// loadLinks populates the officer, detainee and motive link sets.
func (s *SQLiteEventStorage) loadLinks(ctx context.Context, event *core.Event) error {
	officerRows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT event_id, officer_id FROM event_officers WHERE event_id = ? ORDER BY officer_id",
		event.ID)
	if err != nil {
		return fmt.Errorf("failed to load event officers: %w", err)
	}
	defer officerRows.Close()
	for officerRows.Next() {
		var link core.EventOfficer
		if err := officerRows.Scan(&link.EventID, &link.OfficerID); err != nil {
			return fmt.Errorf("failed to scan event officer: %w", err)
		}
		event.Officers = append(event.Officers, link)
	}
	if err := officerRows.Err(); err != nil {
		return err
	}

	detaineeRows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, event_id, detainee_id, detention_record FROM event_detainees WHERE event_id = ? ORDER BY id",
		event.ID)
	if err != nil {
		return fmt.Errorf("failed to load event detainees: %w", err)
	}
	defer detaineeRows.Close()
	for detaineeRows.Next() {
		var (
			link   core.EventDetainee
			record sql.NullString
		)
		if err := detaineeRows.Scan(&link.ID, &link.EventID, &link.DetaineeID, &record); err != nil {
			return fmt.Errorf("failed to scan event detainee: %w", err)
		}
		link.DetentionRecord = record.String
		event.Detainees = append(event.Detainees, link)
	}
	if err := detaineeRows.Err(); err != nil {
		return err
	}

	motiveRows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT event_id, motive_id FROM event_motives WHERE event_id = ? ORDER BY motive_id",
		event.ID)
	if err != nil {
		return fmt.Errorf("failed to load event motives: %w", err)
	}
	defer motiveRows.Close()
	for motiveRows.Next() {
		var link core.EventMotive
		if err := motiveRows.Scan(&link.EventID, &link.MotiveID); err != nil {
			return fmt.Errorf("failed to scan event motive: %w", err)
		}
		event.Motives = append(event.Motives, link)
	}
	return motiveRows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*core.Event, error) {
	var (
		event        core.Event
		intervention sql.NullString
		shift        sql.NullString
		folio        sql.NullInt64
		neighborhood sql.NullString
		street       sql.NullString
		quadrant     sql.NullString
		geoZone      sql.NullString
		delegation   sql.NullString
		coordinates  sql.NullString
		occurredAt   sql.NullTime
		narrative    sql.NullString
	)

	err := row.Scan(
		&event.ID, &event.EventTypeID, &intervention, &event.RegionID, &shift,
		&event.VehicleUnitID, &folio, &neighborhood, &street, &quadrant,
		&geoZone, &delegation, &coordinates, &occurredAt, &narrative)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.Intervention = core.InterventionKind(intervention.String)
	event.Shift = core.Shift(shift.String)
	event.DispatchFolio = folio.Int64
	event.Neighborhood = neighborhood.String
	event.Street = street.String
	event.Quadrant = quadrant.String
	event.GeoZone = geoZone.String
	event.Delegation = delegation.String
	event.Coordinates = coordinates.String
	if occurredAt.Valid {
		event.OccurredAt = occurredAt.Time
	}
	event.Narrative = narrative.String

	return &event, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}
