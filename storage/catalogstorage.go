package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"iph/core"
)

// SQLiteCatalogStorage provides CRUD over the reference catalogs plus the
// tx-scoped membership queries the event service runs during validation.
type SQLiteCatalogStorage struct {
	db *SQLite
}

// NewSQLiteCatalogStorage creates catalog storage backed by the given database.
func NewSQLiteCatalogStorage(db *SQLite) *SQLiteCatalogStorage {
	return &SQLiteCatalogStorage{db: db}
}

// --- Event types ---

func (s *SQLiteCatalogStorage) CreateEventType(ctx context.Context, et *core.EventType) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO event_types (description) VALUES (?)", et.Description)
	if err != nil {
		return fmt.Errorf("failed to create event type: %w", err)
	}
	et.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListEventTypes(ctx context.Context) ([]core.EventType, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, description FROM event_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list event types: %w", err)
	}
	defer rows.Close()

	var types []core.EventType
	for rows.Next() {
		var et core.EventType
		if err := rows.Scan(&et.ID, &et.Description); err != nil {
			return nil, fmt.Errorf("failed to scan event type: %w", err)
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

// --- Regions ---

func (s *SQLiteCatalogStorage) CreateRegion(ctx context.Context, r *core.Region) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO regions (description) VALUES (?)", r.Description)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	r.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListRegions(ctx context.Context) ([]core.Region, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, description FROM regions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []core.Region
	for rows.Next() {
		var r core.Region
		if err := rows.Scan(&r.ID, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

// --- Vehicle units ---

func (s *SQLiteCatalogStorage) CreateVehicleUnit(ctx context.Context, v *core.VehicleUnit) error {
	result, err := s.db.WriteDB.ExecContext(ctx, `
		INSERT INTO vehicle_units (callsign, make, model, year, registered_at, active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Callsign, v.Make, v.Model, v.Year, v.RegisteredAt, boolToInt(v.Active))
	if err != nil {
		return fmt.Errorf("failed to create vehicle unit: %w", err)
	}
	v.ID, _ = result.LastInsertId()
	return nil
}

// ListVehicleUnits lists vehicle units, optionally filtered by active flag.
func (s *SQLiteCatalogStorage) ListVehicleUnits(ctx context.Context, active *bool) ([]core.VehicleUnit, error) {
	query := "SELECT id, callsign, make, model, year, registered_at, active FROM vehicle_units"
	var args []interface{}
	if active != nil {
		query += " WHERE active = ?"
		args = append(args, boolToInt(*active))
	}
	query += " ORDER BY id"

	rows, err := s.db.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle units: %w", err)
	}
	defer rows.Close()

	var units []core.VehicleUnit
	for rows.Next() {
		var (
			v          core.VehicleUnit
			unitMake   sql.NullInt64
			model      sql.NullInt64
			year       sql.NullInt64
			registered sql.NullTime
			activeFlag int
		)
		if err := rows.Scan(&v.ID, &v.Callsign, &unitMake, &model, &year, &registered, &activeFlag); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle unit: %w", err)
		}
		v.Make = int(unitMake.Int64)
		v.Model = int(model.Int64)
		v.Year = int(year.Int64)
		if registered.Valid {
			t := registered.Time
			v.RegisteredAt = &t
		}
		v.Active = activeFlag == 1
		units = append(units, v)
	}
	return units, rows.Err()
}

// --- Officers ---

func (s *SQLiteCatalogStorage) CreateOfficer(ctx context.Context, o *core.Officer) error {
	if o.Role == "" {
		o.Role = core.RoleOfficer
	}
	result, err := s.db.WriteDB.ExecContext(ctx, `
		INSERT INTO officers (full_name, phone, email, role, chat_id)
		VALUES (?, ?, ?, ?, ?)`,
		o.FullName, o.Phone, o.Email, string(o.Role), o.ChatID)
	if err != nil {
		return fmt.Errorf("failed to create officer: %w", err)
	}
	o.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListOfficers(ctx context.Context) ([]core.Officer, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, full_name, phone, email, role, chat_id FROM officers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list officers: %w", err)
	}
	defer rows.Close()

	var officers []core.Officer
	for rows.Next() {
		var (
			o      core.Officer
			phone  sql.NullString
			role   string
			chatID sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.FullName, &phone, &o.Email, &role, &chatID); err != nil {
			return nil, fmt.Errorf("failed to scan officer: %w", err)
		}
		o.Phone = phone.String
		o.Role = core.OfficerRole(role)
		if chatID.Valid {
			id := chatID.Int64
			o.ChatID = &id
		}
		officers = append(officers, o)
	}
	return officers, rows.Err()
}

// --- Detainees ---

func (s *SQLiteCatalogStorage) CreateDetainee(ctx context.Context, d *core.Detainee) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO detainees (full_name, age, tax_id) VALUES (?, ?, ?)",
		d.FullName, d.Age, d.TaxID)
	if err != nil {
		return fmt.Errorf("failed to create detainee: %w", err)
	}
	d.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListDetainees(ctx context.Context) ([]core.Detainee, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, full_name, age, tax_id FROM detainees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list detainees: %w", err)
	}
	defer rows.Close()

	var detainees []core.Detainee
	for rows.Next() {
		var (
			d     core.Detainee
			age   sql.NullInt64
			taxID sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.FullName, &age, &taxID); err != nil {
			return nil, fmt.Errorf("failed to scan detainee: %w", err)
		}
		if age.Valid {
			a := int(age.Int64)
			d.Age = &a
		}
		d.TaxID = taxID.String
		detainees = append(detainees, d)
	}
	return detainees, rows.Err()
}

// --- Motive categories and motives ---

func (s *SQLiteCatalogStorage) CreateMotiveCategory(ctx context.Context, mc *core.MotiveCategory) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO motive_categories (name) VALUES (?)", mc.Name)
	if err != nil {
		return fmt.Errorf("failed to create motive category: %w", err)
	}
	mc.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListMotiveCategories(ctx context.Context) ([]core.MotiveCategory, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, name FROM motive_categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list motive categories: %w", err)
	}
	defer rows.Close()

	var categories []core.MotiveCategory
	for rows.Next() {
		var mc core.MotiveCategory
		if err := rows.Scan(&mc.ID, &mc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan motive category: %w", err)
		}
		categories = append(categories, mc)
	}
	return categories, rows.Err()
}

func (s *SQLiteCatalogStorage) CreateMotive(ctx context.Context, m *core.Motive) error {
	var exists int
	err := s.db.WriteDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM motive_categories WHERE id = ?", m.CategoryID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check motive category: %w", err)
	}
	if exists == 0 {
		return ErrMotiveCategoryNotFound
	}

	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO motives (text, category_id) VALUES (?, ?)", m.Text, m.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to create motive: %w", err)
	}
	m.ID, _ = result.LastInsertId()
	return nil
}

// ListMotives lists motives, optionally filtered to one category.
func (s *SQLiteCatalogStorage) ListMotives(ctx context.Context, categoryID *int64) ([]core.Motive, error) {
	query := "SELECT id, text, category_id FROM motives"
	var args []interface{}
	if categoryID != nil {
		query += " WHERE category_id = ?"
		args = append(args, *categoryID)
	}
	query += " ORDER BY id"

	rows, err := s.db.ReadDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list motives: %w", err)
	}
	defer rows.Close()

	var motives []core.Motive
	for rows.Next() {
		var m core.Motive
		if err := rows.Scan(&m.ID, &m.Text, &m.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan motive: %w", err)
		}
		motives = append(motives, m)
	}
	return motives, rows.Err()
}

// --- Drugs and weapons ---

func (s *SQLiteCatalogStorage) CreateDrug(ctx context.Context, d *core.Drug) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO drugs (description) VALUES (?)", d.Description)
	if err != nil {
		return fmt.Errorf("failed to create drug: %w", err)
	}
	d.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListDrugs(ctx context.Context) ([]core.Drug, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, description FROM drugs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list drugs: %w", err)
	}
	defer rows.Close()

	var drugs []core.Drug
	for rows.Next() {
		var d core.Drug
		if err := rows.Scan(&d.ID, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan drug: %w", err)
		}
		drugs = append(drugs, d)
	}
	return drugs, rows.Err()
}

func (s *SQLiteCatalogStorage) CreateWeapon(ctx context.Context, w *core.Weapon) error {
	result, err := s.db.WriteDB.ExecContext(ctx,
		"INSERT INTO weapons (kind, name) VALUES (?, ?)", w.Kind, w.Name)
	if err != nil {
		return fmt.Errorf("failed to create weapon: %w", err)
	}
	w.ID, _ = result.LastInsertId()
	return nil
}

func (s *SQLiteCatalogStorage) ListWeapons(ctx context.Context) ([]core.Weapon, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx,
		"SELECT id, kind, name FROM weapons ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list weapons: %w", err)
	}
	defer rows.Close()

	var weapons []core.Weapon
	for rows.Next() {
		var w core.Weapon
		if err := rows.Scan(&w.ID, &w.Kind, &w.Name); err != nil {
			return nil, fmt.Errorf("failed to scan weapon: %w", err)
		}
		weapons = append(weapons, w)
	}
	return weapons, rows.Err()
}

// --- Tx-scoped membership queries ---
//
// These run inside the event creation transaction so validation and insert
// see one consistent snapshot of the catalogs.

// EventTypeExists reports whether the event type id exists.
func (s *SQLiteCatalogStorage) EventTypeExists(tx *sql.Tx, id int64) (bool, error) {
	return rowExists(tx, "event_types", id)
}

// RegionExists reports whether the region id exists.
func (s *SQLiteCatalogStorage) RegionExists(tx *sql.Tx, id int64) (bool, error) {
	return rowExists(tx, "regions", id)
}

// VehicleUnitExists reports whether the vehicle unit id exists.
func (s *SQLiteCatalogStorage) VehicleUnitExists(tx *sql.Tx, id int64) (bool, error) {
	return rowExists(tx, "vehicle_units", id)
}

// MissingOfficerIDs returns the subset of ids with no officers row,
// in input order.
func (s *SQLiteCatalogStorage) MissingOfficerIDs(tx *sql.Tx, ids []int64) ([]int64, error) {
	return missingIDs(tx, "officers", ids)
}

// MissingDetaineeIDs returns the subset of ids with no detainees row,
// in input order.
func (s *SQLiteCatalogStorage) MissingDetaineeIDs(tx *sql.Tx, ids []int64) ([]int64, error) {
	return missingIDs(tx, "detainees", ids)
}

// ResolveMotives loads the motives for the given ids, preserving input
// order, and returns the ids that resolved to nothing.
func (s *SQLiteCatalogStorage) ResolveMotives(tx *sql.Tx, ids []int64) ([]core.Motive, []int64, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	query := fmt.Sprintf(
		"SELECT id, text, category_id FROM motives WHERE id IN (%s)",
		placeholders(len(ids)))
	rows, err := tx.Query(query, int64Args(ids)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve motives: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]core.Motive, len(ids))
	for rows.Next() {
		var m core.Motive
		if err := rows.Scan(&m.ID, &m.Text, &m.CategoryID); err != nil {
			return nil, nil, fmt.Errorf("failed to scan motive: %w", err)
		}
		found[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var (
		motives []core.Motive
		missing []int64
	)
	for _, id := range ids {
		if m, ok := found[id]; ok {
			motives = append(motives, m)
		} else {
			missing = append(missing, id)
		}
	}
	return motives, missing, nil
}

// CountEventTypes returns the number of event type rows. Used by seeding
// to detect an empty catalog.
func (s *SQLiteCatalogStorage) CountEventTypes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.ReadDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM event_types").Scan(&count)
	return count, err
}

// --- Helpers ---

func rowExists(tx *sql.Tx, table string, id int64) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table)
	if err := tx.QueryRow(query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", table, err)
	}
	return count > 0, nil
}

func missingIDs(tx *sql.Tx, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE id IN (%s)", table, placeholders(len(ids)))
	rows, err := tx.Query(query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s membership: %w", table, err)
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
