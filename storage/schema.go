package storage

import "fmt"

// createTables creates the base schema. Columns added after the first
// release live in migrations_sqlite.go, so both fresh and upgraded
// databases converge on the same shape.
func (s *SQLite) createTables() error {
	schema := `
	-- Reference catalogs
	CREATE TABLE IF NOT EXISTS event_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS regions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vehicle_units (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		callsign TEXT NOT NULL,
		make INTEGER,
		model INTEGER,
		year INTEGER,
		registered_at DATETIME,
		active INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_vehicle_units_active ON vehicle_units(active);

	CREATE TABLE IF NOT EXISTS officers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		phone TEXT,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'oficial'
	);

	CREATE TABLE IF NOT EXISTS detainees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		age INTEGER,
		tax_id TEXT
	);

	CREATE TABLE IF NOT EXISTS motive_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS motives (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL UNIQUE,
		category_id INTEGER NOT NULL,
		FOREIGN KEY (category_id) REFERENCES motive_categories(id)
	);
	CREATE INDEX IF NOT EXISTS idx_motives_category_id ON motives(category_id);

	CREATE TABLE IF NOT EXISTS drugs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS weapons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		name TEXT NOT NULL
	);

	-- Events and link tables. Link rows cascade with their event; catalog
	-- references are RESTRICT-style (plain FK) so a referenced catalog row
	-- cannot be deleted out from under an event.
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type_id INTEGER NOT NULL,
		intervention TEXT,
		region_id INTEGER NOT NULL,
		shift TEXT,
		vehicle_unit_id INTEGER NOT NULL,
		dispatch_folio INTEGER,
		neighborhood TEXT,
		street TEXT,
		coordinates TEXT,
		occurred_at DATETIME,
		narrative TEXT,
		FOREIGN KEY (event_type_id) REFERENCES event_types(id),
		FOREIGN KEY (region_id) REFERENCES regions(id),
		FOREIGN KEY (vehicle_unit_id) REFERENCES vehicle_units(id)
	);
	CREATE INDEX IF NOT EXISTS idx_events_region_id ON events(region_id);
	CREATE INDEX IF NOT EXISTS idx_events_event_type_id ON events(event_type_id);

	CREATE TABLE IF NOT EXISTS event_officers (
		event_id INTEGER NOT NULL,
		officer_id INTEGER NOT NULL,
		PRIMARY KEY (event_id, officer_id),
		FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		FOREIGN KEY (officer_id) REFERENCES officers(id)
	);
	CREATE INDEX IF NOT EXISTS idx_event_officers_officer_id ON event_officers(officer_id);

	CREATE TABLE IF NOT EXISTS event_detainees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL,
		detainee_id INTEGER NOT NULL,
		detention_record TEXT,
		FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		FOREIGN KEY (detainee_id) REFERENCES detainees(id)
	);
	CREATE INDEX IF NOT EXISTS idx_event_detainees_event_id ON event_detainees(event_id);
	CREATE INDEX IF NOT EXISTS idx_event_detainees_detainee_id ON event_detainees(detainee_id);

	CREATE TABLE IF NOT EXISTS event_motives (
		event_id INTEGER NOT NULL,
		motive_id INTEGER NOT NULL,
		PRIMARY KEY (event_id, motive_id),
		FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		FOREIGN KEY (motive_id) REFERENCES motives(id)
	);
	CREATE INDEX IF NOT EXISTS idx_event_motives_motive_id ON event_motives(motive_id);

	-- Seizure records attach to the detainee link, not the detainee, so
	-- they cascade when the link (and hence the event) is removed.
	CREATE TABLE IF NOT EXISTS drug_seizures (
		drug_id INTEGER NOT NULL,
		event_detainee_id INTEGER NOT NULL,
		quantity REAL,
		unit TEXT,
		PRIMARY KEY (drug_id, event_detainee_id),
		FOREIGN KEY (drug_id) REFERENCES drugs(id),
		FOREIGN KEY (event_detainee_id) REFERENCES event_detainees(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS weapon_seizures (
		weapon_id INTEGER NOT NULL,
		event_detainee_id INTEGER NOT NULL,
		quantity INTEGER,
		PRIMARY KEY (weapon_id, event_detainee_id),
		FOREIGN KEY (weapon_id) REFERENCES weapons(id),
		FOREIGN KEY (event_detainee_id) REFERENCES event_detainees(id) ON DELETE CASCADE
	);
	`

	_, err := s.WriteDB.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	s.Logger.Info("SQLite tables created/verified")

	if err := s.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
