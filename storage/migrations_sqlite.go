package storage

import (
	"database/sql"
	"fmt"
)

// RunMigrations applies schema migrations on the write pool. Called from
// createTables so every NewSQLite ends with an up-to-date schema.
func (s *SQLite) RunMigrations() error {
	runner, err := NewMigrationRunner(s.WriteDB, s.Logger)
	if err != nil {
		return err
	}

	RegisterSQLiteMigrations(runner)

	return runner.RunMigrations()
}

// RegisterSQLiteMigrations registers all known migrations with the runner.
// Each Up guards against columns that already exist, since bookkeeping can
// be lost when a database file is restored from backup without its
// schema_migrations table.
func RegisterSQLiteMigrations(runner *MigrationRunner) {
	runner.Register(Migration{
		Version: "1.1.0",
		Name:    "add_location_detail_columns",
		Up: func(tx *sql.Tx) error {
			for _, column := range []string{"quadrant", "geo_zone", "delegation"} {
				exists, err := columnExists(tx, "events", column)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE events ADD COLUMN %s TEXT", column)); err != nil {
					return fmt.Errorf("failed to add events.%s: %w", column, err)
				}
			}
			return nil
		},
	})

	runner.Register(Migration{
		Version: "1.2.0",
		Name:    "add_officer_chat_id",
		Up: func(tx *sql.Tx) error {
			exists, err := columnExists(tx, "officers", "chat_id")
			if err != nil {
				return err
			}
			if !exists {
				// ADD COLUMN cannot carry UNIQUE in SQLite; a partial unique
				// index gives the same guarantee while allowing NULLs.
				if _, err := tx.Exec("ALTER TABLE officers ADD COLUMN chat_id INTEGER"); err != nil {
					return fmt.Errorf("failed to add officers.chat_id: %w", err)
				}
			}
			_, err = tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_officers_chat_id
				ON officers(chat_id) WHERE chat_id IS NOT NULL`)
			return err
		},
	})

	runner.Register(Migration{
		Version: "1.3.0",
		Name:    "add_event_lookup_indexes",
		Up: func(tx *sql.Tx) error {
			statements := []string{
				"CREATE INDEX IF NOT EXISTS idx_events_dispatch_folio ON events(dispatch_folio)",
				"CREATE INDEX IF NOT EXISTS idx_events_occurred_at ON events(occurred_at DESC)",
			}
			for _, stmt := range statements {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// columnExists reports whether the named column exists on the table.
func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	var count int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, column,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s schema: %w", table, err)
	}
	return count > 0, nil
}
