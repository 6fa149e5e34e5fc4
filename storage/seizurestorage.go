package storage

import (
	"context"
	"database/sql"
	"fmt"

	"iph/core"
)

// SQLiteSeizureStorage persists drug and weapon seizure records. Records
// attach to an event detainee link, so they cascade away with the event.
type SQLiteSeizureStorage struct {
	db *SQLite
}

// NewSQLiteSeizureStorage creates seizure storage backed by the given database.
func NewSQLiteSeizureStorage(db *SQLite) *SQLiteSeizureStorage {
	return &SQLiteSeizureStorage{db: db}
}

// AddDrugSeizure records a drug seizure against a detainee link.
func (s *SQLiteSeizureStorage) AddDrugSeizure(ctx context.Context, seizure *core.DrugSeizure) error {
	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.checkLink(tx, seizure.EventDetaineeID); err != nil {
			return err
		}
		if exists, err := rowExists(tx, "drugs", seizure.DrugID); err != nil {
			return err
		} else if !exists {
			return ErrDrugNotFound
		}

		_, err := tx.Exec(`
			INSERT INTO drug_seizures (drug_id, event_detainee_id, quantity, unit)
			VALUES (?, ?, ?, ?)`,
			seizure.DrugID, seizure.EventDetaineeID, seizure.Quantity, nullString(seizure.Unit))
		if err != nil {
			return fmt.Errorf("failed to record drug seizure: %w", err)
		}
		return nil
	})
}

// ListDrugSeizures returns the drug seizures attached to a detainee link.
func (s *SQLiteSeizureStorage) ListDrugSeizures(ctx context.Context, eventDetaineeID int64) ([]core.DrugSeizure, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx, `
		SELECT drug_id, event_detainee_id, quantity, unit
		FROM drug_seizures WHERE event_detainee_id = ? ORDER BY drug_id`,
		eventDetaineeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drug seizures: %w", err)
	}
	defer rows.Close()

	var seizures []core.DrugSeizure
	for rows.Next() {
		var (
			seizure  core.DrugSeizure
			quantity sql.NullFloat64
			unit     sql.NullString
		)
		if err := rows.Scan(&seizure.DrugID, &seizure.EventDetaineeID, &quantity, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan drug seizure: %w", err)
		}
		seizure.Quantity = quantity.Float64
		seizure.Unit = unit.String
		seizures = append(seizures, seizure)
	}
	return seizures, rows.Err()
}

// AddWeaponSeizure records a weapon seizure against a detainee link.
func (s *SQLiteSeizureStorage) AddWeaponSeizure(ctx context.Context, seizure *core.WeaponSeizure) error {
	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.checkLink(tx, seizure.EventDetaineeID); err != nil {
			return err
		}
		if exists, err := rowExists(tx, "weapons", seizure.WeaponID); err != nil {
			return err
		} else if !exists {
			return ErrWeaponNotFound
		}

		_, err := tx.Exec(`
			INSERT INTO weapon_seizures (weapon_id, event_detainee_id, quantity)
			VALUES (?, ?, ?)`,
			seizure.WeaponID, seizure.EventDetaineeID, seizure.Quantity)
		if err != nil {
			return fmt.Errorf("failed to record weapon seizure: %w", err)
		}
		return nil
	})
}

// ListWeaponSeizures returns the weapon seizures attached to a detainee link.
func (s *SQLiteSeizureStorage) ListWeaponSeizures(ctx context.Context, eventDetaineeID int64) ([]core.WeaponSeizure, error) {
	rows, err := s.db.ReadDB.QueryContext(ctx, `
		SELECT weapon_id, event_detainee_id, quantity
		FROM weapon_seizures WHERE event_detainee_id = ? ORDER BY weapon_id`,
		eventDetaineeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weapon seizures: %w", err)
	}
	defer rows.Close()

	var seizures []core.WeaponSeizure
	for rows.Next() {
		var (
			seizure  core.WeaponSeizure
			quantity sql.NullInt64
		)
		if err := rows.Scan(&seizure.WeaponID, &seizure.EventDetaineeID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan weapon seizure: %w", err)
		}
		seizure.Quantity = int(quantity.Int64)
		seizures = append(seizures, seizure)
	}
	return seizures, rows.Err()
}

func (s *SQLiteSeizureStorage) checkLink(tx *sql.Tx, eventDetaineeID int64) error {
	exists, err := rowExists(tx, "event_detainees", eventDetaineeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrDetaineeLinkNotFound
	}
	return nil
}
