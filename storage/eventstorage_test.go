package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iph/core"
)

func newTestEvent(regionID, unitID, officerID, detaineeID, motiveID int64) *core.Event {
	return &core.Event{
		EventTypeID:   core.EventTypeFiscalia,
		Intervention:  core.InterventionPatrol,
		RegionID:      regionID,
		Shift:         core.ShiftA,
		VehicleUnitID: unitID,
		DispatchFolio: 2024051234,
		Neighborhood:  "Centro",
		Street:        "Av. Juárez 12",
		Quadrant:      "C-3",
		OccurredAt:    time.Date(2024, 5, 12, 23, 40, 0, 0, time.UTC),
		Narrative:     "Detención tras reporte de robo.",
		Officers:      []core.EventOfficer{{OfficerID: officerID}},
		Detainees:     []core.EventDetainee{{DetaineeID: detaineeID, DetentionRecord: "RD-77"}},
		Motives:       []core.EventMotive{{MotiveID: motiveID}},
	}
}

func insertTestEvent(t *testing.T, db *SQLite, event *core.Event) {
	t.Helper()
	events := NewSQLiteEventStorage(db)
	require.NoError(t, db.WithTransaction(context.Background(), func(tx *sql.Tx) error {
		return events.InsertEventGraph(tx, event)
	}))
}

func TestInsertEventGraph_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, event)
	require.NotZero(t, event.ID)
	require.NotZero(t, event.Detainees[0].ID, "detainee link gets its own id")

	got, err := events.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)

	assert.Equal(t, event.EventTypeID, got.EventTypeID)
	assert.Equal(t, core.InterventionPatrol, got.Intervention)
	assert.Equal(t, core.ShiftA, got.Shift)
	assert.Equal(t, int64(2024051234), got.DispatchFolio)
	assert.Equal(t, "C-3", got.Quadrant)
	assert.True(t, event.OccurredAt.Equal(got.OccurredAt))

	require.Len(t, got.Officers, 1)
	assert.Equal(t, officerID, got.Officers[0].OfficerID)
	require.Len(t, got.Detainees, 1)
	assert.Equal(t, detaineeID, got.Detainees[0].DetaineeID)
	assert.Equal(t, "RD-77", got.Detainees[0].DetentionRecord)
	require.Len(t, got.Motives, 1)
	assert.Equal(t, motiveID, got.Motives[0].MotiveID)
}

func TestInsertEventGraph_RollbackOnLinkFailure(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)
	ctx := context.Background()

	// The second officer id violates the FK, after the event row and the
	// first link have been written. Nothing may survive.
	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	event.Officers = append(event.Officers, core.EventOfficer{OfficerID: 9999})

	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return events.InsertEventGraph(tx, event)
	})
	require.Error(t, err)

	for _, table := range []string{"events", "event_officers", "event_detainees", "event_motives"} {
		var count int
		require.NoError(t, db.ReadDB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
		assert.Zerof(t, count, "%s must be empty after rollback", table)
	}
}

func TestInsertEventGraph_DuplicateOfficerRejected(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	event.Officers = append(event.Officers, core.EventOfficer{OfficerID: officerID})

	err := db.WithTransaction(context.Background(), func(tx *sql.Tx) error {
		return events.InsertEventGraph(tx, event)
	})
	require.Error(t, err, "duplicate officer link violates the composite primary key")

	count, countErr := events.CountEvents(context.Background())
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestGetEvent_NotFound(t *testing.T) {
	db := newTestDB(t)
	events := NewSQLiteEventStorage(db)

	_, err := events.GetEvent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListEvents_PaginationNewestFirst(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
		insertTestEvent(t, db, event)
		ids = append(ids, event.ID)
	}

	page, err := events.ListEvents(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[4], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)

	page, err = events.ListEvents(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)

	count, err := events.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestSearchEventsByFolio(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)
	ctx := context.Background()

	folios := []int64{2024051234, 2024069999, 1234}
	for _, folio := range folios {
		event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
		event.DispatchFolio = folio
		insertTestEvent(t, db, event)
	}

	// Substring match: "1234" hits both 2024051234 and 1234.
	got, err := events.SearchEventsByFolio(ctx, "1234", 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = events.SearchEventsByFolio(ctx, "9999", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2024069999), got[0].DispatchFolio)

	got, err = events.SearchEventsByFolio(ctx, "77777", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListEventsByRegion(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	catalogs := NewSQLiteCatalogStorage(db)
	events := NewSQLiteEventStorage(db)
	ctx := context.Background()

	other := core.Region{Description: "Región 2"}
	require.NoError(t, catalogs.CreateRegion(ctx, &other))

	first := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, first)
	second := newTestEvent(other.ID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, second)

	got, err := events.ListEventsByRegion(ctx, other.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
}

func TestUpdateEvent_Partial(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)
	ctx := context.Background()

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, event)

	narrative := "Narrativa corregida."
	shift := core.ShiftC
	err := events.UpdateEvent(ctx, event.ID, &core.EventUpdate{
		Narrative: &narrative,
		Shift:     &shift,
	})
	require.NoError(t, err)

	got, err := events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, narrative, got.Narrative)
	assert.Equal(t, core.ShiftC, got.Shift)
	// Untouched fields survive.
	assert.Equal(t, "Centro", got.Neighborhood)
	assert.Equal(t, int64(2024051234), got.DispatchFolio)
}

func TestUpdateEvent_NoFields(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	events := NewSQLiteEventStorage(db)

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, event)

	err := events.UpdateEvent(context.Background(), event.ID, &core.EventUpdate{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	db := newTestDB(t)
	events := NewSQLiteEventStorage(db)

	narrative := "x"
	err := events.UpdateEvent(context.Background(), 42, &core.EventUpdate{Narrative: &narrative})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent_CascadesLinksAndSeizures(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	catalogs := NewSQLiteCatalogStorage(db)
	events := NewSQLiteEventStorage(db)
	seizures := NewSQLiteSeizureStorage(db)
	ctx := context.Background()

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, event)

	drug := core.Drug{Description: "Marihuana"}
	require.NoError(t, catalogs.CreateDrug(ctx, &drug))
	require.NoError(t, seizures.AddDrugSeizure(ctx, &core.DrugSeizure{
		DrugID:          drug.ID,
		EventDetaineeID: event.Detainees[0].ID,
		Quantity:        12.5,
		Unit:            "g",
	}))

	require.NoError(t, events.DeleteEvent(ctx, event.ID))

	_, err := events.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	for _, table := range []string{"event_officers", "event_detainees", "event_motives", "drug_seizures"} {
		var count int
		require.NoError(t, db.ReadDB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
		assert.Zerof(t, count, "%s rows must cascade with the event", table)
	}

	// Catalog rows are untouched by the cascade.
	officers, err := catalogs.ListOfficers(ctx)
	require.NoError(t, err)
	assert.Len(t, officers, 1)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	db := newTestDB(t)
	events := NewSQLiteEventStorage(db)

	err := events.DeleteEvent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSeizures_LinkNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCatalogs(t, db)
	seizures := NewSQLiteSeizureStorage(db)
	ctx := context.Background()

	err := seizures.AddDrugSeizure(ctx, &core.DrugSeizure{DrugID: 1, EventDetaineeID: 42})
	assert.ErrorIs(t, err, ErrDetaineeLinkNotFound)

	err = seizures.AddWeaponSeizure(ctx, &core.WeaponSeizure{WeaponID: 1, EventDetaineeID: 42})
	assert.ErrorIs(t, err, ErrDetaineeLinkNotFound)
}

func TestWeaponSeizure_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	regionID, unitID, officerID, detaineeID, motiveID := seedCatalogs(t, db)
	catalogs := NewSQLiteCatalogStorage(db)
	seizures := NewSQLiteSeizureStorage(db)
	ctx := context.Background()

	event := newTestEvent(regionID, unitID, officerID, detaineeID, motiveID)
	insertTestEvent(t, db, event)

	weapon := core.Weapon{Kind: "Arma corta", Name: "Pistola 9mm"}
	require.NoError(t, catalogs.CreateWeapon(ctx, &weapon))

	require.NoError(t, seizures.AddWeaponSeizure(ctx, &core.WeaponSeizure{
		WeaponID:        weapon.ID,
		EventDetaineeID: event.Detainees[0].ID,
		Quantity:        1,
	}))

	got, err := seizures.ListWeaponSeizures(ctx, event.Detainees[0].ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, weapon.ID, got[0].WeaponID)
	assert.Equal(t, 1, got[0].Quantity)
}
