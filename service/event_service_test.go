package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iph/core"
	"iph/storage"
)

type testEnv struct {
	db       *storage.SQLite
	catalogs *storage.SQLiteCatalogStorage
	service  *EventService

	regionID   int64
	unitID     int64
	officerID  int64
	detaineeID int64
	offenseID  int64
	infractID  int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "iph.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catalogs := storage.NewSQLiteCatalogStorage(db)
	events := storage.NewSQLiteEventStorage(db)
	svc := NewEventService(db, events, catalogs, zap.NewNop().Sugar(),
		EventServiceOptions{RequireOfficers: true, RequireMotives: true})

	env := &testEnv{db: db, catalogs: catalogs, service: svc}

	for _, desc := range []string{"Fiscalía", "Denuncia", "Juzgado Cívico", "Conocimiento"} {
		et := core.EventType{Description: desc}
		require.NoError(t, catalogs.CreateEventType(ctx, &et))
	}

	region := core.Region{Description: "Región 1"}
	require.NoError(t, catalogs.CreateRegion(ctx, &region))
	env.regionID = region.ID

	unit := core.VehicleUnit{Callsign: "RP-101", Active: true}
	require.NoError(t, catalogs.CreateVehicleUnit(ctx, &unit))
	env.unitID = unit.ID

	officer := core.Officer{FullName: "Juan Pérez", Email: "jperez@example.com"}
	require.NoError(t, catalogs.CreateOfficer(ctx, &officer))
	env.officerID = officer.ID

	detainee := core.Detainee{FullName: "Pedro López"}
	require.NoError(t, catalogs.CreateDetainee(ctx, &detainee))
	env.detaineeID = detainee.ID

	offense := core.MotiveCategory{Name: "Delito"}
	require.NoError(t, catalogs.CreateMotiveCategory(ctx, &offense))
	infraction := core.MotiveCategory{Name: "Falta Administrativa"}
	require.NoError(t, catalogs.CreateMotiveCategory(ctx, &infraction))

	robbery := core.Motive{Text: "Robo con violencia", CategoryID: offense.ID}
	require.NoError(t, catalogs.CreateMotive(ctx, &robbery))
	env.offenseID = robbery.ID

	noise := core.Motive{Text: "Escándalo en vía pública", CategoryID: infraction.ID}
	require.NoError(t, catalogs.CreateMotive(ctx, &noise))
	env.infractID = noise.ID

	return env
}

func (env *testEnv) validEvent() *core.Event {
	return &core.Event{
		EventTypeID:   core.EventTypeFiscalia,
		Intervention:  core.InterventionReport,
		RegionID:      env.regionID,
		Shift:         core.ShiftB,
		VehicleUnitID: env.unitID,
		DispatchFolio: 2024051234,
		OccurredAt:    time.Date(2024, 5, 12, 23, 40, 0, 0, time.UTC),
		Officers:      []core.EventOfficer{{OfficerID: env.officerID}},
		Motives:       []core.EventMotive{{MotiveID: env.offenseID}},
	}
}

func TestCreateEvent_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.validEvent()
	require.NoError(t, env.service.CreateEvent(ctx, event))
	assert.NotZero(t, event.ID)

	got, err := env.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, got.Officers, 1)
	assert.Len(t, got.Motives, 1)
}

func TestCreateEvent_CollectsAllMissingReferences(t *testing.T) {
	env := newTestEnv(t)

	event := env.validEvent()
	event.EventTypeID = 77
	event.RegionID = 88
	event.Officers = append(event.Officers, core.EventOfficer{OfficerID: 998}, core.EventOfficer{OfficerID: 999})
	event.Motives = append(event.Motives, core.EventMotive{MotiveID: 500})
	event.Detainees = []core.EventDetainee{{DetaineeID: 600}}

	err := env.service.CreateEvent(context.Background(), event)
	var refErr *ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)

	assert.Equal(t, []int64{77}, refErr.Missing[RefEventType])
	assert.Equal(t, []int64{88}, refErr.Missing[RefRegion])
	assert.Equal(t, []int64{998, 999}, refErr.Missing[RefOfficers])
	assert.Equal(t, []int64{500}, refErr.Missing[RefMotives])
	assert.Equal(t, []int64{600}, refErr.Missing[RefDetainees])
	assert.NotContains(t, refErr.Missing, RefVehicleUnit, "valid references stay out of the report")
}

func TestCreateEvent_SingleUnknownOfficer(t *testing.T) {
	env := newTestEnv(t)

	event := env.validEvent()
	event.Officers = []core.EventOfficer{{OfficerID: 999}}

	err := env.service.CreateEvent(context.Background(), event)
	var refErr *ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, map[string][]int64{RefOfficers: {999}}, refErr.Missing)
}

func TestCreateEvent_RuleViolationRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Conocimiento with a detainee trips the detainee policy after all
	// references validate.
	event := env.validEvent()
	event.EventTypeID = core.EventTypeConocimiento
	event.Detainees = []core.EventDetainee{{DetaineeID: env.detaineeID}}

	err := env.service.CreateEvent(ctx, event)
	var violation *core.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, core.RuleDetaineesNotAllowed, violation.Rule)

	_, total, listErr := env.service.ListEvents(ctx, 10, 0)
	require.NoError(t, listErr)
	assert.Zero(t, total, "rejected payloads leave no rows behind")
}

func TestCreateEvent_MotiveCategoryViolation(t *testing.T) {
	env := newTestEnv(t)

	event := env.validEvent()
	event.Motives = append(event.Motives, core.EventMotive{MotiveID: env.infractID})

	err := env.service.CreateEvent(context.Background(), event)
	var violation *core.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, core.RuleMotiveCategory, violation.Rule)
	assert.Contains(t, violation.Detail, "Escándalo en vía pública")
}

func TestCreateEvent_RequiredFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.validEvent()
	event.Officers = nil
	err := env.service.CreateEvent(ctx, event)
	var fieldErr *RequiredFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "officers", fieldErr.Field)

	event = env.validEvent()
	event.Motives = nil
	err = env.service.CreateEvent(ctx, event)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "motives", fieldErr.Field)

	event = env.validEvent()
	event.VehicleUnitID = 0
	err = env.service.CreateEvent(ctx, event)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "vehicle_unit_id", fieldErr.Field)
}

func TestCreateEvent_OptionalLinksConfigurable(t *testing.T) {
	env := newTestEnv(t)
	events := storage.NewSQLiteEventStorage(env.db)
	relaxed := NewEventService(env.db, events, env.catalogs, zap.NewNop().Sugar(),
		EventServiceOptions{RequireOfficers: false, RequireMotives: false})

	event := env.validEvent()
	event.Officers = nil
	event.Motives = nil
	require.NoError(t, relaxed.CreateEvent(context.Background(), event))
	assert.NotZero(t, event.ID)
}

func TestUpdateEvent_ValidatesReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.validEvent()
	require.NoError(t, env.service.CreateEvent(ctx, event))

	badRegion := int64(99)
	err := env.service.UpdateEvent(ctx, event.ID, &core.EventUpdate{RegionID: &badRegion})
	var refErr *ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []int64{99}, refErr.Missing[RefRegion])

	narrative := "Actualizado"
	require.NoError(t, env.service.UpdateEvent(ctx, event.ID, &core.EventUpdate{Narrative: &narrative}))

	got, err := env.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, narrative, got.Narrative)
	assert.Equal(t, env.regionID, got.RegionID, "failed update left region untouched")
}

func TestUpdateEvent_EmptyAndMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.validEvent()
	require.NoError(t, env.service.CreateEvent(ctx, event))

	err := env.service.UpdateEvent(ctx, event.ID, &core.EventUpdate{})
	assert.ErrorIs(t, err, storage.ErrNoFields)

	narrative := "x"
	err = env.service.UpdateEvent(ctx, 4242, &core.EventUpdate{Narrative: &narrative})
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.validEvent()
	require.NoError(t, env.service.CreateEvent(ctx, event))

	require.NoError(t, env.service.DeleteEvent(ctx, event.ID))
	_, err := env.service.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)

	assert.ErrorIs(t, env.service.DeleteEvent(ctx, event.ID), storage.ErrEventNotFound)
}

func TestListEventsByRegion_UnknownRegion(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ListEventsByRegion(context.Background(), 99, 10, 0)
	var refErr *ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []int64{99}, refErr.Missing[RefRegion])
}

func TestSearchEventsByFolio(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.validEvent()
	first.DispatchFolio = 2024051234
	require.NoError(t, env.service.CreateEvent(ctx, first))

	second := env.validEvent()
	second.DispatchFolio = 9900112
	require.NoError(t, env.service.CreateEvent(ctx, second))

	got, err := env.service.SearchEventsByFolio(ctx, "0112", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
}
