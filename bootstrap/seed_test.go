package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iph/core"
	"iph/storage"
)

func TestSeedCatalogs(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()

	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "iph.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catalogs := storage.NewSQLiteCatalogStorage(db)
	require.NoError(t, SeedCatalogs(ctx, catalogs, logger))

	types, err := catalogs.ListEventTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 4)
	// The rule table keys on these ids.
	assert.Equal(t, "Fiscalía", types[core.EventTypeFiscalia-1].Description)
	assert.Equal(t, "Conocimiento", types[core.EventTypeConocimiento-1].Description)

	regions, err := catalogs.ListRegions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 9)

	categories, err := catalogs.ListMotiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Delito", categories[0].Name)
	assert.Equal(t, "Falta Administrativa", categories[1].Name)

	motives, err := catalogs.ListMotives(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, motives, 5)

	drugs, err := catalogs.ListDrugs(ctx)
	require.NoError(t, err)
	assert.Len(t, drugs, 5)

	weapons, err := catalogs.ListWeapons(ctx)
	require.NoError(t, err)
	assert.Len(t, weapons, 18)
}

func TestSeedCatalogs_Idempotent(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()

	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "iph.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catalogs := storage.NewSQLiteCatalogStorage(db)
	require.NoError(t, SeedCatalogs(ctx, catalogs, logger))
	require.NoError(t, SeedCatalogs(ctx, catalogs, logger))

	types, err := catalogs.ListEventTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4, "second run must not duplicate rows")
}
