package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/persistence"
	"github.com/example/shift-planner/internal/persistence/sqlite"
	"github.com/example/shift-planner/internal/testfixtures"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testDocument(t *testing.T) persistence.Document {
	t.Helper()
	care := testfixtures.NewCategoryFixture(testfixtures.AsCare())
	employee := testfixtures.NewEmployeeFixture()
	shift := testfixtures.NewShiftFixture(employee.ID, application.Monday,
		testfixtures.CareSegment(care.ID, 480, 960))
	snap := testfixtures.NewSnapshotFixture(
		[]application.Category{care}, nil,
		[]application.Employee{employee}, []application.Shift{shift})
	return persistence.FromSnapshot(snap)
}

func TestStore_SaveAndGetRoster(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	doc := testDocument(t)

	require.NoError(t, store.SaveRoster(ctx, "default", doc))

	loaded, err := store.GetRoster(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestStore_SaveRosterOverwrites(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(t)
	require.NoError(t, store.SaveRoster(ctx, "default", doc))

	doc.MasterSchedule.Title = "KW 36"
	require.NoError(t, store.SaveRoster(ctx, "default", doc))

	loaded, err := store.GetRoster(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "KW 36", loaded.MasterSchedule.Title)

	names, err := store.ListRosters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)
}

func TestStore_GetRosterNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.GetRoster(context.Background(), "missing")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestStore_ListRostersOrdered(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	doc := testDocument(t)

	for _, name := range []string{"winter", "autumn", "summer"} {
		require.NoError(t, store.SaveRoster(ctx, name, doc))
	}

	names, err := store.ListRosters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"autumn", "summer", "winter"}, names)
}

func TestStore_DeleteRoster(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoster(ctx, "default", testDocument(t)))
	require.NoError(t, store.DeleteRoster(ctx, "default"))

	_, err := store.GetRoster(ctx, "default")
	assert.ErrorIs(t, err, persistence.ErrNotFound)

	assert.ErrorIs(t, store.DeleteRoster(ctx, "default"), persistence.ErrNotFound)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.SaveRoster(context.Background(), "default", testDocument(t)))
}

func TestStore_ImplementsRosterRepository(t *testing.T) {
	t.Parallel()
	var _ persistence.RosterRepository = (*sqlite.Store)(nil)
}
