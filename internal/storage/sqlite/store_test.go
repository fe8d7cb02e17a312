package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/models"
)

func openTemp(t *testing.T, path, slot string) *Store {
	t.Helper()
	store, err := Open(path, slot)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestOpenRequiresPathAndSlot(t *testing.T) {
	_, err := Open("", "current")
	assert.Error(t, err)
	_, err = Open(filepath.Join(t.TempDir(), "x.db"), "  ")
	assert.Error(t, err)
}

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "silkroute.db")
	openTemp(t, path, "current")

	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	var name string
	err = sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'snapshots'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "snapshots", name)
}

func TestOpenAppliesPragmas(t *testing.T) {
	store := openTemp(t, filepath.Join(t.TempDir(), "silkroute.db"), "current")

	var mode string
	require.NoError(t, store.sqlDB.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, store.sqlDB.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestLoadEmptySlot(t *testing.T) {
	store := openTemp(t, filepath.Join(t.TempDir(), "silkroute.db"), "current")
	_, err := store.Load()
	assert.ErrorIs(t, err, models.ErrNoSnapshot)
	assert.NoError(t, store.Clear(), "clearing an empty slot")
}

func TestSaveOverwritesAndClear(t *testing.T) {
	store := openTemp(t, filepath.Join(t.TempDir(), "silkroute.db"), "current")

	require.NoError(t, store.Save([]byte("first")))
	require.NoError(t, store.Save([]byte("second")))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, models.ErrNoSnapshot)
}

func TestSlotsAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silkroute.db")
	a := openTemp(t, path, "alpha")
	b := openTemp(t, path, "beta")

	require.NoError(t, a.Save([]byte("a")))
	_, err := b.Load()
	assert.ErrorIs(t, err, models.ErrNoSnapshot)
	require.NoError(t, b.Save([]byte("b")))

	slots, err := a.Slots()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, slots)

	require.NoError(t, a.Clear())
	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestNilStore(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
	assert.Error(t, store.Save(nil))
	_, err := store.Load()
	assert.Error(t, err)
}

func TestSessionSurvivesReopen(t *testing.T) {
	g, err := content.Default()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "silkroute.db")

	first, err := Open(path, "current")
	require.NoError(t, err)
	session := models.NewSession(g)
	session.AddPoints(42)
	require.NoError(t, models.NewStore(first, g, nil).Save(session))
	require.NoError(t, first.Close())

	second := openTemp(t, path, "current")
	loaded := models.NewStore(second, g, nil).Load()
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, 42, loaded.Points)
}
