package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/silk-route/internal/config"
	"github.com/tatianab/silk-route/internal/models"
	"github.com/tatianab/silk-route/internal/storage/sqlite"
	"go.uber.org/zap"
)

func TestOpenAdapterByBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		check   func(t *testing.T, a models.Adapter)
	}{
		{config.BackendFile, func(t *testing.T, a models.Adapter) { assert.IsType(t, &models.FileAdapter{}, a) }},
		{config.BackendSQLite, func(t *testing.T, a models.Adapter) { assert.IsType(t, &sqlite.Store{}, a) }},
		{config.BackendMemory, func(t *testing.T, a models.Adapter) { assert.IsType(t, &models.MemoryAdapter{}, a) }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			c := &config.Config{
				Backend: tt.backend,
				SaveDir: dir,
				DBPath:  filepath.Join(dir, "silkroute.db"),
				Slot:    "current",
			}
			a, closer, err := openAdapter(c)
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, closer()) })
			tt.check(t, a)
		})
	}
}

func TestOpenAppResumesAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	c := &config.Config{Backend: config.BackendSQLite, DBPath: filepath.Join(dir, "silkroute.db"), SaveDir: dir, Slot: "current"}

	first, err := openApp(c, zap.NewNop())
	require.NoError(t, err)
	require.True(t, first.engine.SelectChoice("ask_more"))
	require.NoError(t, first.Close())

	second, err := openApp(c, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, "boatman_story", second.engine.Session().CurrentDialogueID)

	names, err := slots(c, second.adapter)
	require.NoError(t, err)
	assert.Equal(t, []string{"current"}, names)
}

func TestLoadGraphRejectsMissingFile(t *testing.T) {
	_, err := loadGraph(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
