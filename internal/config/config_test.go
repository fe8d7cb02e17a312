package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ".saves", cfg.SaveDir)
	assert.Equal(t, "current", cfg.Slot)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, ".saves/silkroute.db", cfg.DBPath)
	assert.Empty(t, cfg.ContentPath)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SILKROUTE_BACKEND", "sqlite")
	t.Setenv("SILKROUTE_SLOT", "second")
	t.Setenv("SILKROUTE_LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "second", cfg.Slot)
	assert.NoError(t, cfg.RequireGemini())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"backend": {"SILKROUTE_BACKEND": "postgres"},
		"level":   {"SILKROUTE_LOG_LEVEL": "loud"},
		"slot":    {"SILKROUTE_SLOT": " "},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestRequireGemini(t *testing.T) {
	cfg := Config{}
	assert.ErrorContains(t, cfg.RequireGemini(), "GEMINI_API_KEY")
}

type envTestConfig struct {
	Turns int `env:"SILKROUTE_TEST_TURNS" envDefault:"12"`
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 12, cfg.Turns)

	t.Setenv("SILKROUTE_TEST_TURNS", "many")
	assert.ErrorContains(t, ParseEnv(&cfg), "parse env:")
}
