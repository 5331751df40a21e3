package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vending-sim/internal/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"VENDING_CATALOG", "VENDING_LOG_LEVEL", "VENDING_LOG_FORMAT", "VENDING_COLOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Catalog)
	assert.Equal(t, logging.LevelWarn, cfg.LogLevel)
	assert.Equal(t, logging.FormatText, cfg.LogFormat)
	assert.True(t, cfg.Color)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("VENDING_CATALOG", "/etc/vending/catalog.yaml")
	t.Setenv("VENDING_LOG_LEVEL", "debug")
	t.Setenv("VENDING_LOG_FORMAT", "json")
	t.Setenv("VENDING_COLOR", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/etc/vending/catalog.yaml", cfg.Catalog)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, logging.FormatJSON, cfg.LogFormat)
	assert.False(t, cfg.Color)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VENDING_LOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("VENDING_LOG_LEVEL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_DefersValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad level", "VENDING_LOG_LEVEL", "loud"},
		{"bad format", "VENDING_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err, "a flag may still override the value")
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("VENDING_LOG_LEVEL", "loud")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	cfg.LogLevel = logging.LevelInfo
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadBoolWrapsSentinel(t *testing.T) {
	clearEnv(t)
	t.Setenv("VENDING_COLOR", "maybe")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrParsingConfig)
}
