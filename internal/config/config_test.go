package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "*.csv", cfg.Input.Pattern)
	assert.Equal(t, 4, cfg.Input.Workers)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
}

func TestLoadConfigBlockOverrides(t *testing.T) {
	dir := writeConfig(t, "blocks:\n  東京: 19\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 19, cfg.Blocks["東京"])
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "database:\n  driver: sqlite\n  dsn: a.db\n")
	t.Setenv("DATABASE_DSN", "b.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "b.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"unknown driver":  "database:\n  driver: oracle\n",
		"zero workers":    "input:\n  workers: 0\n",
		"bad encoding":    "input:\n  encoding: latin1\n",
		"negative seats":  "blocks:\n  東京: -1\n",
		"bad server mode": "server:\n  mode: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
