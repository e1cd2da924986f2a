package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DB_HOST", "")

	path := writeConfig(t, `
[database]
host = "db"
user = "scheduling"
password = "${DB_PASSWORD}"
dbname = "scheduling"

[scheduling]
timezone = "UTC"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Redis.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
	assert.Equal(t, "postgres://scheduling:secret@db:5432/scheduling?sslmode=disable", cfg.Database.URL())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DB_HOST", "override")
	t.Setenv("REDIS_ADDR", "redis:6379")

	path := writeConfig(t, `
[database]
host = "from-file"
user = "u"
dbname = "d"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.Database.Host)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("DB_HOST", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[database\nhost ="))
	assert.ErrorIs(t, err, ErrParseConfig)

	_, err = Load(writeConfig(t, "[database]\nuser = \"u\"\ndbname = \"d\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "[database]\nhost = \"h\"\nuser = \"u\"\ndbname = \"d\"\n[scheduling]\ntimezone = \"Mars/Olympus\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
