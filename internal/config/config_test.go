package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/router"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, e := range envs {
			t.Setenv(e, "")
			os.Unsetenv(e)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultConfigPath, cfg.Database)
	assert.False(t, cfg.Debug)
	assert.Equal(t, constants.SealDelay, cfg.SealDelay)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
database = "/srv/capsules.db"
debug = true
timezone = "Europe/Berlin"
default_route = "/create"
seal_delay = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/capsules.db", cfg.Database)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "/create", cfg.DefaultRoute)
	assert.Equal(t, 250*time.Millisecond, cfg.SealDelay)

	r, err := router.Parse(cfg.DefaultRoute)
	require.NoError(t, err)
	assert.Equal(t, router.Create, r)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`database = "/from/file.db"`), 0600))

	t.Setenv("CAPSULE_DATABASE", "postgres://capsule@db.internal/capsules")
	t.Setenv("CAPSULE_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://capsule@db.internal/capsules", cfg.Database)
	assert.True(t, cfg.Debug)
	assert.True(t, IsPostgres(cfg.Database))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Config{}, true},
		{"bad timezone", Config{Timezone: "Mars/Olympus"}, false},
		{"bad route", Config{DefaultRoute: "/nowhere"}, false},
		{"negative delay", Config{SealDelay: -time.Second}, false},
		{"capsule route", Config{DefaultRoute: "/capsule/abc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("database = [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	written, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, written)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultConfigPath, cfg.Database)

	written, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, written, "existing file is left alone")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.config/timecapsule/capsule.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/timecapsule/capsule.db"), got)

	got, err = ExpandHome("/abs/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.db", got)

	got, err = ExpandHome("postgres://u@h/db")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@h/db", got)
}
