// Package config loads optional user settings from
// ~/.config/timecapsule/config.toml, with CAPSULE_* environment variables
// taking precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/router"
)

const FileName = "config.toml"

type Config struct {
	// Database is a SQLite path or a PostgreSQL URL without a password
	Database     string        `mapstructure:"database"`
	Debug        bool          `mapstructure:"debug"`
	Timezone     string        `mapstructure:"timezone"`
	DefaultRoute string        `mapstructure:"default_route"`
	SealDelay    time.Duration `mapstructure:"seal_delay"`
}

var envBindings = map[string][]string{
	"database":      {"CAPSULE_DATABASE"},
	"debug":         {"CAPSULE_DEBUG"},
	"timezone":      {"CAPSULE_TIMEZONE"},
	"default_route": {"CAPSULE_DEFAULT_ROUTE"},
	"seal_delay":    {"CAPSULE_SEAL_DELAY"},
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(slices.Insert(envs, 0, key)...); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("timezone", "")
	v.SetDefault("default_route", "")
	v.SetDefault("seal_delay", constants.SealDelay.String())
}

// DefaultPath is ~/.config/timecapsule/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName, FileName), nil
}

// Load reads filePath if it exists and applies environment overrides. A
// missing file is not an error.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", filePath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.DefaultRoute != "" {
		if _, err := router.Parse(c.DefaultRoute); err != nil {
			return fmt.Errorf("default_route: %w", err)
		}
	}
	if c.SealDelay < 0 {
		return fmt.Errorf("seal_delay must not be negative, got %s", c.SealDelay)
	}
	return nil
}

// Location resolves Timezone, defaulting to the local zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WriteDefault writes a config file with default values unless one exists.
// It reports whether a file was written.
func WriteDefault(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	if err := v.SafeWriteConfigAs(filePath); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgres reports whether a database setting is a PostgreSQL URL
func IsPostgres(database string) bool {
	return strings.HasPrefix(database, "postgres://") || strings.HasPrefix(database, "postgresql://")
}
