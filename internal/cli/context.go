package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/timecapsule/internal/backup"
	"github.com/julianstephens/timecapsule/internal/config"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/storage"
)

// Context is handed to every command's Run method by kong
type Context struct {
	Store  storage.Provider
	Config *config.Config
	// ConfigPath is where config.toml lives; empty disables writing it
	ConfigPath string
	// Now is the wall clock; tests pin it
	Now func() time.Time
	Out io.Writer
}

// NewContext fills in the clock and output defaults
func NewContext(store storage.Provider, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Context{
		Store:  store,
		Config: cfg,
		Now:    time.Now,
		Out:    os.Stdout,
	}
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Location is the configured display timezone, local time by default
func (c *Context) Location() *time.Location {
	if c.Config == nil {
		return time.Local
	}
	loc, err := c.Config.Location()
	if err != nil {
		logger.Warn("Invalid timezone, using local time", "timezone", c.Config.Timezone, "error", err)
		return time.Local
	}
	return loc
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// IsSQLite reports whether the store is a local database file that can be
// backed up
func (c *Context) IsSQLite() bool {
	return !config.IsPostgres(c.Store.GetConfigPath())
}

// DataDir holds the database, logs, backups and the instance lock. For
// PostgreSQL it falls back to the default config directory.
func (c *Context) DataDir() string {
	if c.IsSQLite() {
		return filepath.Dir(c.Store.GetConfigPath())
	}
	path, err := config.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return "."
	}
	return path
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// command. Failures are logged and do not stop the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
