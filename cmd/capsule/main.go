package main

import (
	stderrors "errors"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/cli/backups"
	"github.com/julianstephens/timecapsule/internal/cli/capsules"
	"github.com/julianstephens/timecapsule/internal/cli/system"
	"github.com/julianstephens/timecapsule/internal/config"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/errors"
	"github.com/julianstephens/timecapsule/internal/keyring"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/storage"
	"github.com/julianstephens/timecapsule/internal/storage/postgres"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
)

type grammar struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead."`
	Verbose bool   `name:"debug" help:"Write debug logs to stderr as well as the log file."`

	Init     system.InitCmd     `cmd:"" help:"Initialize capsule storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Register system.RegisterCmd `cmd:"" help:"Create or replace your profile."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Capsule  struct {
		Add     capsules.AddCmd     `cmd:"" help:"Seal a new capsule."`
		List    capsules.ListCmd    `cmd:"" help:"List capsules."`
		Show    capsules.ShowCmd    `cmd:"" help:"Show a capsule."`
		Delete  capsules.DeleteCmd  `cmd:"" help:"Delete a capsule."`
		Restore capsules.RestoreCmd `cmd:"" help:"Restore a deleted capsule."`
	} `cmd:"" help:"Manage capsules."`
	Watch  capsules.WatchCmd  `cmd:"" help:"Watch a capsule's countdown until it unlocks."`
	Export capsules.ExportCmd `cmd:"" help:"Export capsules to a TOML file."`
	Import capsules.ImportCmd `cmd:"" help:"Import capsules from a TOML file."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

var CLI grammar

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name(constants.BinaryName),
		kong.Description("Seal messages and memories until a date in the future"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

// resolveDatabase picks the database in order: the --config flag, the
// config file or CAPSULE_DATABASE, then a connection string in the keyring.
// trusted is set for keyring values, which may carry a password.
func resolveDatabase(flag string, cfg *config.Config) (database string, trusted bool) {
	if flag != "" {
		return flag, false
	}
	if cfg.Database != "" && cfg.Database != constants.DefaultConfigPath {
		return cfg.Database, false
	}
	if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
		return connStr, true
	}
	return constants.DefaultConfigPath, false
}

func openStore(database string, trusted bool) (storage.Provider, error) {
	if config.IsPostgres(database) {
		if !trusted {
			if err := postgres.ValidateConnString(database); err != nil {
				return nil, err
			}
		}
		return postgres.New(database), nil
	}
	path, err := config.ExpandHome(database)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// explain attaches the command that fixes the common setup failures
func explain(err error) error {
	switch {
	case stderrors.Is(err, storage.ErrNotInitialized):
		return errors.WithHint(err, "run '"+constants.BinaryName+" init' to create the database")
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		return errors.WithHint(err, "move the password to ~/.pgpass or store the connection string with '"+constants.BinaryName+" keyring set'")
	}
	return err
}

func main() {
	ctx := kong.Parse(&CLI, parserOptions()...)

	configPath, err := config.DefaultPath()
	errors.Fatal(err)
	cfg, err := config.Load(configPath)
	errors.Fatal(err)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || cfg.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		errors.Fatal(err)
	}
	defer logger.Close()

	store, err := openStore(resolveDatabase(CLI.Config, cfg))
	errors.Fatal(explain(err))
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	appCtx := cli.NewContext(store, cfg)
	appCtx.ConfigPath = configPath

	// Load the store before running the command (init handles its own setup)
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(explain(err))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(explain(err))
	}
}
