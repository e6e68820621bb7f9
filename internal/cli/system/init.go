package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/config"
	"github.com/julianstephens/timecapsule/internal/demo"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/storage"
	"github.com/julianstephens/timecapsule/internal/storage/postgres"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Demo   bool   `help:"Seed the sample capsules."`
	Source string `help:"Source database path or connection string to copy capsules from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized capsule storage at: %s\n", displayPath(ctx.Store.GetConfigPath()))

	if ctx.ConfigPath != "" {
		written, err := config.WriteDefault(ctx.ConfigPath)
		if err != nil {
			// the database is usable without a config file
			logger.Warn("Failed to write default config", "path", ctx.ConfigPath, "error", err)
		} else if written {
			ctx.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
		}
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", displayPath(c.Source))
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	if c.Demo {
		return c.seedDemo(ctx)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, errDB := filepath.Abs(dbPath)
		absSource, errSrc := filepath.Abs(c.Source)
		if errDB == nil && errSrc == nil && absDB == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyFrom copies the profile and every capsule, deleted ones included,
// from another store. Capsules already present are left alone.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	var src storage.Provider
	if config.IsPostgres(source) {
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		src = postgres.New(source)
	} else {
		path, err := config.ExpandHome(source)
		if err != nil {
			return err
		}
		src = sqlite.NewStore(path)
	}

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying profile...")
	profile, err := src.GetProfile()
	switch {
	case err == nil:
		if err := ctx.Store.SaveProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile to destination: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		ctx.Println("    No profile to copy")
	default:
		return fmt.Errorf("failed to get profile from source: %w", err)
	}

	ctx.Println("  Copying capsules...")
	recs, err := src.GetAllCapsules(true)
	if err != nil {
		return fmt.Errorf("failed to get capsules from source: %w", err)
	}
	copied := 0
	for _, rec := range recs {
		err := ctx.Store.AddCapsule(rec)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to add capsule %s: %w", rec.ID, err)
		}
		copied++
	}
	ctx.Printf("    Copied %d capsules\n", copied)
	return nil
}

func (c *InitCmd) seedDemo(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllCapsules(true)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		ctx.Println("Skipping demo capsules: the database already has capsules.")
		return nil
	}

	recs := demo.Capsules(ctx.Clock())
	for _, rec := range recs {
		if err := ctx.Store.AddCapsule(rec); err != nil {
			return fmt.Errorf("failed to seed demo capsule: %w", err)
		}
	}
	ctx.Printf("Seeded %d demo capsules.\n", len(recs))
	return nil
}

// displayPath hides everything but the scheme and host of a PostgreSQL URL
func displayPath(p string) string {
	if !config.IsPostgres(p) {
		return p
	}
	return maskPassword(p)
}
