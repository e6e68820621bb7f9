package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/storage"
)

// migrator is implemented by both stores
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("migrate is not supported by this storage backend")
	}

	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		if errors.Is(err, storage.ErrNotInitialized) {
			return err
		}
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	ctx.Printf("Current schema version: %d\n", status.Current)

	if status.Pending() == 0 {
		ctx.Println("✓ Database is up to date")
		return nil
	}

	ctx.Printf("Applying %d migration(s)...\n", status.Pending())
	applied, err := m.Migrate(func(msg string) {
		ctx.Printf("  %s\n", msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("✓ Applied %d migration(s), schema version is now %d\n", applied, status.Latest)
	return nil
}
