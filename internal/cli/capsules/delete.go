package capsules

import (
	"errors"
	"fmt"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/storage"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Capsule ID or unique prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	rec, err := storage.FindCapsule(ctx.Store, c.ID, false)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteCapsule(rec.ID); err != nil {
		return fmt.Errorf("failed to delete capsule: %w", err)
	}
	ctx.Printf("Deleted capsule: %s\n", rec.Title)
	ctx.Printf("Restore it with: capsule capsule restore %s\n", storage.ShortID(rec.ID))
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Capsule ID or unique prefix."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	rec, err := storage.FindCapsule(ctx.Store, c.ID, true)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreCapsule(rec.ID); err != nil {
		if errors.Is(err, storage.ErrNotDeleted) {
			return fmt.Errorf("capsule %q is not deleted", rec.Title)
		}
		return fmt.Errorf("failed to restore capsule: %w", err)
	}
	ctx.Printf("Restored capsule: %s\n", rec.Title)
	return nil
}
