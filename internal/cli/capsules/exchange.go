package capsules

import (
	"fmt"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/exchange"
)

type ExportCmd struct {
	File string `arg:"" type:"path" help:"TOML file to write."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	n, err := exchange.Export(ctx.Store, c.File, ctx.Clock())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d capsule(s) to %s\n", n, c.File)
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"TOML file to read."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	res, err := exchange.Import(ctx.Store, c.File, ctx.Clock())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %d capsule(s)", res.Added)
	if res.Skipped > 0 {
		ctx.Printf(", skipped %d already present", res.Skipped)
	}
	ctx.Println()
	return nil
}
