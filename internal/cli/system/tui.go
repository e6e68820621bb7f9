package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/instance"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/tui"
)

type TuiCmd struct {
	Route string `help:"Start at this path, e.g. /create or /capsule/<id>."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lock, err := instance.Acquire(ctx.DataDir(), "tui")
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release instance lock", "error", err)
		}
	}()

	// Perform automatic backup on TUI startup
	ctx.PerformAutomaticBackup()

	route := c.Route
	if route == "" && ctx.Config != nil {
		route = ctx.Config.DefaultRoute
	}
	opts := tui.Options{
		Route:    route,
		Now:      ctx.Now,
		Location: ctx.Location(),
	}
	if ctx.Config != nil {
		opts.SealDelay = ctx.Config.SealDelay
	}

	model, err := tui.NewModel(ctx.Store, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
