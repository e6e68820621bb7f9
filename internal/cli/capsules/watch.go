package capsules

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/countdown"
	"github.com/julianstephens/timecapsule/internal/storage"
)

type WatchCmd struct {
	ID       string        `arg:"" help:"Capsule ID or unique prefix."`
	Interval time.Duration `hidden:"" default:"1s" help:"Refresh interval."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	rec, err := storage.FindCapsule(ctx.Store, c.ID, false)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.watch(sigCtx, ctx, rec.Title, rec.UnlockAt)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *cli.Context, title string, target time.Time) error {
	interval := c.Interval
	if interval <= 0 {
		interval = constants.TickInterval
	}

	ctx.Printf("⏳ %s\n", title)
	t := countdown.NewTicker(target, ctx.Clock, interval, func(r countdown.Remaining) {
		ctx.Println(r.String())
	})
	if err := t.Start(runCtx); err != nil {
		return err
	}
	defer t.Stop()

	select {
	case <-t.Done():
		if countdown.IsUnlocked(target, ctx.Clock()) {
			ctx.Printf("Unlocked on %s\n", target.In(ctx.Location()).Format(constants.LongDateFormat))
		}
	case <-runCtx.Done():
	}
	return nil
}
