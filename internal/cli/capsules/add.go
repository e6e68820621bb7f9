package capsules

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/countdown"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

type AddCmd struct {
	Title   string   `arg:"" help:"Capsule title."`
	Message string   `short:"m" required:"" help:"The memory to seal."`
	Unlock  string   `short:"u" required:"" help:"Unlock date: RFC3339, YYYY-MM-DD or a preset (1w, 1m, 6m, 1y, 5y)."`
	Media   []string `short:"a" help:"Photo or video to attach (repeatable, max 5)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()

	unlockAt, err := parseUnlock(c.Unlock, now, ctx.Location())
	if err != nil {
		return err
	}

	w := wizard.New()
	if err := w.SetTitle(c.Title); err != nil {
		return err
	}
	w.Message = c.Message
	for _, ref := range c.Media {
		if err := w.AddMedia(ref); err != nil {
			return fmt.Errorf("cannot attach %s: %w", ref, err)
		}
	}
	if err := w.SetUnlockDate(unlockAt, now); err != nil {
		return err
	}

	rec, err := w.Build(now)
	if err != nil {
		if errors.Is(err, wizard.ErrStepIncomplete) {
			return errors.New("title and message cannot be empty")
		}
		return err
	}
	if err := ctx.Store.AddCapsule(rec); err != nil {
		return fmt.Errorf("failed to save capsule: %w", err)
	}

	ctx.Printf("Capsule sealed! ✨ Your memory will unlock on %s\n",
		rec.UnlockAt.In(ctx.Location()).Format(constants.LongDateFormat))
	ctx.Printf("ID: %s\n", rec.ID)
	return nil
}

// parseUnlock accepts a quick date preset or an absolute date
func parseUnlock(s string, now time.Time, loc *time.Location) (time.Time, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, q := range constants.QuickDates {
		if q.Key == key {
			return wizard.QuickDate(key, now)
		}
	}
	return countdown.ParseTarget(s, loc)
}
