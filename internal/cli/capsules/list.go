package capsules

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/countdown"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

type ListCmd struct {
	ShowIDs  bool `help:"Show full capsule IDs."`
	Locked   bool `help:"Only show locked capsules." xor:"state"`
	Unlocked bool `help:"Only show unlocked capsules." xor:"state"`
	Deleted  bool `help:"Include deleted capsules."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	recs, err := ctx.Store.GetAllCapsules(c.Deleted)
	if err != nil {
		return err
	}

	now := ctx.Clock()
	var shown []models.Record
	for _, r := range recs {
		unlocked := countdown.IsUnlocked(r.UnlockAt, now)
		if (c.Locked && unlocked) || (c.Unlocked && !unlocked) {
			continue
		}
		shown = append(shown, r)
	}

	if len(shown) == 0 {
		if len(recs) == 0 {
			ctx.Println("No capsules yet. Create your first one with 'capsule capsule add'.")
		} else {
			ctx.Println("No capsules match.")
		}
		return nil
	}

	stats := models.ComputeStats(shown, now)
	ctx.Printf("%d capsules: %d locked, %d unlocked, %d with media\n\n",
		stats.Total, stats.Locked, stats.Unlocked, stats.WithMedia)

	loc := ctx.Location()
	for i, capsule := range models.ResolveAll(shown, now) {
		r := shown[i]
		id := storage.ShortID(r.ID)
		if c.ShowIDs {
			id = r.ID
		}

		state := "🔓 Unlocked"
		if locked, ok := capsule.(models.LockedCapsule); ok {
			state = "🔒 " + locked.Remaining(now).Compact()
		}
		deleted := ""
		if r.DeletedAt != nil {
			deleted = " (deleted)"
		}

		ctx.Printf("%s  %s%s\n", id, r.Title, deleted)
		ctx.Printf("    %s · %s · %s\n", r.UnlockAt.In(loc).Format(constants.DisplayDateFormat), state,
			strings.Join(r.Chips(), ", "))
	}
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Capsule ID or unique prefix."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	rec, err := storage.FindCapsule(ctx.Store, c.ID, false)
	if err != nil {
		return err
	}

	loc := ctx.Location()
	switch capsule := models.Resolve(rec, ctx.Clock()).(type) {
	case models.LockedCapsule:
		ctx.Printf("🔒 %s\n", capsule.Title)
		ctx.Println("This capsule is sealed.")
		ctx.Printf("Unlocks in %s\n", capsule.Remaining(ctx.Clock()))
		ctx.Printf("Unlock date: %s\n", capsule.UnlockAt.In(loc).Format(constants.LongDateFormat))
		if capsule.HasMessage || capsule.MediaCount > 0 {
			ctx.Printf("Contains: %s\n", contents(capsule))
		}
	case models.UnlockedCapsule:
		ctx.Printf("✨ Memory Unlocked: %s\n", capsule.Title)
		ctx.Printf("Created on %s\n\n", capsule.CreatedAt.In(loc).Format(constants.LongDateFormat))
		ctx.Println(capsule.Message)
		if len(capsule.Media) > 0 {
			ctx.Println()
			for _, m := range capsule.Media {
				ctx.Printf("  [%s] %s\n", m.Kind, m.Ref)
			}
		}
	}
	return nil
}

func contents(c models.LockedCapsule) string {
	var parts []string
	if c.HasMessage {
		parts = append(parts, "a message")
	}
	if c.Images > 0 {
		parts = append(parts, fmt.Sprintf("%d photo(s)", c.Images))
	}
	if c.Videos > 0 {
		parts = append(parts, fmt.Sprintf("%d video(s)", c.Videos))
	}
	return strings.Join(parts, ", ")
}
