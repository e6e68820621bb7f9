package system

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show database path."`
	DumpCapsule *DebugDumpCapsuleCmd `cmd:"" help:"Dump a capsule as JSON, as visible right now."`
	DumpProfile *DebugDumpProfileCmd `cmd:"" help:"Dump the profile as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !ctx.IsSQLite() {
		path = maskPassword(path)
	}
	out := map[string]string{
		"path":     path,
		"data_dir": ctx.DataDir(),
	}
	if ctx.ConfigPath != "" {
		out["log_file"] = logger.LogFile(filepath.Dir(ctx.ConfigPath))
	}
	return printJSON(ctx, out)
}

type DebugDumpCapsuleCmd struct {
	ID string `arg:"" help:"ID (or unique prefix) of the capsule to dump."`
}

// lockedDump is a locked capsule without its contents
type lockedDump struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	State      string `json:"state"`
	UnlockAt   string `json:"unlock_at"`
	CreatedAt  string `json:"created_at"`
	HasMessage bool   `json:"has_message"`
	MediaCount int    `json:"media_count"`
	Remaining  string `json:"remaining"`
}

func (cmd *DebugDumpCapsuleCmd) Run(ctx *cli.Context) error {
	rec, err := storage.FindCapsule(ctx.Store, cmd.ID, true)
	if err != nil {
		return fmt.Errorf("failed to get capsule: %w", err)
	}

	now := ctx.Clock()
	switch c := models.Resolve(rec, now).(type) {
	case models.LockedCapsule:
		return printJSON(ctx, lockedDump{
			ID:         c.ID,
			Title:      c.Title,
			State:      "locked",
			UnlockAt:   c.UnlockAt.Format(time.RFC3339),
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
			HasMessage: c.HasMessage,
			MediaCount: c.MediaCount,
			Remaining:  c.Remaining(now).String(),
		})
	default:
		return printJSON(ctx, rec)
	}
}

type DebugDumpProfileCmd struct{}

func (cmd *DebugDumpProfileCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return printJSON(ctx, p)
}
