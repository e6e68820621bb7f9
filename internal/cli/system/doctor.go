package system

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timecapsule/internal/backup"
	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/instance"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

type DoctorCmd struct{}

// check is one diagnostic. warn checks never fail the run; needsDB checks
// are skipped when the database cannot be reached.
type check struct {
	name    string
	warn    bool
	needsDB bool
	run     func(*cli.Context) error
}

func checks() []check {
	return []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Capsule data", needsDB: true, run: checkCapsules},
		{name: "Backups present", warn: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Instance lock", warn: true, run: checkInstanceLock},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks() {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(interface{ GetDB() *sql.DB }); ok {
		db := s.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	switch {
	case status.Current > status.Latest:
		return fmt.Errorf("database version %d is newer than supported version %d; upgrade %s",
			status.Current, status.Latest, constants.BinaryName)
	case status.Pending() > 0:
		return fmt.Errorf("%d pending migration(s); run '%s migrate'", status.Pending(), constants.BinaryName)
	}
	return nil
}

// checkCapsules looks for rows that the app would refuse to create
func checkCapsules(ctx *cli.Context) error {
	recs, err := ctx.Store.GetAllCapsules(true)
	if err != nil {
		return err
	}

	var problems []string
	for _, r := range recs {
		id := storage.ShortID(r.ID)
		if strings.TrimSpace(r.Title) == "" {
			problems = append(problems, fmt.Sprintf("%s has no title", id))
		}
		if r.UnlockAt.IsZero() {
			problems = append(problems, fmt.Sprintf("%s has no unlock date", id))
		}
		if len(r.Media) > constants.MaxMediaPerCapsule {
			problems = append(problems, fmt.Sprintf("%s has %d media items", id, len(r.Media)))
		}
		for _, m := range r.Media {
			if kind, err := models.InferMediaKind(m.Ref); err != nil || kind != m.Kind {
				problems = append(problems, fmt.Sprintf("%s has media %q stored as %s", id, m.Ref, m.Kind))
			}
		}
		if r.DeletedAt != nil {
			if _, err := time.Parse(time.RFC3339, *r.DeletedAt); err != nil {
				problems = append(problems, fmt.Sprintf("%s has invalid deleted_at %q", id, *r.DeletedAt))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s):\n   - %s", len(problems), strings.Join(problems, "\n   - "))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("backups are not managed for PostgreSQL; use pg_dump")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.BinaryName)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && ctx.Config.Timezone != "" {
		if _, err := ctx.Config.Location(); err != nil {
			return err
		}
	}
	return nil
}

func checkInstanceLock(ctx *cli.Context) error {
	holder, running, err := instance.Status(ctx.DataDir())
	if err != nil {
		return fmt.Errorf("could not read lockfile: %w", err)
	}
	if running {
		return fmt.Errorf("a TUI session is running (pid %d since %s)", holder.PID,
			holder.Started.Format(time.Kitchen))
	}
	return nil
}
