package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/config"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
)

var now = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)

// setupTestContext returns a context over an uninitialized SQLite store in
// a temp dir
func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "capsule.db"))
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	ctx := cli.NewContext(store, &config.Config{})
	ctx.ConfigPath = filepath.Join(dir, config.FileName)
	ctx.Now = func() time.Time { return now }
	ctx.Out = &out
	return ctx, store, &out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(store.GetConfigPath()); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", store.GetConfigPath())
	}
	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		t.Errorf("config file was not written: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized capsule storage") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	out.Reset()
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
	if strings.Contains(out.String(), "Wrote default config") {
		t.Error("second init should not rewrite the config file")
	}
}

func TestInitCmd_Demo(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	if err := (&InitCmd{Demo: true}).Run(ctx); err != nil {
		t.Fatalf("init --demo failed: %v", err)
	}
	recs, err := store.GetAllCapsules(false)
	if err != nil {
		t.Fatalf("failed to list capsules: %v", err)
	}
	if len(recs) != 4 {
		t.Errorf("expected 4 demo capsules, got %d", len(recs))
	}

	out.Reset()
	if err := (&InitCmd{Demo: true}).Run(ctx); err != nil {
		t.Fatalf("second init --demo failed: %v", err)
	}
	if !strings.Contains(out.String(), "Skipping demo capsules") {
		t.Errorf("expected demo seeding to be skipped, got %q", out.String())
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, store, _ := setupTestContext(t)

	if err := (&InitCmd{Demo: true}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	recs, err := store.GetAllCapsules(true)
	if err != nil {
		t.Fatalf("failed to list capsules: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected an empty database after --force, got %d capsules", len(recs))
	}
}

func TestInitCmd_Source(t *testing.T) {
	srcCtx, srcStore, _ := setupTestContext(t)
	if err := (&InitCmd{Demo: true}).Run(srcCtx); err != nil {
		t.Fatalf("failed to seed source: %v", err)
	}
	recs, _ := srcStore.GetAllCapsules(false)
	if err := srcStore.DeleteCapsule(recs[0].ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	srcPath := srcStore.GetConfigPath()
	srcStore.Close()

	ctx, store, _ := setupTestContext(t)
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}

	all, err := store.GetAllCapsules(true)
	if err != nil {
		t.Fatalf("failed to list capsules: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 capsules including the deleted one, got %d", len(all))
	}
	active, _ := store.GetAllCapsules(false)
	if len(active) != 3 {
		t.Errorf("expected the deleted capsule to stay deleted, got %d active", len(active))
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, store, _ := setupTestContext(t)
	err := (&InitCmd{Force: true, Source: store.GetConfigPath()}).Run(ctx)
	if err == nil {
		t.Fatal("expected an error when source and destination are the same")
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMigrateCmd_NotInitialized(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Fatal("expected migrate to fail before init")
	}
}
