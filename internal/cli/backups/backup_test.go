package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/config"
	"github.com/julianstephens/timecapsule/internal/storage/postgres"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
	"github.com/julianstephens/timecapsule/internal/storage/storagetest"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "capsule.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(store, &config.Config{})
	ctx.Out = &out
	return ctx, store, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: capsule-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected listing: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	keep := storagetest.Record("Kept", 10)
	if err := store.AddCapsule(keep); err != nil {
		t.Fatalf("failed to add capsule: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created:"))

	if err := store.AddCapsule(storagetest.Record("Added later", 20)); err != nil {
		t.Fatalf("failed to add capsule: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: name, in: strings.NewReader("n\n")}
	out.Reset()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Fatalf("expected cancellation, got %q", out.String())
	}

	cmd = &BackupRestoreCmd{BackupFile: name, in: strings.NewReader("yes\n")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	recs, err := store.GetAllCapsules(false)
	if err != nil {
		t.Fatalf("failed to list capsules: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != keep.ID {
		t.Errorf("expected only the backed up capsule, got %d capsules", len(recs))
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	cmd := &BackupRestoreCmd{BackupFile: "capsule-nope.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected an error for a missing backup")
	}
}

func TestBackupsRejectPostgres(t *testing.T) {
	ctx := cli.NewContext(postgres.New("postgres://capsule@localhost/capsules"), &config.Config{})
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Fatal("expected backups to be refused for PostgreSQL")
	}
}
