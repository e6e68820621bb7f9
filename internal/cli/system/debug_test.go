package system

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timecapsule/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["path"] != store.GetConfigPath() {
		t.Errorf("expected path %s, got %s", store.GetConfigPath(), got["path"])
	}
	wantLog := filepath.Join(filepath.Dir(ctx.ConfigPath), "logs", "capsule.log")
	if got["log_file"] != wantLog {
		t.Errorf("expected log file %s, got %s", wantLog, got["log_file"])
	}
}

func TestDebugDumpCapsuleCmd_LockedHidesContents(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	rec := models.Record{
		ID:        "dump-locked",
		Title:     "Sealed",
		Message:   "top secret",
		UnlockAt:  now.Add(26 * time.Hour),
		CreatedAt: now,
	}
	if err := store.AddCapsule(rec); err != nil {
		t.Fatalf("failed to add capsule: %v", err)
	}

	if err := (&DebugDumpCapsuleCmd{ID: "dump"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-capsule command failed: %v", err)
	}

	output := out.String()
	if strings.Contains(output, "top secret") {
		t.Errorf("locked capsule message leaked: %s", output)
	}
	if !strings.Contains(output, `"state": "locked"`) || !strings.Contains(output, `"has_message": true`) {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestDebugDumpCapsuleCmd_Unlocked(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	rec := models.Record{
		ID:        "dump-open",
		Title:     "Opened",
		Message:   "hello again",
		UnlockAt:  now.Add(-time.Hour),
		CreatedAt: now.Add(-48 * time.Hour),
	}
	if err := store.AddCapsule(rec); err != nil {
		t.Fatalf("failed to add capsule: %v", err)
	}

	if err := (&DebugDumpCapsuleCmd{ID: "dump-open"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-capsule command failed: %v", err)
	}

	var got models.Record
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Message != "hello again" {
		t.Errorf("expected message, got %q", got.Message)
	}
}

func TestDebugDumpCapsuleCmd_NotFound(t *testing.T) {
	ctx, store, _ := setupTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	err := (&DebugDumpCapsuleCmd{ID: "missing"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDebugDumpProfileCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := (&DebugDumpProfileCmd{}).Run(ctx); err == nil {
		t.Error("expected an error without a profile")
	}

	p := models.Profile{ID: "prof_1", Name: "Ada", Email: "ada@example.com", CreatedAt: now}
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	if err := (&DebugDumpProfileCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-profile failed: %v", err)
	}
	if !strings.Contains(out.String(), "ada@example.com") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
