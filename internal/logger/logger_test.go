package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, configDir string) string {
	t.Helper()
	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestLogFile(t *testing.T) {
	got := LogFile("/home/me/.config/capsule")
	if got != filepath.Join("/home/me/.config/capsule", "logs", "capsule.log") {
		t.Errorf("unexpected log file %s", got)
	}
}

func TestInitWritesWarningsOnly(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	var stderr bytes.Buffer
	if err := Init(Config{ConfigDir: configDir, Stderr: &stderr}); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("capsule sealed", "id", "2Bx7")
	Info("capsule opened", "id", "2Bx7")
	Warn("backup skipped", "reason", "postgres")
	Error("store unavailable")

	logged := readLog(t, configDir)
	if strings.Contains(logged, "capsule sealed") || strings.Contains(logged, "capsule opened") {
		t.Errorf("debug and info records should be filtered:\n%s", logged)
	}
	for _, want := range []string{"backup skipped", "reason=postgres", "store unavailable"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log file missing %q:\n%s", want, logged)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr should stay untouched outside debug mode, got %q", stderr.String())
	}
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	var stderr bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: configDir, Stderr: &stderr}); err != nil {
		t.Fatalf("failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("tick", "remaining", "1d 1h 1m")

	if !strings.Contains(stderr.String(), "remaining=\"1d 1h 1m\"") {
		t.Errorf("stderr missing debug record: %q", stderr.String())
	}
	if !strings.Contains(readLog(t, configDir), "tick") {
		t.Error("log file missing debug record")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("countdown tick")
	Info("capsule opened")
	Warn("backup skipped")
	Error("store unavailable")
}

func TestInitWithUnwritableDirectory(t *testing.T) {
	// a regular file where the config directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	if err := Init(Config{ConfigDir: blocker}); err == nil {
		t.Error("expected error when config dir is a file")
	}
}
