// Package instance keeps a lockfile so that only one interactive capsule
// session writes to a database at a time. Stale lockfiles, whose process is
// gone or is not capsule, are taken over.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var (
	ErrAlreadyRunning = errors.New("another capsule session is running")
	ErrMalformed      = errors.New("lockfile is malformed")
)

// Holder is the content of a lockfile: "pid|unix-start|mode"
type Holder struct {
	PID     int
	Started time.Time
	Mode    string
}

func (h Holder) String() string {
	return fmt.Sprintf("%d|%d|%s", h.PID, h.Started.Unix(), h.Mode)
}

func parseHolder(content string) (Holder, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return Holder{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	started, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Holder{}, fmt.Errorf("%w: invalid start time", ErrMalformed)
	}
	if strings.TrimSpace(parts[2]) == "" {
		return Holder{}, fmt.Errorf("%w: empty mode", ErrMalformed)
	}
	return Holder{PID: pid, Started: time.Unix(started, 0), Mode: parts[2]}, nil
}

// alive reports whether pid is a running capsule process
func alive(pid int) bool {
	p, err := findProcessFunc(pid)
	if err != nil || p == nil {
		return false
	}
	return strings.HasPrefix(p.Executable(), constants.BinaryName)
}

// LockPath is the lockfile location inside dir
func LockPath(dir string) string {
	return filepath.Join(dir, constants.InstanceLockfileName)
}

// Lock is a held lockfile
type Lock struct {
	path   string
	holder Holder
}

// Acquire writes the lockfile in dir for this process. It fails with
// ErrAlreadyRunning when a live capsule process already holds it.
func Acquire(dir, mode string) (*Lock, error) {
	path := LockPath(dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	self := getpidFunc()
	if current, running, err := Status(dir); err == nil && running && current.PID != self {
		return nil, fmt.Errorf("%w (pid %d, %s since %s)", ErrAlreadyRunning, current.PID, current.Mode,
			current.Started.Format(time.Kitchen))
	}

	h := Holder{PID: self, Started: time.Now(), Mode: mode}
	if err := os.WriteFile(path, []byte(h.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	logger.Debug("acquired instance lock", "path", path, "mode", mode)
	return &Lock{path: path, holder: h}, nil
}

// Release removes the lockfile if it still belongs to this lock
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if h, err := parseHolder(string(content)); err != nil || h.PID != l.holder.PID {
		return nil
	}
	return os.Remove(l.path)
}

// Status reads the lockfile in dir. running is false when there is no
// lockfile or its holder is gone.
func Status(dir string) (Holder, bool, error) {
	content, err := os.ReadFile(LockPath(dir))
	if errors.Is(err, os.ErrNotExist) {
		return Holder{}, false, nil
	}
	if err != nil {
		return Holder{}, false, err
	}
	h, err := parseHolder(string(content))
	if err != nil {
		return Holder{}, false, err
	}
	return h, alive(h.PID), nil
}
