// Package instance records the emulator process launched by pspr so that
// separate pspr invocations agree on whether PPSSPP is running.
//
// The PID file holds the PID and the process start time. A recorded PID
// whose process is gone, or whose start time differs (the PID was reused),
// is stale. A sibling lock file serializes check-then-record across
// processes.
package instance

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/tessro/pspr/internal/paths"
)

// Entry is the content of a PID file.
type Entry struct {
	PID int
	// Start identifies the process incarnation. Empty when the platform
	// cannot report start times.
	Start string
}

// File is a PID file holding the live emulator's process ID.
type File struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

// New returns a PID file at path. An empty path uses paths.PIDPath().
func New(path string) *File {
	if path == "" {
		path = paths.PIDPath()
	}
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the PID file location.
func (f *File) Path() string {
	return f.path
}

// Lock takes the cross-process lock, blocking until it is free. Hold it
// across Live and Record so two launches cannot both see no emulator.
// The lock is not reentrant: Lock twice on the same path from one
// process without unlocking deadlocks.
func (f *File) Lock() (unlock func(), err error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return nil, fmt.Errorf("create pid directory: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock pid file: %w", err)
	}
	return func() {
		if err := f.lock.Unlock(); err != nil {
			slog.Warn("failed to unlock pid file", "component", "instance", "path", f.path, "error", err)
		}
	}, nil
}

// Record writes pid and its start time to the PID file.
// It creates the parent directory if it doesn't exist.
func (f *File) Record(pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}

	start, _ := StartTime(pid)
	data := []byte(strconv.Itoa(pid) + "\n" + start + "\n")
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

// Read returns the recorded process ID.
// Returns 0 and an error if the file doesn't exist or is invalid.
func (f *File) Read() (int, error) {
	e, err := f.ReadEntry()
	return e.PID, err
}

// ReadEntry returns the recorded PID and start time.
func (f *File) ReadEntry() (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) read() (Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("read pid file: %w", err)
	}

	lines := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, fmt.Errorf("parse pid: %w", err)
	}
	e := Entry{PID: pid}
	if len(lines) == 2 {
		e.Start = strings.TrimSpace(lines[1])
	}
	return e, nil
}

// Clear removes the PID file if it still records pid.
// A pid of 0 removes the file unconditionally. A missing file is not an error.
func (f *File) Clear(pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if pid != 0 {
		recorded, err := f.read()
		if err == nil && recorded.PID != pid {
			// Another launch owns the file now.
			return nil
		}
	}
	return f.remove()
}

func (f *File) remove() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pid file: %w", err)
	}
	return nil
}

// Live returns the recorded PID if that same process is still running.
// A stale, reused or unreadable PID file is removed.
func (f *File) Live() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, err := f.read()
	if err != nil {
		if !os.IsNotExist(err) {
			_ = f.remove()
		}
		return 0, false
	}

	if !IsProcessRunning(e.PID) || !e.matches() {
		slog.Debug("stale pid file removed", "component", "instance", "pid", e.PID)
		_ = f.remove()
		return 0, false
	}
	return e.PID, true
}

// matches reports whether e.PID is still the process that was recorded.
// Without start time support only liveness can be checked.
func (e Entry) matches() bool {
	current, err := StartTime(e.PID)
	if errors.Is(err, ErrStartTimeUnsupported) {
		return true
	}
	if err != nil {
		return false
	}
	return current == e.Start
}
