// Package supervisor owns the PPSSPP child process.
//
// A Supervisor is either Idle (no handle) or Running (one handle). Start
// while Running and Stop while Idle are rejected. Every transition is
// mirrored to a Surface: the status indicator, the running flag, and a
// notification.
package supervisor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

// RunningFlag is the context flag that tracks whether PPSSPP is running.
// Hosts use it to enable or disable the stop command.
const RunningFlag = "pspr.running"

// StatusText is the label of the status indicator while PPSSPP runs.
const StatusText = "▶ PPSSPP running (stop to close)"

// Notification texts.
const (
	MsgLaunching      = "Launching PPSSPP…"
	MsgClosed         = "PPSSPP closed."
	MsgStopped        = "PPSSPP stopped."
	MsgAlreadyRunning = "PPSSPP is already running."
	MsgNotRunning     = "PPSSPP is not running."
)

// Errors returned by supervisor operations.
var (
	ErrAlreadyRunning = errors.New("PPSSPP is already running")
	ErrNotRunning     = errors.New("PPSSPP is not running")
	ErrSpawnFailure   = errors.New("failed to launch PPSSPP")
)

// SpawnError is returned when the OS refuses to start the emulator.
// It matches ErrSpawnFailure and unwraps to the OS error.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSpawnFailure.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawnFailure
}

// Surface is the UI the supervisor reports to.
// Implementations must not call back into the Supervisor synchronously.
type Surface interface {
	ShowStatus()
	HideStatus()
	Info(text string)
	Warn(text string)
	Error(text string)
	SetFlag(name string, value bool)
}

// Tracker records the live emulator outside this process.
// instance.File implements it. The Supervisor holds Lock around every
// other call, so check-then-record is atomic across processes.
type Tracker interface {
	Lock() (unlock func(), err error)
	Record(pid int) error
	Clear(pid int) error
	Live() (int, bool)
}

// Options configures a Supervisor.
type Options struct {
	// Surface receives lifecycle notifications. Required.
	Surface Surface

	// Tracker, if set, makes the single-instance rule hold across
	// processes and lets Stop terminate an emulator launched elsewhere.
	Tracker Tracker

	// Command builds the unstarted command for a launch.
	// Defaults to a detached process with discarded stdio.
	Command func(executable, image string) *exec.Cmd
}

// Supervisor launches and stops PPSSPP. The zero value is not usable; use New.
type Supervisor struct {
	mu sync.Mutex

	surface Surface
	tracker Tracker
	command func(executable, image string) *exec.Cmd

	// +checklocks:mu
	handle *Handle
}

// New creates an idle Supervisor.
func New(opts Options) *Supervisor {
	s := &Supervisor{
		surface: opts.Surface,
		tracker: opts.Tracker,
		command: opts.Command,
	}
	if s.command == nil {
		s.command = DetachedCommand
	}
	return s
}

// DetachedCommand builds a command that runs executable with image as its
// only argument, in its own session, with stdin/stdout/stderr discarded.
func DetachedCommand(executable, image string) *exec.Cmd {
	cmd := exec.Command(executable, image)
	// nil streams are connected to the null device.
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachAttr()
	return cmd
}

// Status describes the supervisor state.
type Status struct {
	Running bool
	PID     int
	// Adopted is true when the emulator was launched by another pspr process.
	Adopted   bool
	StartedAt time.Time
}

// Status returns the current state.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		return Status{Running: true, PID: s.handle.pid, StartedAt: s.handle.startedAt}
	}
	if s.tracker != nil {
		defer s.lockTracker()()
		if pid, ok := s.tracker.Live(); ok {
			return Status{Running: true, PID: pid, Adopted: true}
		}
	}
	return Status{}
}

// Running reports whether an emulator is live.
func (s *Supervisor) Running() bool {
	return s.Status().Running
}

// Current returns the handle of the emulator launched by this Supervisor,
// or nil if none.
func (s *Supervisor) Current() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Start launches executable with image as its sole argument.
func (s *Supervisor) Start(executable, image string) (*Handle, error) {
	log := slog.With("component", "supervisor")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		log.Debug("start rejected", "pid", s.handle.pid)
		s.surface.Warn(MsgAlreadyRunning)
		return nil, ErrAlreadyRunning
	}
	if s.tracker != nil {
		defer s.lockTracker()()
		if pid, ok := s.tracker.Live(); ok {
			log.Debug("start rejected, launched elsewhere", "pid", pid)
			s.surface.Warn(MsgAlreadyRunning)
			return nil, ErrAlreadyRunning
		}
	}

	s.surface.Info(MsgLaunching)
	s.surface.ShowStatus()
	s.surface.SetFlag(RunningFlag, true)

	cmd := s.command(executable, image)
	if err := cmd.Start(); err != nil {
		log.Error("spawn failed", "executable", executable, "error", err)
		s.surface.HideStatus()
		s.surface.SetFlag(RunningFlag, false)
		s.surface.Error(err.Error())
		return nil, &SpawnError{Path: executable, Err: err}
	}

	h := newHandle(cmd)
	s.handle = h
	log.Info("emulator launched", "pid", h.pid, "executable", executable, "image", image)

	if s.tracker != nil {
		if err := s.tracker.Record(h.pid); err != nil {
			log.Warn("failed to record pid", "pid", h.pid, "error", err)
		}
	}

	h.OnExit(func(err error) { s.exited(h, err) })
	go h.wait()

	return h, nil
}

// exited runs on the wait goroutine when h's process terminates.
func (s *Supervisor) exited(h *Handle, err error) {
	log := slog.With("component", "supervisor", "pid", h.pid)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != h {
		// Already cleared by Stop or Shutdown.
		log.Debug("exit of released handle ignored", "error", err)
		return
	}

	log.Info("emulator exited", "error", err, "uptime", time.Since(h.startedAt).Truncate(time.Second))
	s.handle = nil
	s.clearTracker(h.pid, false)
	s.surface.HideStatus()
	s.surface.SetFlag(RunningFlag, false)
	s.surface.Info(MsgClosed)
}

// Stop asks the emulator to terminate and returns immediately.
// State is cleared without waiting for the process to die; a failed signal
// is logged but the emulator is still reported as stopped.
func (s *Supervisor) Stop() error {
	log := slog.With("component", "supervisor")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker != nil {
		defer s.lockTracker()()
	}

	var pid int
	switch {
	case s.handle != nil:
		h := s.handle
		s.handle = nil
		pid = h.pid
		if err := terminate(h.cmd.Process); err != nil {
			log.Warn("terminate failed", "pid", pid, "error", err)
		}
	case s.tracker != nil:
		live, ok := s.tracker.Live()
		if !ok {
			s.surface.Warn(MsgNotRunning)
			return ErrNotRunning
		}
		pid = live
		if err := terminatePID(pid); err != nil {
			log.Warn("terminate failed", "pid", pid, "adopted", true, "error", err)
		}
	default:
		s.surface.Warn(MsgNotRunning)
		return ErrNotRunning
	}

	log.Info("emulator stopped", "pid", pid)
	s.clearTracker(pid, true)
	s.surface.HideStatus()
	s.surface.SetFlag(RunningFlag, false)
	s.surface.Info(MsgStopped)
	return nil
}

// Shutdown terminates an emulator launched by this Supervisor without
// notifying, and resets the running flag. Hosts call it when they close.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h := s.handle; h != nil {
		s.handle = nil
		if err := terminate(h.cmd.Process); err != nil {
			slog.Warn("terminate on shutdown failed", "component", "supervisor", "pid", h.pid, "error", err)
		}
		s.clearTracker(h.pid, false)
		s.surface.HideStatus()
	}
	s.surface.SetFlag(RunningFlag, false)
}

// lockTracker takes the tracker's cross-process lock and returns its
// release. If locking fails the caller carries on unlocked.
// +checklocks:s.mu
func (s *Supervisor) lockTracker() func() {
	if s.tracker == nil {
		return func() {}
	}
	unlock, err := s.tracker.Lock()
	if err != nil {
		slog.Warn("failed to lock pid file", "component", "supervisor", "error", err)
		return func() {}
	}
	return unlock
}

// clearTracker forgets pid. In Stop the lock is already held; elsewhere
// it is taken here.
// +checklocks:s.mu
func (s *Supervisor) clearTracker(pid int, locked bool) {
	if s.tracker == nil {
		return
	}
	if !locked {
		defer s.lockTracker()()
	}
	if err := s.tracker.Clear(pid); err != nil {
		slog.Warn("failed to clear pid", "component", "supervisor", "pid", pid, "error", err)
	}
}

// terminatePID delivers the termination request to a process by ID.
func terminatePID(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return terminate(p)
}
