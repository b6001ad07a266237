package supervisor

import (
	"os/exec"
	"sync"
	"time"

	"github.com/tessro/pspr/internal/logging"
)

// Handle is a launched emulator process.
type Handle struct {
	cmd       *exec.Cmd
	pid       int
	startedAt time.Time
	done      chan struct{}

	mu sync.Mutex
	// +checklocks:mu
	exited bool
	// +checklocks:mu
	err error
	// +checklocks:mu
	observers []func(err error)
}

func newHandle(cmd *exec.Cmd) *Handle {
	return &Handle{
		cmd:       cmd,
		pid:       cmd.Process.Pid,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// PID returns the OS process ID.
func (h *Handle) PID() int {
	return h.pid
}

// StartedAt returns when the process was spawned.
func (h *Handle) StartedAt() time.Time {
	return h.startedAt
}

// Done is closed once the process has exited and every exit observer has run.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the wait error once the process has exited.
// A clean exit yields nil.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// OnExit registers fn to run when the process exits for any reason.
// If the process has already exited, fn runs immediately.
func (h *Handle) OnExit(fn func(err error)) {
	h.mu.Lock()
	if h.exited {
		err := h.err
		h.mu.Unlock()
		fn(err)
		return
	}
	h.observers = append(h.observers, fn)
	h.mu.Unlock()
}

// wait reaps the process and notifies observers.
func (h *Handle) wait() {
	defer close(h.done)
	defer logging.LogPanic("ppsspp-exit-waiter", nil)

	err := h.cmd.Wait()

	h.mu.Lock()
	h.exited = true
	h.err = err
	observers := h.observers
	h.observers = nil
	h.mu.Unlock()

	// Call observers OUTSIDE the lock; they may query the handle.
	for _, fn := range observers {
		fn(err)
	}
}
