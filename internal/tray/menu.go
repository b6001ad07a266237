package tray

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/skratchdot/open-golang/open"

	"github.com/tessro/pspr/internal/logging"
	"github.com/tessro/pspr/internal/supervisor"
)

// ErrUnsupported is returned by Run on platforms without a tray.
var ErrUnsupported = errors.New("system tray is not supported on this platform")

// Action is a tray menu command.
type Action int

const (
	ActionRun Action = iota
	ActionStop
	ActionOpenWorkspace
	ActionQuit
)

// Options configures the tray.
type Options struct {
	Runner    Runner
	State     *State
	Workspace string

	// Open opens a path with the desktop's default handler.
	// Defaults to open.Start.
	Open func(path string) error
}

// dispatcher executes menu actions. Runs happen on their own goroutine so
// the menu stays responsive while paths resolve.
type dispatcher struct {
	ctx  context.Context
	opts Options
	quit func()
	wg   sync.WaitGroup

	mu sync.Mutex
	// +checklocks:mu
	launching bool
}

func newDispatcher(ctx context.Context, opts Options, quit func()) *dispatcher {
	if opts.Open == nil {
		opts.Open = open.Start
	}
	return &dispatcher{ctx: ctx, opts: opts, quit: quit}
}

func (d *dispatcher) handle(a Action) {
	log := slog.With("component", "tray")

	switch a {
	case ActionRun:
		if !d.beginLaunch() {
			log.Debug("run ignored, launch in flight")
			return
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer d.endLaunch()
			defer logging.LogPanic("tray-run", nil)
			if _, err := d.opts.Runner.Run(d.ctx); err != nil {
				log.Debug("run failed", "error", err)
			}
		}()
	case ActionStop:
		if err := d.opts.Runner.Stop(); err != nil && !errors.Is(err, supervisor.ErrNotRunning) {
			log.Warn("stop failed", "error", err)
		}
	case ActionOpenWorkspace:
		if d.opts.Workspace == "" {
			d.opts.State.Warn("No workspace folder is open.")
			return
		}
		if err := d.opts.Open(d.opts.Workspace); err != nil {
			log.Warn("open workspace failed", "path", d.opts.Workspace, "error", err)
			d.opts.State.Error(err.Error())
		}
	case ActionQuit:
		d.quit()
	}
}

// beginLaunch claims the single in-flight run slot.
func (d *dispatcher) beginLaunch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.launching {
		return false
	}
	d.launching = true
	d.opts.State.SetLaunching(true)
	return true
}

func (d *dispatcher) endLaunch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.launching = false
	d.opts.State.SetLaunching(false)
}

// syncState reflects an emulator that was already running when the tray
// started, such as one launched from the CLI.
func syncState(opts Options) {
	if opts.Runner.Status().Running {
		opts.State.SetFlag(supervisor.RunningFlag, true)
	}
}

// wait blocks until in-flight runs return.
func (d *dispatcher) wait() {
	d.wg.Wait()
}
