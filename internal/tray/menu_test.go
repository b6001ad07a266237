package tray

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tessro/pspr/internal/supervisor"
)

type fakeRunner struct {
	mu      sync.Mutex
	runs    int
	stops   int
	status  supervisor.Status
	stopErr error
	// gate, when set, holds Run open until closed.
	gate chan struct{}
}

func (f *fakeRunner) Run(context.Context) (*supervisor.Handle, error) {
	f.mu.Lock()
	f.runs++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return nil, errors.New("no emulator in tests")
}

func (f *fakeRunner) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.stopErr
}

func (f *fakeRunner) Shutdown() {}

func (f *fakeRunner) Status() supervisor.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func TestDispatcherActions(t *testing.T) {
	r := &fakeRunner{stopErr: supervisor.ErrNotRunning}
	var opened []string
	quit := 0

	d := newDispatcher(context.Background(), Options{
		Runner:    r,
		State:     NewState(),
		Workspace: "/home/dev/game",
		Open: func(path string) error {
			opened = append(opened, path)
			return nil
		},
	}, func() { quit++ })

	d.handle(ActionRun)
	d.wait()
	d.handle(ActionStop)
	d.handle(ActionOpenWorkspace)
	d.handle(ActionQuit)

	if r.runs != 1 || r.stops != 1 {
		t.Errorf("runs=%d stops=%d, want 1 each", r.runs, r.stops)
	}
	if len(opened) != 1 || opened[0] != "/home/dev/game" {
		t.Errorf("opened = %v", opened)
	}
	if quit != 1 {
		t.Errorf("quit called %d times", quit)
	}
}

func TestDispatcherOpenWithoutWorkspace(t *testing.T) {
	state := NewState()
	d := newDispatcher(context.Background(), Options{
		Runner: &fakeRunner{},
		State:  state,
		Open: func(string) error {
			t.Error("Open should not be called")
			return nil
		},
	}, func() {})

	d.handle(ActionOpenWorkspace)
	if v := state.View(); v.Level != LevelWarn || v.Message == "" {
		t.Errorf("view = %+v, want a warning", v)
	}
}

func TestDispatcherOpenFailure(t *testing.T) {
	state := NewState()
	d := newDispatcher(context.Background(), Options{
		Runner:    &fakeRunner{},
		State:     state,
		Workspace: "/home/dev/game",
		Open:      func(string) error { return errors.New("xdg-open: not found") },
	}, func() {})

	d.handle(ActionOpenWorkspace)
	if v := state.View(); v.Level != LevelError || v.Message != "xdg-open: not found" {
		t.Errorf("view = %+v", v)
	}
}

func TestSyncStateAdoptsRunningEmulator(t *testing.T) {
	state := NewState()
	syncState(Options{
		Runner: &fakeRunner{status: supervisor.Status{Running: true, PID: 99, Adopted: true}},
		State:  state,
	})

	if v := state.View(); !v.StopEnabled || v.RunEnabled {
		t.Errorf("view = %+v, want stop enabled", v)
	}
}

func TestDispatcherRunSkipsWhileLaunching(t *testing.T) {
	gate := make(chan struct{})
	r := &fakeRunner{gate: gate}
	state := NewState()
	d := newDispatcher(context.Background(), Options{Runner: r, State: state}, func() {})

	d.handle(ActionRun)
	if v := state.View(); v.RunEnabled {
		t.Errorf("view = %+v, want run disabled while launching", v)
	}
	d.handle(ActionRun)
	d.handle(ActionRun)

	close(gate)
	d.wait()

	r.mu.Lock()
	runs := r.runs
	r.gate = nil
	r.mu.Unlock()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if v := state.View(); !v.RunEnabled {
		t.Errorf("view = %+v, want run enabled after launch", v)
	}

	d.handle(ActionRun)
	d.wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runs != 2 {
		t.Errorf("runs = %d, want 2 after launch finished", r.runs)
	}
}
