// Package tray hosts pspr in the system tray.
//
// State is the platform-neutral part: it implements supervisor.Surface and
// turns notifications into a View that the tray renders.
package tray

import (
	"context"
	"sync"

	"github.com/tessro/pspr/internal/supervisor"
)

// Runner is the command surface the tray drives.
type Runner interface {
	Run(ctx context.Context) (*supervisor.Handle, error)
	Stop() error
	Shutdown()
	Status() supervisor.Status
}

// Level is a notification severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

const (
	idleTitle   = "pspr"
	idleTooltip = "PPSSPP idle"
)

// View is what the tray shows.
type View struct {
	Title   string
	Tooltip string

	// RunEnabled and StopEnabled gate the menu items.
	RunEnabled  bool
	StopEnabled bool

	// Message is the latest notification, if any.
	Message string
	Level   Level
}

// State tracks the surface calls made by the supervisor.
type State struct {
	mu sync.Mutex
	// +checklocks:mu
	visible bool
	// +checklocks:mu
	running bool
	// +checklocks:mu
	launching bool
	// +checklocks:mu
	message string
	// +checklocks:mu
	level Level
	// +checklocks:mu
	onChange func(View)
}

var _ supervisor.Surface = (*State)(nil)

// NewState creates an idle State.
func NewState() *State {
	return &State{}
}

// OnChange registers fn to receive every new View.
// fn is called without the State lock held and must not block.
func (s *State) OnChange(fn func(View)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// View returns the current view.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// +checklocks:s.mu
func (s *State) viewLocked() View {
	v := View{
		Title:       idleTitle,
		Tooltip:     idleTooltip,
		RunEnabled:  !s.running && !s.launching,
		StopEnabled: s.running,
		Message:     s.message,
		Level:       s.level,
	}
	if s.visible {
		v.Title = "▶ " + idleTitle
		v.Tooltip = supervisor.StatusText
	}
	if s.message != "" {
		v.Tooltip += "\n" + s.message
	}
	return v
}

func (s *State) update(fn func()) {
	s.mu.Lock()
	fn()
	v := s.viewLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(v)
	}
}

func (s *State) ShowStatus() { s.update(func() { s.visible = true }) }
func (s *State) HideStatus() { s.update(func() { s.visible = false }) }

func (s *State) Info(text string)  { s.notify(LevelInfo, text) }
func (s *State) Warn(text string)  { s.notify(LevelWarn, text) }
func (s *State) Error(text string) { s.notify(LevelError, text) }

func (s *State) notify(level Level, text string) {
	s.update(func() {
		s.message = text
		s.level = level
	})
}

// SetLaunching disables Run while a launch is resolving paths.
func (s *State) SetLaunching(launching bool) {
	s.update(func() { s.launching = launching })
}

func (s *State) SetFlag(name string, value bool) {
	if name != supervisor.RunningFlag {
		return
	}
	s.update(func() { s.running = value })
}
