package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/supervisor"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Surface forwards supervisor notifications and pick requests into the
// TUI as messages. Calls made while no program is attached are dropped.
//
// Send blocks until the program's event loop accepts the message, so
// supervisor and runner calls must never be made from inside Update.
type Surface struct {
	mu sync.Mutex
	// +checklocks:mu
	target Sender
}

var (
	_ supervisor.Surface = (*Surface)(nil)
	_ locator.Picker     = (*Surface)(nil)
)

// NewSurface creates a detached Surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Attach routes subsequent calls to target. A nil target detaches.
func (s *Surface) Attach(target Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
}

func (s *Surface) send(msg tea.Msg) bool {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()

	if target == nil {
		return false
	}
	target.Send(msg)
	return true
}

func (s *Surface) ShowStatus() { s.send(statusMsg{Visible: true}) }
func (s *Surface) HideStatus() { s.send(statusMsg{Visible: false}) }

func (s *Surface) Info(text string)  { s.notify(LevelInfo, text) }
func (s *Surface) Warn(text string)  { s.notify(LevelWarn, text) }
func (s *Surface) Error(text string) { s.notify(LevelError, text) }

func (s *Surface) SetFlag(name string, value bool) {
	s.send(flagMsg{Name: name, Value: value})
}

func (s *Surface) notify(level Level, text string) {
	s.send(notifyMsg{Time: time.Now(), Level: level, Text: text})
}

// PickFile shows the file picker in the attached program and waits for
// the user's choice.
func (s *Surface) PickFile(ctx context.Context, prompt string) (string, error) {
	reply := make(chan pickResult, 1)
	if !s.send(pickRequestMsg{Prompt: prompt, Reply: reply}) {
		return "", locator.ErrPickCancelled
	}

	select {
	case r := <-reply:
		return r.Path, r.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
