package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/picker"
	"github.com/tessro/pspr/internal/supervisor"
)

// errorDisplayTime is how long an error stays in the help bar.
const errorDisplayTime = 5 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.header.SetWidth(msg.Width)
		m.helpBar.SetWidth(msg.Width)
		m.log.SetSize(msg.Width, m.bodyHeight())
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.bodySize())
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		m.header.SetNow(time.Time(msg))
		return m, m.tickCmd()

	case statusMsg:
		m.header.SetStatus(msg.Visible)
		return m, nil

	case flagMsg:
		if msg.Name == supervisor.RunningFlag {
			m.setRunning(msg.Value)
		}
		return m, nil

	case notifyMsg:
		m.log.Append(Notification(msg))
		if msg.Level == LevelError {
			m.helpBar.SetError(msg.Text)
			return m, clearErrorAfter(errorDisplayTime)
		}
		return m, nil

	case clearErrorMsg:
		m.helpBar.ClearError()
		return m, nil

	case stateMsg:
		m.setRunning(msg.Running)
		m.header.SetStatus(msg.Running)
		if msg.Running {
			m.header.SetProcess(msg.PID, msg.StartedAt)
		}
		return m, nil

	case runResultMsg:
		m.launching = false
		m.helpBar.SetLaunching(false)
		if msg.Err != nil {
			slog.Debug("tui: run failed", "error", msg.Err)
			return m, nil
		}
		m.header.SetProcess(msg.PID, msg.StartedAt)
		return m, nil

	case stopResultMsg:
		if msg.Err != nil {
			slog.Debug("tui: stop failed", "error", msg.Err)
		}
		return m, nil

	case pickRequestMsg:
		if m.picking {
			// One pick at a time.
			msg.Reply <- pickResult{Err: locator.ErrPickCancelled}
			return m, nil
		}
		m.picking = true
		m.pickReply = msg.Reply
		m.picker = picker.New(msg.Prompt, "")
		if m.ready {
			m.picker, _ = m.picker.Update(m.bodySize())
		}
		return m, m.picker.Init()
	}

	// Directory reads and other picker internals.
	if m.picking {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Run):
		if m.launching {
			return m, nil
		}
		m.launching = true
		m.helpBar.SetLaunching(true)
		return m, m.runCmd()

	// Disabled bindings never match.
	case key.Matches(msg, m.keys.Stop):
		return m, m.stopCmd()

	case key.Matches(msg, m.keys.Up):
		m.log.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.log.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.log.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.log.PageDown()
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if !m.picker.Done() {
		return m, cmd
	}

	res := pickResult{Path: m.picker.Selected()}
	if m.picker.Cancelled() {
		res = pickResult{Err: locator.ErrPickCancelled}
	}
	m.pickReply <- res
	m.pickReply = nil
	m.picking = false
	return m, nil
}

func (m *Model) setRunning(running bool) {
	m.running = running
	m.keys.Stop.SetEnabled(running)
	m.helpBar.SetKeys(m.keys)
}

// bodyHeight is the space between the header and the help bar.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.bodyHeight()}
}
