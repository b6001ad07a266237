// Package tui provides the Bubbletea-based terminal user interface for pspr.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/pspr/internal/logging"
	"github.com/tessro/pspr/internal/picker"
	"github.com/tessro/pspr/internal/supervisor"
)

// Runner is the command surface the TUI drives.
type Runner interface {
	Run(ctx context.Context) (*supervisor.Handle, error)
	Stop() error
	Shutdown()
	Status() supervisor.Status
}

// Model is the main Bubbletea model for the pspr TUI.
type Model struct {
	// Window dimensions
	width  int
	height int
	ready  bool

	ctx    context.Context
	runner Runner

	// Components
	header  Header
	log     NotificationLog
	helpBar HelpBar
	keys    KeyBindings

	// running mirrors supervisor.RunningFlag.
	running bool
	// launching is set while a run command is in flight.
	launching bool

	// File picker state, active while the locator waits for a pick.
	picking   bool
	picker    picker.Model
	pickReply chan<- pickResult
}

// New creates a new TUI model. ctx bounds run commands started from it.
func New(ctx context.Context, runner Runner, workspace string) Model {
	return Model{
		ctx:     ctx,
		runner:  runner,
		header:  NewHeader(workspace),
		log:     NewNotificationLog(),
		helpBar: NewHelpBar(),
		keys:    DefaultKeyBindings(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshState(), m.tickCmd())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.header.View()
	status := m.helpBar.View()

	body := m.log.View()
	if m.picking {
		body = m.picker.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", header, body, status)
}

// Options configures Run.
type Options struct {
	Runner    Runner
	Surface   *Surface
	Workspace string
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
// The emulator is shut down on exit.
func Run(ctx context.Context, opts Options) error {
	defer logging.LogPanic("tui", nil)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		New(runCtx, opts.Runner, opts.Workspace),
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
	)
	opts.Surface.Attach(p)

	slog.Debug("tui.Run: running program")
	_, err := p.Run()
	slog.Debug("tui.Run: program exited", "error", err)

	// Unblock pending pick requests before shutting down.
	cancel()
	opts.Surface.Attach(nil)
	opts.Runner.Shutdown()

	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) refreshState() tea.Cmd {
	r := m.runner
	return func() tea.Msg {
		return stateMsg(r.Status())
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) runCmd() tea.Cmd {
	ctx, r := m.ctx, m.runner
	return func() tea.Msg {
		h, err := r.Run(ctx)
		if err != nil {
			return runResultMsg{Err: err}
		}
		return runResultMsg{PID: h.PID(), StartedAt: h.StartedAt()}
	}
}

func (m Model) stopCmd() tea.Cmd {
	r := m.runner
	return func() tea.Msg {
		return stopResultMsg{Err: r.Stop()}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
