// Package console renders supervisor notifications on a terminal.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/pspr/internal/supervisor"
)

// Prefix starts every line written by a Console.
const Prefix = "🎮 "

const (
	secondaryColor = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
)

// Console is a supervisor.Surface that prints to a pair of writers.
// Info and the status indicator go to out; warnings and errors go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer

	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	errorStyle  lipgloss.Style

	mu sync.Mutex
	// +checklocks:mu
	status bool
	// +checklocks:mu
	flags map[string]bool
}

var _ supervisor.Surface = (*Console)(nil)

// New creates a Console. Colors are only emitted if out is a terminal.
func New(out, errOut io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:         out,
		errOut:      errOut,
		statusStyle: r.NewStyle().Foreground(secondaryColor).Bold(true),
		warnStyle:   r.NewStyle().Foreground(warningColor),
		errorStyle:  r.NewStyle().Foreground(errorColor),
		flags:       make(map[string]bool),
	}
}

// ShowStatus prints the status indicator the first time it becomes visible.
func (c *Console) ShowStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status {
		return
	}
	c.status = true
	fmt.Fprintln(c.out, Prefix+c.statusStyle.Render(supervisor.StatusText))
}

func (c *Console) HideStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = false
}

func (c *Console) Info(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, Prefix+text)
}

func (c *Console) Warn(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.errOut, Prefix+c.warnStyle.Render(text))
}

func (c *Console) Error(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.errOut, Prefix+c.errorStyle.Render("Error: "+text))
}

func (c *Console) SetFlag(name string, value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flags[name] = value
}

// Flag returns the last value set for name.
func (c *Console) Flag(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags[name]
}

// StatusVisible reports whether the status indicator is shown.
func (c *Console) StatusVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
