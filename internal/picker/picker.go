package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tessro/pspr/internal/locator"
)

// ErrNoTerminal is returned when stdin is not a terminal.
var ErrNoTerminal = errors.New("file picker needs an interactive terminal")

// program adapts Model to a standalone tea program.
type program struct {
	Model
}

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	if p.Done() {
		return p, tea.Quit
	}
	return p, cmd
}

// Terminal is a locator.Picker that runs a full-screen picker on the
// controlling terminal.
type Terminal struct {
	// Dir is the starting directory. Empty means the home directory.
	Dir string

	// In and Out default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

var _ locator.Picker = Terminal{}

// PickFile implements locator.Picker.
func (t Terminal) PickFile(ctx context.Context, prompt string) (string, error) {
	in, out := t.In, t.Out
	if in == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return "", ErrNoTerminal
		}
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	p := tea.NewProgram(program{New(prompt, t.Dir)},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run file picker: %w", err)
	}

	m, ok := final.(program)
	if !ok || m.Selected() == "" {
		return "", locator.ErrPickCancelled
	}
	return m.Selected(), nil
}
