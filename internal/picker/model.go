// Package picker provides an interactive terminal file picker.
package picker

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			MarginTop(1)
)

// cancelKeys dismiss the picker. esc is taken away from the file
// picker's Back binding so it can cancel.
var cancelKeys = key.NewBinding(
	key.WithKeys("esc", "q", "ctrl+c"),
	key.WithHelp("esc", "cancel"),
)

// Model is a single-file picker. Embed it and forward messages to Update
// until Done reports true.
type Model struct {
	prompt string
	fp     filepicker.Model

	selected  string
	cancelled bool
}

// New creates a picker rooted at dir. An empty dir means the user's home
// directory, falling back to the working directory.
func New(prompt, dir string) Model {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home
		} else {
			dir = "."
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)

	return Model{prompt: prompt, fp: fp}
}

// Init reads the starting directory.
func (m Model) Init() tea.Cmd {
	return m.fp.Init()
}

// Update handles a message. Once Done, further messages are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Done() {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, cancelKeys) {
		m.cancelled = true
		return m, nil
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)
	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.selected = path
	}
	return m, cmd
}

// View renders the prompt, the listing, and a key hint.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		promptStyle.Render(m.prompt),
		m.fp.CurrentDirectory,
		m.fp.View(),
		hintStyle.Render("enter select • h back • esc cancel"),
	)
}

// Done reports whether a file was selected or the picker was cancelled.
func (m Model) Done() bool {
	return m.cancelled || m.selected != ""
}

// Selected returns the chosen path, or "" if none.
func (m Model) Selected() string {
	return m.selected
}

// Cancelled reports whether the user dismissed the picker.
func (m Model) Cancelled() bool {
	return m.cancelled
}
