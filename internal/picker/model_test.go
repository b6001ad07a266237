package picker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// load runs the initial directory read.
func load(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil cmd")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestPickerSelectsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "PPSSPPSDL"), []byte{}, 0755); err != nil {
		t.Fatal(err)
	}

	m := load(t, New("Select PPSSPP executable", dir))
	if m.Done() {
		t.Fatal("picker should not be done before a selection")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Done() || m.Cancelled() {
		t.Fatalf("Done=%v Cancelled=%v after enter", m.Done(), m.Cancelled())
	}
	if want := filepath.Join(dir, "PPSSPPSDL"); m.Selected() != want {
		t.Errorf("Selected() = %q, want %q", m.Selected(), want)
	}
}

func TestPickerCancel(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := load(t, New("Select", t.TempDir()))
			m, _ = m.Update(tt.msg)
			if !m.Cancelled() || !m.Done() {
				t.Error("picker should be cancelled")
			}
			if m.Selected() != "" {
				t.Errorf("Selected() = %q, want empty", m.Selected())
			}
		})
	}
}

func TestPickerIgnoresInputWhenDone(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ppsspp"), []byte{}, 0755); err != nil {
		t.Fatal(err)
	}

	m := load(t, New("Select", dir))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.Selected() != "" {
		t.Error("done picker should ignore input")
	}
}

func TestPickerViewShowsPrompt(t *testing.T) {
	m := load(t, New("Select PPSSPP executable", t.TempDir()))
	if !strings.Contains(m.View(), "Select PPSSPP executable") {
		t.Errorf("View() missing prompt:\n%s", m.View())
	}
}

func TestProgramQuitsWhenDone(t *testing.T) {
	p := program{load(t, New("Select", t.TempDir()))}

	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !next.(program).Cancelled() {
		t.Error("program should be cancelled")
	}
}
