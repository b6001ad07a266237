package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpBar displays keyboard shortcuts at the bottom of the TUI.
type HelpBar struct {
	width int
	keys  KeyBindings

	// launching is set while a run is resolving paths.
	launching bool

	errorMsg string
}

// NewHelpBar creates a new help bar component.
func NewHelpBar() HelpBar {
	return HelpBar{
		keys: DefaultKeyBindings(),
	}
}

// SetWidth updates the help bar width.
func (h *HelpBar) SetWidth(width int) {
	h.width = width
}

// SetKeys updates the bindings shown. Disabled bindings are hidden.
func (h *HelpBar) SetKeys(keys KeyBindings) {
	h.keys = keys
}

// SetLaunching toggles the launching indicator.
func (h *HelpBar) SetLaunching(launching bool) {
	h.launching = launching
}

// SetError sets the error message to display.
func (h *HelpBar) SetError(msg string) {
	h.errorMsg = msg
}

// ClearError clears the error message.
func (h *HelpBar) ClearError() {
	h.errorMsg = ""
}

// View renders the help bar.
func (h HelpBar) View() string {
	if h.errorMsg != "" {
		return errorBarStyle.Width(h.width).Render("Error: " + h.errorMsg)
	}

	helpText := formatHelp([]key.Binding{h.keys.Run, h.keys.Stop, h.keys.Down, h.keys.Quit})
	if h.launching {
		helpText = "launching…  " + helpText
	}
	return statusStyle.Width(h.width).Render(helpText)
}

// formatHelp formats the enabled bindings as help text.
func formatHelp(bindings []key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
