package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/pspr/internal/supervisor"
)

// Header displays branding and the emulator status indicator.
type Header struct {
	width int

	// visible mirrors the supervisor's status indicator.
	visible   bool
	pid       int
	startedAt time.Time
	now       time.Time

	workspace string
}

// NewHeader creates a new header component.
func NewHeader(workspace string) Header {
	return Header{workspace: workspace}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetStatus shows or hides the running indicator.
func (h *Header) SetStatus(visible bool) {
	h.visible = visible
	if !visible {
		h.pid = 0
		h.startedAt = time.Time{}
	}
}

// SetProcess records the running emulator's PID and start time.
func (h *Header) SetProcess(pid int, startedAt time.Time) {
	h.pid = pid
	h.startedAt = startedAt
}

// SetNow updates the clock used for uptime.
func (h *Header) SetNow(now time.Time) {
	h.now = now
}

// View renders the header.
func (h Header) View() string {
	brand := headerBrandStyle.Render("🎮 pspr")

	var status string
	if h.visible {
		status = headerRunningStyle.Render(supervisor.StatusText)
	} else {
		status = headerIdleStyle.Render("■ idle")
	}

	var stats string
	switch {
	case h.visible && h.pid > 0 && !h.startedAt.IsZero() && !h.now.IsZero():
		stats = headerStatsStyle.Render(fmt.Sprintf("pid %d  •  %s", h.pid, formatDuration(h.now.Sub(h.startedAt))))
	case h.visible && h.pid > 0:
		stats = headerStatsStyle.Render(fmt.Sprintf("pid %d", h.pid))
	case h.workspace != "":
		stats = headerStatsStyle.Render(h.workspace)
	}

	spacerWidth := h.width - lipgloss.Width(brand) - lipgloss.Width(status) - lipgloss.Width(stats)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	content := lipgloss.JoinHorizontal(lipgloss.Top, brand, status, spacer, stats)
	return headerContainerStyle.Width(h.width).Render(content)
}

// formatDuration renders d as a compact uptime like "1h02m" or "45s".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
