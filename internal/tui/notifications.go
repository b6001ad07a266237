package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Level is a notification severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notification is one entry in the log.
type Notification struct {
	Time  time.Time
	Level Level
	Text  string
}

// maxNotifications bounds the log; older entries are dropped.
const maxNotifications = 500

// timeColumn is the width of "15:04:05 ".
const timeColumn = 9

// NotificationLog is a scrollable list of notifications, newest last.
type NotificationLog struct {
	entries  []Notification
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// NewNotificationLog creates an empty log.
func NewNotificationLog() NotificationLog {
	return NotificationLog{}
}

// SetSize updates the component dimensions.
func (l *NotificationLog) SetSize(width, height int) {
	l.width = width
	l.height = height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	if !l.ready {
		l.viewport = viewport.New(width, height)
		l.ready = true
	} else {
		l.viewport.Width = width
		l.viewport.Height = height
	}
	l.updateContent()
}

// Append adds a notification and follows the tail if already at the bottom.
func (l *NotificationLog) Append(n Notification) {
	l.entries = append(l.entries, n)
	if len(l.entries) > maxNotifications {
		l.entries = l.entries[len(l.entries)-maxNotifications:]
	}

	follow := !l.ready || l.viewport.AtBottom()
	l.updateContent()
	if follow && l.ready {
		l.viewport.GotoBottom()
	}
}

// Entries returns the notifications in order.
func (l NotificationLog) Entries() []Notification {
	return l.entries
}

// Last returns the newest notification.
func (l NotificationLog) Last() (Notification, bool) {
	if len(l.entries) == 0 {
		return Notification{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l *NotificationLog) ScrollUp(n int)   { l.viewport.LineUp(n) }
func (l *NotificationLog) ScrollDown(n int) { l.viewport.LineDown(n) }
func (l *NotificationLog) PageUp()          { l.viewport.ViewUp() }
func (l *NotificationLog) PageDown()        { l.viewport.ViewDown() }

func (l *NotificationLog) updateContent() {
	if !l.ready {
		return
	}
	l.viewport.SetContent(l.render())
}

func (l NotificationLog) render() string {
	textWidth := l.width - timeColumn
	if textWidth < 10 {
		textWidth = 10
	}
	pad := strings.Repeat(" ", timeColumn)

	var b strings.Builder
	for i, n := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		lines := strings.Split(wordwrap.String(n.Text, textWidth), "\n")
		for j, line := range lines {
			if j == 0 {
				b.WriteString(logTimeStyle.Render(n.Time.Format("15:04:05")) + " ")
			} else {
				b.WriteString("\n" + pad)
			}
			b.WriteString(levelStyle(n.Level).Render(line))
		}
	}
	return b.String()
}

// View renders the log.
func (l NotificationLog) View() string {
	if len(l.entries) == 0 {
		return logEmptyStyle.Width(l.width).Height(l.height).Render("No notifications yet. Press r to launch PPSSPP.")
	}
	if !l.ready {
		return l.render()
	}
	return l.viewport.View()
}

func levelStyle(level Level) lipgloss.Style {
	switch level {
	case LevelWarn:
		return logWarnStyle
	case LevelError:
		return logErrorStyle
	default:
		return logInfoStyle
	}
}
