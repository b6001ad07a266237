package tui

import (
	"time"

	"github.com/tessro/pspr/internal/supervisor"
)

// statusMsg mirrors Surface.ShowStatus / HideStatus.
type statusMsg struct {
	Visible bool
}

// notifyMsg carries an Info, Warn, or Error notification.
type notifyMsg Notification

// flagMsg mirrors Surface.SetFlag.
type flagMsg struct {
	Name  string
	Value bool
}

// stateMsg carries a supervisor status snapshot.
type stateMsg supervisor.Status

// runResultMsg is the result of a run command.
type runResultMsg struct {
	PID       int
	StartedAt time.Time
	Err       error
}

// stopResultMsg is the result of a stop command.
type stopResultMsg struct {
	Err error
}

// pickRequestMsg asks the model to show the file picker.
// The answer is delivered on Reply, which must be buffered.
type pickRequestMsg struct {
	Prompt string
	Reply  chan<- pickResult
}

type pickResult struct {
	Path string
	Err  error
}

// tickMsg is sent every second to refresh the uptime.
type tickMsg time.Time

// clearErrorMsg is sent to clear the error display after a timeout.
type clearErrorMsg struct{}
