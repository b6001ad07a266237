// Package logging configures the slog JSON log shared by every pspr command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tessro/pspr/internal/paths"
)

// Rotation limits: the log rolls over past MaxSizeMB and keeps
// MaxBackups old files next to it.
const (
	MaxSizeMB  = 4
	MaxBackups = 2
)

// ParseLevel maps "debug", "info", "warn" or "error" (any case) to a level.
// Anything else yields info; config.ValidateLogLevel rejects it earlier.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Setup points the default slog logger at a rotating JSON log file. An
// empty path selects paths.LogPath(). The returned cleanup closes the file.
func Setup(path string, level slog.Level) (cleanup func(), err error) {
	if path == "" {
		path = paths.LogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		LocalTime:  true,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("pid", os.Getpid()))
	return func() { _ = w.Close() }, nil
}

// SetupTest sends debug-level text logs to w.
func SetupTest(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// LogPanic recovers a panic, logs it with its stack, and calls onRecover
// if set. Defer it first thing in every goroutine pspr starts:
//
//	defer logging.LogPanic("ppsspp-exit-waiter", nil)
func LogPanic(name string, onRecover func(any)) {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("panic recovered", "goroutine", name, "panic", r, "stack", string(debug.Stack()))
	if onRecover != nil {
		onRecover(r)
	}
}
