package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"debug lowercase", "debug", slog.LevelDebug},
		{"debug uppercase", "DEBUG", slog.LevelDebug},
		{"debug mixed", "Debug", slog.LevelDebug},
		{"info lowercase", "info", slog.LevelInfo},
		{"info uppercase", "INFO", slog.LevelInfo},
		{"warn lowercase", "warn", slog.LevelWarn},
		{"warn uppercase", "WARN", slog.LevelWarn},
		{"error lowercase", "error", slog.LevelError},
		{"error uppercase", "ERROR", slog.LevelError},
		{"empty string", "", slog.LevelInfo},
		{"invalid value", "invalid", slog.LevelInfo},
		{"trace returns info", "trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetupWritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "pspr.log")
	cleanup, err := Setup(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	slog.Info("emulator launched", "pid", 42)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"emulator launched"`) {
		t.Errorf("log file missing JSON record, got %q", data)
	}
}

func TestSetupRotatesLargeLog(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := t.TempDir()
	path := filepath.Join(dir, "pspr.log")
	full := bytes.Repeat([]byte("x"), MaxSizeMB<<20)
	if err := os.WriteFile(path, full, 0o600); err != nil {
		t.Fatal(err)
	}

	cleanup, err := Setup(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	slog.Info("after rotation")
	cleanup()

	backups, err := filepath.Glob(filepath.Join(dir, "pspr-*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %v, want one rotated file", backups)
	}
	old, err := os.Stat(backups[0])
	if err != nil {
		t.Fatal(err)
	}
	if old.Size() != int64(len(full)) {
		t.Errorf("rotated size = %d, want %d", old.Size(), len(full))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "after rotation") || len(data) >= len(full) {
		t.Errorf("fresh log = %d bytes, want a small new file", len(data))
	}
}

func TestLogPanicRecovers(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupTest(&buf)

	var recovered any
	func() {
		defer LogPanic("exit-waiter", func(r any) { recovered = r })
		panic("boom")
	}()

	if recovered != "boom" {
		t.Errorf("onRecover got %v, want boom", recovered)
	}
	if !strings.Contains(buf.String(), "goroutine=exit-waiter") {
		t.Errorf("expected goroutine name in log, got %q", buf.String())
	}
}
