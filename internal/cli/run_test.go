//go:build !windows

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/supervisor"
)

// fakeEmulator writes a script that sleeps in place of PPSSPP.
func fakeEmulator(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "PPSSPPSDL")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexec sleep 30\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDetachStatusStop(t *testing.T) {
	ws := testEnv(t)
	emulator := fakeEmulator(t)
	image := filepath.Join(ws, locator.ImageFile)
	if err := os.WriteFile(image, []byte("PBP"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "-w", ws, "config", "set", "executable-path", emulator); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	out, stderr, err := execute(t, "-w", ws, "run", "--detach", "--no-prompt")
	if err != nil {
		t.Fatalf("run error = %v (stderr %q)", err, stderr)
	}
	for _, want := range []string{supervisor.MsgLaunching, supervisor.StatusText, "PPSSPP running (pid"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}
	t.Cleanup(func() { _, _, _ = execute(t, "-w", ws, "stop") })

	// The image found in the workspace is remembered there.
	if got, _, _ := execute(t, "-w", ws, "config", "get", "image-path", "--scope", "workspace"); strings.TrimSpace(got) != image {
		t.Errorf("workspace image-path = %q, want %q", got, image)
	}

	out, _, err = execute(t, "-w", ws, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if !strings.Contains(out, "PPSSPP running (pid") {
		t.Errorf("status output = %q", out)
	}

	// A second launch from another invocation is refused.
	_, stderr, err = execute(t, "-w", ws, "run", "--detach", "--no-prompt")
	if err == nil || !strings.Contains(stderr, supervisor.MsgAlreadyRunning) {
		t.Errorf("second run: err=%v stderr=%q", err, stderr)
	}

	out, _, err = execute(t, "-w", ws, "stop")
	if err != nil {
		t.Fatalf("stop error = %v", err)
	}
	if !strings.Contains(out, supervisor.MsgStopped) {
		t.Errorf("stop output = %q", out)
	}

	out, _, _ = execute(t, "-w", ws, "status")
	if !strings.Contains(out, "PPSSPP is not running") {
		t.Errorf("status after stop = %q", out)
	}
}
