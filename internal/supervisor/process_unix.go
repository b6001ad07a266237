//go:build !windows

package supervisor

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// detachAttr starts the emulator in a new session so it is not tied to the
// launching terminal.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// terminate requests a graceful exit with SIGTERM.
func terminate(p *os.Process) error {
	return p.Signal(unix.SIGTERM)
}
