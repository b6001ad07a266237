//go:build !windows

package instance

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsProcessRunning reports whether pid names a live process.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	// Signal 0 checks without delivering anything. EPERM means the
	// process exists but belongs to someone else.
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
