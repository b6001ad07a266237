//go:build windows

package supervisor

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// detachAttr starts the emulator without a console in its own process group.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}

// terminate ends the emulator. PPSSPP on Windows is a GUI process with no
// console to deliver a break event to, so this is TerminateProcess.
func terminate(p *os.Process) error {
	return p.Kill()
}
