package instance

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StartTime returns the start time of pid as reported by kern.proc.pid.
func StartTime(pid int) (string, error) {
	k, err := unix.SysctlKinfoProc("kern.proc.pid", pid)
	if err != nil {
		return "", err
	}
	if k.Proc.P_pid != int32(pid) {
		return "", fmt.Errorf("no process %d", pid)
	}
	tv := k.Proc.P_starttime
	return fmt.Sprintf("%d.%06d", tv.Sec, tv.Usec), nil
}
