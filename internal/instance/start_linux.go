package instance

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StartTime returns the start time of pid in clock ticks since boot,
// field 22 of /proc/<pid>/stat.
func StartTime(pid int) (string, error) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return "", err
	}

	// comm (field 2) may contain spaces and parentheses; fields after the
	// last ')' start at field 3.
	s := string(data)
	i := strings.LastIndexByte(s, ')')
	if i < 0 {
		return "", fmt.Errorf("parse /proc/%d/stat", pid)
	}
	fields := strings.Fields(s[i+1:])
	const startField = 22 - 3
	if len(fields) <= startField {
		return "", fmt.Errorf("parse /proc/%d/stat: %d fields", pid, len(fields))
	}
	return fields[startField], nil
}
