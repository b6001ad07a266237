//go:build !linux && !darwin && !windows

package instance

// StartTime is not implemented here; Live falls back to a liveness check.
func StartTime(int) (string, error) {
	return "", ErrStartTimeUnsupported
}
