package instance

import "errors"

// ErrStartTimeUnsupported is returned by StartTime on platforms that do
// not expose process start times.
var ErrStartTimeUnsupported = errors.New("process start time not available on this platform")
