package health

import "errors"

var (
	// ErrCheckFailed wraps failures the health package detects itself:
	// a nil check or a check that panicked.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout wraps a check still running at the probe deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
