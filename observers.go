package rivet

import (
	"time"
)

// ResolveHook observes every component resolution, including nested
// ones, with its duration and outcome.
type ResolveHook func(key string, duration time.Duration, err error)

// RegisterHook observes successful registrations.
type RegisterHook func(key string)
