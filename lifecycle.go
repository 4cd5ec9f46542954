package rivet

import "github.com/rivet-di/rivet/internal/lifecycle"

// Lifecycle controls instance caching: a Singleton is constructed once
// per container and shared, a Transient is constructed on every
// assembly.
type Lifecycle = lifecycle.Lifecycle

const (
	Singleton = lifecycle.Singleton
	Transient = lifecycle.Transient
)
