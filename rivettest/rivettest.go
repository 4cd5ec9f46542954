// Package rivettest provides helpers for wiring containers in tests.
package rivettest

import (
	"github.com/rivet-di/rivet"
)

// TB is the subset of testing.TB these helpers need.
type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

type TestContainer struct {
	*rivet.Container
	tb TB
}

func New(tb TB, opts ...rivet.Option) *TestContainer {
	tb.Helper()

	return &TestContainer{
		Container: rivet.New(opts...),
		tb:        tb,
	}
}

// Seed adds one configuration value, failing the test on collision.
func (tc *TestContainer) Seed(section, key string, value any) {
	tc.tb.Helper()

	err := tc.Store().AddValues(map[string]map[string]any{
		section: {key: value},
	})
	if err != nil {
		tc.tb.Fatalf("failed to seed [%s] %s: %v", section, key, err)
	}
}

func (tc *TestContainer) RequireValidate(profile string) {
	tc.tb.Helper()

	if err := tc.Validate(profile); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

// Register registers a struct component, failing the test on error.
func Register[T any](tc *TestContainer, opts ...rivet.RegisterOption) {
	tc.tb.Helper()

	if err := rivet.Register[T](tc.Container, opts...); err != nil {
		tc.tb.Fatalf("failed to register: %v", err)
	}
}

// RegisterFactory registers a factory component, failing the test on
// error.
func RegisterFactory[T any](tc *TestContainer, factory any, opts ...rivet.RegisterOption) {
	tc.tb.Helper()

	if err := rivet.RegisterFactory[T](tc.Container, factory, opts...); err != nil {
		tc.tb.Fatalf("failed to register factory: %v", err)
	}
}

// RegisterInstance registers a pre-built value, failing the test on
// error.
func RegisterInstance[T any](tc *TestContainer, value T, opts ...rivet.RegisterOption) {
	tc.tb.Helper()

	if err := rivet.RegisterInstance(tc.Container, value, opts...); err != nil {
		tc.tb.Fatalf("failed to register instance: %v", err)
	}
}

// Assemble assembles T, failing the test on error.
func Assemble[T any](tc *TestContainer, opts ...rivet.AssembleOption) T {
	tc.tb.Helper()

	v, err := rivet.Assemble[T](tc.Container, opts...)
	if err != nil {
		tc.tb.Fatalf("failed to assemble: %v", err)
	}
	return v
}
