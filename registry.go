package rivet

import (
	"reflect"
	"sync"

	"github.com/rivet-di/rivet/internal/lifecycle"
	"github.com/rivet-di/rivet/internal/reflectx"
)

type componentKind int

const (
	kindStruct componentKind = iota
	kindFactory
	kindInstance
)

func (k componentKind) String() string {
	switch k {
	case kindStruct:
		return "struct"
	case kindFactory:
		return "factory"
	case kindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// descriptor is one registered provider. Everything except the
// singleton cache is immutable after registration.
type descriptor struct {
	key       string
	target    reflect.Type
	kind      componentKind
	factory   *reflectx.Factory
	params    []reflectx.Param
	lifecycle lifecycle.Lifecycle
	profiles  map[string]struct{}
	as        []reflect.Type

	// Singleton cache. Guarded by mu; written at most once.
	mu       sync.Mutex
	instance reflect.Value
	built    bool
}

// matches reports whether this provider can satisfy a request for t:
// the exact registered type, a declared capability, or any interface
// the target implements.
func (d *descriptor) matches(t reflect.Type) bool {
	if d.target == t {
		return true
	}
	for _, capability := range d.as {
		if capability == t {
			return true
		}
	}
	if t.Kind() == reflect.Interface && d.target.Implements(t) {
		return true
	}
	return false
}

// activeIn reports whether the provider participates under the given
// profile. An empty profile set means always active.
func (d *descriptor) activeIn(profile string) bool {
	if len(d.profiles) == 0 {
		return true
	}
	_, ok := d.profiles[profile]
	return ok
}

// profilesOverlap reports whether two profile scopes can both be
// active at once. An empty set is universally active and overlaps
// with everything.
func profilesOverlap(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for name := range a {
		if _, ok := b[name]; ok {
			return true
		}
	}
	return false
}

// findMatches returns every active provider matching the requested
// type, in registration order.
func (c *Container) findMatches(t reflect.Type, profile string) []*descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []*descriptor
	for _, d := range c.components {
		if d.activeIn(profile) && d.matches(t) {
			matches = append(matches, d)
		}
	}
	return matches
}

// findUnique returns the single active provider for the requested
// type, nil when there is none, and an ambiguity error when there is
// more than one. Absence is not an error at this layer.
func (c *Container) findUnique(t reflect.Type, profile string) (*descriptor, error) {
	matches := c.findMatches(t, profile)
	if len(matches) > 1 {
		candidates := make([]string, len(matches))
		for i, d := range matches {
			candidates[i] = d.key
		}
		return nil, errAmbiguousDependency(reflectx.KeyOf(t), candidates)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// add appends a descriptor after checking for duplicate registration
// of the same target under an overlapping profile scope.
func (c *Container) add(d *descriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.components {
		if existing.target == d.target && profilesOverlap(existing.profiles, d.profiles) {
			return errDuplicateRegistration(d.key)
		}
	}

	c.components = append(c.components, d)
	c.logger.Debug("registered component",
		"key", d.key,
		"kind", d.kind.String(),
		"lifecycle", d.lifecycle.String(),
	)

	for _, hook := range c.onRegister {
		hook(d.key)
	}
	return nil
}
