package rivet

import (
	"github.com/rivet-di/rivet/internal/graph"
	"github.com/rivet-di/rivet/internal/reflectx"
)

// Validate statically checks that every component active under the
// given profile can be assembled: each required parameter has a
// provider, setting, or default; no dependency is ambiguous; the
// graph is acyclic. It reports the first problem found without
// constructing anything.
func (c *Container) Validate(profile string) error {
	c.mu.RLock()
	active := make([]*descriptor, 0, len(c.components))
	for _, d := range c.components {
		if d.activeIn(profile) {
			active = append(active, d)
		}
	}
	c.mu.RUnlock()

	g := graph.New()

	for _, d := range active {
		deps, err := c.validateComponent(d, profile)
		if err != nil {
			return err
		}
		g.AddNode(d.key, deps)
	}

	if g.HasCycle() {
		return errCircularDependency(g.CyclePath())
	}
	return nil
}

func (c *Container) validateComponent(d *descriptor, profile string) ([]string, error) {
	var deps []string

	for _, p := range d.params {
		if p.Skip {
			continue
		}

		if reflectx.IsUntyped(p.Type) {
			return nil, errUntypedParameter(p.Name, d.key)
		}

		if elem, ok := reflectx.SequenceElem(p.Type); ok {
			for _, match := range c.findMatches(elem, profile) {
				deps = append(deps, match.key)
			}
			continue
		}

		if p.Setting != nil {
			if !c.store.Has(p.Setting.Section, p.Setting.Key) {
				return nil, errConfigKeyMissing(p.Setting.Section, p.Setting.Key)
			}
			continue
		}

		match, err := c.findUnique(p.Type, profile)
		if err != nil {
			return nil, err
		}
		if match != nil {
			deps = append(deps, match.key)
			continue
		}

		if p.HasDefault() || p.Optional {
			continue
		}

		return nil, errMissingDependency(p.Name, d.key)
	}

	return deps, nil
}
