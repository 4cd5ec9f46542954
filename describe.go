package rivet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rivet-di/rivet/internal/reflectx"
)

// ComponentInfo is a snapshot of one registered provider, for
// debugging and tooling.
type ComponentInfo struct {
	Key          string
	Kind         string
	Lifecycle    string
	Profiles     []string
	Capabilities []string
	Dependencies []string
	Settings     []string
	Cached       bool
}

// Describe returns a snapshot of the registry in registration order.
// The registry lock is released before any descriptor lock is taken,
// keeping Describe safe to call while an assembly holds a descriptor
// lock and waits on the registry.
func (c *Container) Describe() []ComponentInfo {
	c.mu.RLock()
	snapshot := make([]*descriptor, len(c.components))
	copy(snapshot, c.components)
	c.mu.RUnlock()

	infos := make([]ComponentInfo, 0, len(snapshot))
	for _, d := range snapshot {
		infos = append(infos, describeComponent(d))
	}
	return infos
}

func describeComponent(d *descriptor) ComponentInfo {
	info := ComponentInfo{
		Key:       d.key,
		Kind:      d.kind.String(),
		Lifecycle: d.lifecycle.String(),
	}

	for name := range d.profiles {
		info.Profiles = append(info.Profiles, name)
	}
	sort.Strings(info.Profiles)

	for _, capability := range d.as {
		info.Capabilities = append(info.Capabilities, reflectx.KeyOf(capability))
	}

	for _, p := range d.params {
		switch {
		case p.Skip:
		case p.Setting != nil:
			info.Settings = append(info.Settings, p.Setting.Section+"."+p.Setting.Key)
		default:
			info.Dependencies = append(info.Dependencies, reflectx.KeyOf(p.Type))
		}
	}

	d.mu.Lock()
	info.Cached = d.built
	d.mu.Unlock()

	return info
}

func (c *Container) PrintRegistry() {
	c.FprintRegistry(os.Stdout)
}

func (c *Container) FprintRegistry(w io.Writer) {
	infos := c.Describe()

	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, "(empty registry)")
		return
	}

	for _, info := range infos {
		status := "○"
		if info.Cached {
			status = "●"
		}

		line := fmt.Sprintf("%s %s [%s, %s]", status, info.Key, info.Kind, info.Lifecycle)
		if len(info.Profiles) > 0 {
			line += " profiles=" + strings.Join(info.Profiles, ",")
		}
		if len(info.Dependencies) > 0 {
			line += " ← " + strings.Join(info.Dependencies, ", ")
		}
		if len(info.Settings) > 0 {
			line += " settings=" + strings.Join(info.Settings, ",")
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

func (c *Container) SprintRegistry() string {
	var sb strings.Builder
	c.FprintRegistry(&sb)
	return sb.String()
}
