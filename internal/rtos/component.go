package rtos

import (
	"fmt"
	"path/filepath"

	"github.com/data61/echronos-lwip/internal/repofind"
)

// SectionSource is the parse contract shared by the two component variants.
// The assembler treats every component uniformly through it, regardless of
// which fragment naming scheme applies.
type SectionSource interface {
	// ComponentName returns the display name used in diagnostics and
	// template references.
	ComponentName() string

	// Sections locates the component's fragment file and returns its
	// rendered sections. overrides are merged over the component's base
	// configuration where the variant supports that; arch selects the
	// fragment for architecture-specific variants and is ignored otherwise.
	Sections(loc *repofind.Locator, arch *Architecture, overrides map[string]any) (map[string]string, error)
}

// Fragment naming conventions, tried in order. Architecture-independent and
// architecture-specific fragments live in different physical layouts, so each
// variant carries its own ordered pattern list.
var genericNamePatterns = []func(resource string) string{
	func(r string) string { return r + ".c" },
	func(r string) string { return filepath.Join(r, r+".c") },
}

var archNamePatterns = []func(resource, arch string) string{
	func(r, a string) string { return filepath.Join(r+"-"+a, r+"-"+a+".c") },
	func(r, a string) string { return a + "-" + r + ".c" },
}

// Component is an exchangeable piece of RTOS functionality backed by an
// architecture-independent fragment file.
//
// Name is the component name used in template references; Resource is the
// base name of the fragment file on disk (defaults to Name). Config is the
// component's base rendering configuration.
type Component struct {
	Name     string
	Resource string
	Config   map[string]any
}

// NewComponent creates a generic component. resource may be empty, in which
// case it defaults to name.
func NewComponent(name, resource string, config map[string]any) *Component {
	if resource == "" {
		resource = name
	}
	return &Component{Name: name, Resource: resource, Config: config}
}

func (c *Component) ComponentName() string { return c.Name }

// Sections locates this component's fragment using the generic naming
// conventions and parses it. overrides are merged over the component's base
// configuration, overrides winning on key collisions. The architecture is
// not consulted; generic fragments are shared across targets.
func (c *Component) Sections(loc *repofind.Locator, _ *Architecture, overrides map[string]any) (map[string]string, error) {
	config := mergeConfig(c.Config, overrides)

	var path string
	for _, pattern := range genericNamePatterns {
		if found, err := loc.Find(pattern(c.Resource)); err == nil {
			path = found
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("unable to find component %q", c.Resource)
	}

	return ParseSectionedFile(path, config)
}

// ArchitectureComponent is the architecture-specific component variant. It
// locates its fragment with architecture-aware naming conventions and always
// renders with its own base configuration; external overrides are not
// accepted.
type ArchitectureComponent struct {
	Name     string
	Resource string
	Config   map[string]any
}

// NewArchitectureComponent creates an architecture-specific component.
// resource may be empty, in which case it defaults to name.
func NewArchitectureComponent(name, resource string, config map[string]any) *ArchitectureComponent {
	if resource == "" {
		resource = name
	}
	return &ArchitectureComponent{Name: name, Resource: resource, Config: config}
}

func (c *ArchitectureComponent) ComponentName() string { return c.Name }

// Sections locates this component's fragment for the given architecture and
// parses it with the component's base configuration.
func (c *ArchitectureComponent) Sections(loc *repofind.Locator, arch *Architecture, _ map[string]any) (map[string]string, error) {
	if arch == nil {
		return nil, fmt.Errorf("component %q is architecture-specific but no architecture was given", c.Resource)
	}

	var path string
	for _, pattern := range archNamePatterns {
		if found, err := loc.Find(pattern(c.Resource, arch.Name)); err == nil {
			path = found
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("unable to find component %q for architecture %s", c.Resource, arch.Name)
	}

	return ParseSectionedFile(path, c.Config)
}

// mergeConfig copies base and overlays extra, extra keys winning. Neither
// input map is modified.
func mergeConfig(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
