package rtos

import (
	"fmt"

	"github.com/data61/echronos-lwip/internal/repofind"
)

// Skeleton defines an RTOS variant as a named, ordered composition of
// components. Component order is significant: it determines the
// concatenation order of same-named sections across components.
//
// MetadataPath names the skeleton's metadata file, copied verbatim into each
// generated module's output directory.
type Skeleton struct {
	Name         string
	Components   []SectionSource
	Config       map[string]any
	MetadataPath string
}

// ModuleSections parses every component of the skeleton, in order, for the
// given architecture and aggregates the results into one mapping of section
// name to ordered content list. Later components' content for a shared
// section name appears strictly after earlier components' content; nothing
// is reordered or deduplicated.
//
// The skeleton's own configuration is offered to each component as an
// override set; architecture-specific components ignore it and render with
// their base configuration only.
func (s *Skeleton) ModuleSections(loc *repofind.Locator, arch *Architecture) (map[string][]string, error) {
	moduleSections := map[string][]string{}
	for _, component := range s.Components {
		sections, err := component.Sections(loc, arch, s.Config)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", component.ComponentName(), err)
		}
		for name, contents := range sections {
			moduleSections[name] = append(moduleSections[name], contents)
		}
	}
	return moduleSections, nil
}

// ConfiguredModule wraps ModuleSections into a Module value ready for
// generation. This is only a convenience composition.
func (s *Skeleton) ConfiguredModule(loc *repofind.Locator, arch *Architecture) (*Module, error) {
	sections, err := s.ModuleSections(loc, arch)
	if err != nil {
		return nil, err
	}
	return &Module{
		Name:         s.Name,
		Arch:         arch,
		Sections:     sections,
		MetadataPath: s.MetadataPath,
	}, nil
}
