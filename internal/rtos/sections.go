package rtos

import (
	"fmt"
	"os"
	"strings"

	"github.com/data61/echronos-lwip/internal/render"
)

// RequiredSections is the fixed registry of section names every component
// fragment must provide. Each name is one slot in the generated source or
// header file. The check is data-driven on purpose: parsing validates the
// registry as a whole instead of hard-coding per-name checks.
var RequiredSections = []string{
	"public_headers",
	"public_type_definitions",
	"public_structure_definitions",
	"public_object_like_macros",
	"public_function_like_macros",
	"public_extern_definitions",
	"public_function_definitions",
	"headers",
	"object_like_macros",
	"type_definitions",
	"structure_definitions",
	"extern_definitions",
	"function_definitions",
	"state",
	"function_like_macros",
	"functions",
	"public_functions",
}

// SchemaSection is the optional extra section holding a component's
// configuration schema fragment.
const SchemaSection = "schema"

const (
	sectionOpenMarker  = "/*|"
	sectionCloseMarker = "|*/"
)

var sectionRenderer = render.New(render.DefaultOptions())

// ParseSectionedFile splits a component fragment file into named sections and
// renders each through the strict template pass with the given configuration.
//
// A line of the exact shape "/*| name |*/" starts a new section; content
// before the first marker is discarded. Each section's text is right-trimmed
// before rendering. After rendering, every name in RequiredSections must be
// present; unrecognized extra sections are retained verbatim.
//
// For example an input of:
//
//	/*| foo |*/
//	foo data....
//
//	/*| bar |*/
//	bar data....
//
// produces {"foo": "foo data....", "bar": "bar data...."}.
func ParseSectionedFile(path string, config map[string]any) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading component file: %w", err)
	}
	if config == nil {
		config = map[string]any{}
	}

	sections := map[string][]string{}
	current := ""
	inSection := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if len(line) >= len(sectionOpenMarker)+len(sectionCloseMarker) &&
			strings.HasPrefix(line, sectionOpenMarker) &&
			strings.HasSuffix(line, sectionCloseMarker) {
			current = strings.TrimSpace(line[len(sectionOpenMarker) : len(line)-len(sectionCloseMarker)])
			sections[current] = nil
			inSection = true
		} else if inSection {
			sections[current] = append(sections[current], line)
		}
	}

	rendered := make(map[string]string, len(sections))
	for name, lines := range sections {
		text := strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
		out, err := sectionRenderer.RenderString(fmt.Sprintf("%s: Section %s", path, name), text, config)
		if err != nil {
			return nil, err
		}
		rendered[name] = string(out)
	}

	for _, name := range RequiredSections {
		if _, ok := rendered[name]; !ok {
			return nil, fmt.Errorf("couldn't find expected section '%s' in file: '%s'", name, path)
		}
	}

	return rendered, nil
}
