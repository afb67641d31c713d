package rtos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/data61/echronos-lwip/internal/repofind"
)

// minimalSections returns one line of plausible content for every required
// section, keyed by section name.
func minimalSections(tag string) map[string]string {
	sections := make(map[string]string, len(RequiredSections))
	for _, name := range RequiredSections {
		sections[name] = fmt.Sprintf("/* %s from %s */", name, tag)
	}
	sections["type_definitions"] = fmt.Sprintf("typedef uint8_t %sId;", tag)
	return sections
}

// fragmentText renders sections into marker-delimited fragment file text.
// RequiredSections order first, then any extras.
func fragmentText(sections map[string]string) string {
	var buf strings.Builder
	emit := func(name string) {
		fmt.Fprintf(&buf, "/*| %s |*/\n%s\n\n", name, sections[name])
	}
	seen := map[string]bool{}
	for _, name := range RequiredSections {
		if _, ok := sections[name]; ok {
			emit(name)
			seen[name] = true
		}
	}
	for name := range sections {
		if !seen[name] {
			emit(name)
		}
	}
	return buf.String()
}

// writeFragment writes fragment text under root/components/rel.
func writeFragment(t *testing.T, root, rel string, sections map[string]string) string {
	t.Helper()
	path := filepath.Join(root, "components", rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(fragmentText(sections)), 0644))
	return path
}

func testLocator(roots ...string) *repofind.Locator {
	return repofind.NewWithRoots(roots...)
}
