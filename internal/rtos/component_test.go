package rtos

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentSectionsFlatLayout(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "sched.c", minimalSections("sched"))

	c := NewComponent("sched", "", nil)
	sections, err := c.Sections(testLocator(dir), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from sched */", sections["functions"])
}

func TestComponentSectionsNestedLayout(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, filepath.Join("sched-rr", "sched-rr.c"), minimalSections("rr"))

	c := NewComponent("sched", "sched-rr", nil)
	sections, err := c.Sections(testLocator(dir), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from rr */", sections["functions"])
}

func TestComponentSectionsPatternOrder(t *testing.T) {
	dir := t.TempDir()
	// Both layouts exist; the flat "{resource}.c" convention wins.
	writeFragment(t, dir, "sched.c", minimalSections("flat"))
	writeFragment(t, dir, filepath.Join("sched", "sched.c"), minimalSections("nested"))

	c := NewComponent("sched", "", nil)
	sections, err := c.Sections(testLocator(dir), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from flat */", sections["functions"])
}

func TestComponentSectionsOverridesWin(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("sched")
	input["state"] = "static [[.stack_type]] stack[16];"
	writeFragment(t, dir, "sched.c", input)

	c := NewComponent("sched", "", map[string]any{"stack_type": "uint8_t"})

	sections, err := c.Sections(testLocator(dir), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "static uint8_t stack[16];", sections["state"])

	sections, err = c.Sections(testLocator(dir), nil, map[string]any{"stack_type": "uint64_t"})
	require.NoError(t, err)
	assert.Equal(t, "static uint64_t stack[16];", sections["state"])
}

func TestComponentSectionsNotFound(t *testing.T) {
	dir := t.TempDir()

	c := NewComponent("sched", "sched-rr", nil)
	_, err := c.Sections(testLocator(dir), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sched-rr"`)
}

func TestArchitectureComponentNestedLayout(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, filepath.Join("ctxt-switch-posix", "ctxt-switch-posix.c"), minimalSections("posix"))

	c := NewArchitectureComponent("ctxt_switch", "ctxt-switch", nil)
	arch := &Architecture{Name: "posix"}

	sections, err := c.Sections(testLocator(dir), arch, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from posix */", sections["functions"])
}

func TestArchitectureComponentFlatFallback(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "armv7m-ctxt-switch.c", minimalSections("armv7m"))

	c := NewArchitectureComponent("ctxt_switch", "ctxt-switch", nil)
	arch := &Architecture{Name: "armv7m"}

	sections, err := c.Sections(testLocator(dir), arch, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from armv7m */", sections["functions"])
}

func TestArchitectureComponentPatternOrder(t *testing.T) {
	dir := t.TempDir()
	// Both conventions exist; "{resource}-{arch}/{resource}-{arch}.c" wins.
	writeFragment(t, dir, filepath.Join("ctxt-switch-posix", "ctxt-switch-posix.c"), minimalSections("nested"))
	writeFragment(t, dir, "posix-ctxt-switch.c", minimalSections("flat"))

	c := NewArchitectureComponent("ctxt_switch", "ctxt-switch", nil)
	sections, err := c.Sections(testLocator(dir), &Architecture{Name: "posix"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/* functions from nested */", sections["functions"])
}

func TestArchitectureComponentIgnoresOverrides(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("posix")
	input["state"] = "static [[.stack_type]] stack[16];"
	writeFragment(t, dir, "posix-ctxt-switch.c", input)

	c := NewArchitectureComponent("ctxt_switch", "ctxt-switch", map[string]any{"stack_type": "uint32_t"})

	// External overrides are not accepted by architecture-specific
	// components; the base configuration applies.
	sections, err := c.Sections(testLocator(dir), &Architecture{Name: "posix"}, map[string]any{"stack_type": "uint64_t"})
	require.NoError(t, err)
	assert.Equal(t, "static uint32_t stack[16];", sections["state"])
}

func TestArchitectureComponentNotFound(t *testing.T) {
	dir := t.TempDir()

	c := NewArchitectureComponent("ctxt_switch", "ctxt-switch", nil)
	_, err := c.Sections(testLocator(dir), &Architecture{Name: "posix"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ctxt-switch"`)
	assert.Contains(t, err.Error(), "posix")
}

func TestArchitectureComponentRequiresArchitecture(t *testing.T) {
	c := NewArchitectureComponent("ctxt_switch", "", nil)
	_, err := c.Sections(testLocator(t.TempDir()), nil, nil)
	require.Error(t, err)
}
