package rtos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionedFileAllRequired(t *testing.T) {
	dir := t.TempDir()
	path := writeFragment(t, dir, "sched.c", minimalSections("sched"))

	sections, err := ParseSectionedFile(path, nil)
	require.NoError(t, err)
	require.Len(t, sections, len(RequiredSections))

	for _, name := range RequiredSections {
		assert.Contains(t, sections, name)
	}
	assert.Equal(t, "/* functions from sched */", sections["functions"])
	assert.Equal(t, "typedef uint8_t schedId;", sections["type_definitions"])
}

func TestParseSectionedFileExtraSectionRetained(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("sched")
	input[SchemaSection] = `<entry name="tasks" type="int"/>`
	path := writeFragment(t, dir, "sched.c", input)

	sections, err := ParseSectionedFile(path, nil)
	require.NoError(t, err)

	// Exactly the required names plus the extra one.
	assert.Len(t, sections, len(RequiredSections)+1)
	assert.Equal(t, `<entry name="tasks" type="int"/>`, sections[SchemaSection])
}

func TestParseSectionedFileDiscardsPreamble(t *testing.T) {
	dir := t.TempDir()
	text := "/* stray preamble that belongs to no section */\n" + fragmentText(minimalSections("x"))
	path := filepath.Join(dir, "components", "x.c")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	sections, err := ParseSectionedFile(path, nil)
	require.NoError(t, err)
	for _, content := range sections {
		assert.NotContains(t, content, "stray preamble")
	}
}

func TestParseSectionedFileTrimsTrailingBlankLines(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("x")
	input["state"] = "static uint8_t ticks;\n\n\n"
	path := writeFragment(t, dir, "x.c", input)

	sections, err := ParseSectionedFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "static uint8_t ticks;", sections["state"])
}

func TestParseSectionedFileMissingRequired(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("x")
	delete(input, "state")
	path := writeFragment(t, dir, "x.c", input)

	_, err := ParseSectionedFile(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'state'")
	assert.Contains(t, err.Error(), path)
}

func TestParseSectionedFileRendersConfig(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("x")
	input["type_definitions"] = "typedef [[.stack_type]] stack_t;"
	path := writeFragment(t, dir, "x.c", input)

	sections, err := ParseSectionedFile(path, map[string]any{"stack_type": "uint64_t"})
	require.NoError(t, err)
	assert.Equal(t, "typedef uint64_t stack_t;", sections["type_definitions"])
}

func TestParseSectionedFileMissingConfigKey(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("x")
	input["state"] = "static [[.missing_key]] ticks;"
	path := writeFragment(t, dir, "x.c", input)

	_, err := ParseSectionedFile(path, map[string]any{})
	require.Error(t, err)
	// The diagnostic names the file and the section.
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "Section state")
}

func TestParseSectionedFileMarkerShape(t *testing.T) {
	dir := t.TempDir()
	input := minimalSections("x")
	// An indented pseudo-marker is content, not a marker.
	input["functions"] = "  /*| not_a_marker |*/"
	path := writeFragment(t, dir, "x.c", input)

	sections, err := ParseSectionedFile(path, nil)
	require.NoError(t, err)
	assert.NotContains(t, sections, "not_a_marker")
	assert.Equal(t, "  /*| not_a_marker |*/", sections["functions"])
}
