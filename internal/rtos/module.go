package rtos

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/data61/echronos-lwip/internal/generator"
)

// Fixed emission order for the generated source and header files. The
// required-sections registry guarantees every listed name is present in a
// fully parsed module.
var sourceSections = []string{
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

var headerSections = []string{
	"public_headers",
	"public_type_definitions",
	"public_object_like_macros",
	"public_function_like_macros",
	"public_extern_definitions",
	"public_function_definitions",
}

const typeDefinitionsSection = "type_definitions"

const xmlProlog = "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n"

// metadataArtifact is the fixed output name of the copied skeleton metadata
// file.
const metadataArtifact = "entity.yml"

// Module is one fully-resolved, architecture-bound instantiation of a
// skeleton, ready to be rendered to disk.
type Module struct {
	Name         string
	Arch         *Architecture
	Sections     map[string][]string
	MetadataPath string
}

// ModuleName returns the module's unique name, shared with the generated
// source and header file names.
func (m *Module) ModuleName() string {
	return "rtos-" + m.Name
}

// OutputDir returns the module's output directory beneath outRoot.
func (m *Module) OutputDir(outRoot string) string {
	return filepath.Join(outRoot, m.Arch.Name, m.ModuleName())
}

// Operations assembles the module's four artifacts as file operations:
// the source file, the include-guard wrapped header, the merged schema.xml
// and the copied metadata artifact. Nothing touches disk until the
// operations are executed.
func (m *Module) Operations(outRoot string) ([]generator.Operation, error) {
	dir := m.OutputDir(outRoot)

	source, err := m.sourceContent()
	if err != nil {
		return nil, err
	}
	schema, err := m.schemaContent()
	if err != nil {
		return nil, err
	}

	return []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, m.ModuleName()+".c"),
			Content: source,
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, m.ModuleName()+".h"),
			Content: m.headerContent(),
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, "schema.xml"),
			Content: schema,
			Mode:    0644,
		},
		&generator.CopyFileOp{
			Src:  m.MetadataPath,
			Dst:  filepath.Join(dir, metadataArtifact),
			Mode: 0644,
		},
	}, nil
}

// Generate writes the module to disk so it is available as a compile and
// link unit to projects. Existing artifacts from a previous run are
// overwritten; a failure partway leaves already-written files as-is.
func (m *Module) Generate(ctx context.Context, outRoot string, progress io.Writer) error {
	ops, err := m.Operations(outRoot)
	if err != nil {
		return err
	}
	return generator.Execute(ctx, ops, generator.ExecuteOptions{
		Force:  true,
		Writer: progress,
	})
}

func (m *Module) sourceContent() ([]byte, error) {
	var buf strings.Builder
	for _, name := range sourceSections {
		data := strings.Join(m.Sections[name], "\n")
		if name == typeDefinitionsSection {
			sorted, err := SortTypedefs(data)
			if err != nil {
				return nil, fmt.Errorf("section '%s' of module %s: %w", name, m.ModuleName(), err)
			}
			data = sorted
		}
		buf.WriteString(data)
		buf.WriteString("\n")
	}
	return []byte(buf.String()), nil
}

func (m *Module) headerContent() []byte {
	guard := strings.ToUpper(strings.ReplaceAll(m.ModuleName(), "-", "_"))

	var buf strings.Builder
	fmt.Fprintf(&buf, "#ifndef %s_H\n", guard)
	fmt.Fprintf(&buf, "#define %s_H\n", guard)
	for _, name := range headerSections {
		for _, block := range m.Sections[name] {
			buf.WriteString(block)
			buf.WriteString("\n")
		}
	}
	fmt.Fprintf(&buf, "\n#endif /* %s_H */", guard)
	return []byte(buf.String())
}

func (m *Module) schemaContent() ([]byte, error) {
	schema, err := MergeSchemaSections(m.Sections[SchemaSection])
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", m.ModuleName(), err)
	}
	return []byte(xmlProlog + schema), nil
}
