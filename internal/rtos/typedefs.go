package rtos

import (
	"fmt"
	"strings"
)

type typedefPair struct {
	newName string
	oldExpr string
}

// SortTypedefs reorders a block of typedef lines so that a type is declared
// before any type defined in terms of it.
//
// The block must contain only typedef lines and blank lines; blank lines are
// omitted from the output. Each line must match the grammar
// "typedef <type-expression> <name>;" exactly; anything else is a fatal
// error.
//
// Pairs whose underlying expression is not itself declared in the block are
// assumed to come from other headers and are emitted first, in original
// relative order. Remaining pairs are emitted as the names they depend on
// become available. Pairs that form a cycle, or that depend only on names
// neither declared in the block nor admissible as base cases, are silently
// dropped; downstream tooling relies on that exact behavior.
func SortTypedefs(typedefLines string) (string, error) {
	var typedefs []typedefPair
	for _, line := range strings.Split(typedefLines, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ";") {
			return "", fmt.Errorf("expect a typedef line to end with ';' (%s)", line)
		}
		parts := strings.Fields(line[:len(line)-1])
		if len(parts) < 2 || parts[0] != "typedef" {
			return "", fmt.Errorf("expect typedef line to start with 'typedef' (%s)", line)
		}
		typedefs = append(typedefs, typedefPair{
			newName: parts[len(parts)-1],
			oldExpr: strings.Join(parts[1:len(parts)-1], " "),
		})
	}

	newNames := make(map[string]bool, len(typedefs))
	for _, td := range typedefs {
		newNames[td.newName] = true
	}

	// First place any pairs that don't cross-reference the block; their
	// underlying types are assumed to be defined in other headers.
	var placed, pending []typedefPair
	for _, td := range typedefs {
		if newNames[td.oldExpr] {
			pending = append(pending, td)
		} else {
			placed = append(placed, td)
		}
	}

	// Then walk the placed list, pulling in every pending pair whose
	// underlying type has just become available. Pairs placed here can
	// unlock further pairs.
	for i := 0; i < len(placed); i++ {
		available := placed[i].newName
		remaining := pending[:0]
		for _, td := range pending {
			if td.oldExpr == available {
				placed = append(placed, td)
			} else {
				remaining = append(remaining, td)
			}
		}
		pending = remaining
	}

	lines := make([]string, len(placed))
	for i, td := range placed {
		lines[i] = fmt.Sprintf("typedef %s %s;", td.oldExpr, td.newName)
	}
	return strings.Join(lines, "\n"), nil
}
