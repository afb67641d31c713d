// Package repofind resolves component fragment paths across layered
// repositories.
//
// A client repository may nest the shared core repository somewhere beneath
// it; components in a more specific (closer to the invocation directory)
// repository override same-named components in the core. Lookups probe each
// repository's components/ directory in most-specific-first order and return
// the first path that exists.
package repofind

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// componentsDir is the per-repository directory holding component fragments.
const componentsDir = "components"

// Locator searches an ordered list of repository roots for component
// fragments. Roots are held most specific first.
type Locator struct {
	roots []string
}

// New builds a Locator for the repository layers between topDir (the
// invocation directory, most specific) and coreDir (the shared core
// repository). coreDir must equal topDir or be nested beneath it; every
// directory level between the two is a candidate repository root.
func New(coreDir, topDir string) (*Locator, error) {
	core, err := filepath.Abs(coreDir)
	if err != nil {
		return nil, err
	}
	top, err := filepath.Abs(topDir)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(top, core)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("core repository %s is not inside %s", core, top)
	}

	// Walk from the core up to the top, then reverse so the most specific
	// repository is probed first.
	var roots []string
	for dir := core; ; dir = filepath.Dir(dir) {
		roots = append(roots, dir)
		if dir == top {
			break
		}
	}
	for i, j := 0, len(roots)-1; i < j; i, j = i+1, j-1 {
		roots[i], roots[j] = roots[j], roots[i]
	}

	return &Locator{roots: roots}, nil
}

// NewWithRoots builds a Locator over an explicit list of repository roots,
// most specific first. Used by tests and by callers that already know the
// layering.
func NewWithRoots(roots ...string) *Locator {
	return &Locator{roots: roots}
}

// Candidates returns every absolute path that would be probed for rel,
// most specific first.
func (l *Locator) Candidates(rel string) []string {
	paths := make([]string, 0, len(l.roots))
	for _, root := range l.roots {
		paths = append(paths, filepath.Join(root, componentsDir, rel))
	}
	return paths
}

// Find returns the first existing candidate path for rel. The returned error
// on a miss names every candidate tried.
func (l *Locator) Find(rel string) (string, error) {
	candidates := l.Candidates(rel)
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("unable to find component %q in %v", rel, candidates)
}
