// Package render renders fragment section text through Go's text/template
// engine in strict mode.
//
// The RTOS fragment files use [[ and ]] as template delimiters so that
// template actions never collide with C block comments or operators. Any
// referenced configuration key that is absent from the supplied data is a
// hard failure, never an empty substitution.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Options is an immutable render context. It is fixed at Renderer
// construction and applies to every render call, so there is no process-wide
// mutable template state to coordinate if callers ever run concurrently.
type Options struct {
	LeftDelim  string
	RightDelim string
	// Strict makes any reference to a missing configuration key a render
	// error instead of an empty substitution.
	Strict bool
}

// DefaultOptions returns the options used for RTOS fragment sections.
func DefaultOptions() Options {
	return Options{
		LeftDelim:  "[[",
		RightDelim: "]]",
		Strict:     true,
	}
}

// Renderer handles template parsing and rendering with caching.
type Renderer struct {
	opts    Options
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // protect cache for concurrent access
}

// New creates a renderer with built-in helper functions.
func New(opts Options) *Renderer {
	return &Renderer{
		opts:    opts,
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	tmpl := template.New(name).
		Funcs(r.funcMap).
		Delims(r.opts.LeftDelim, r.opts.RightDelim)
	if r.opts.Strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[name] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing).
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,
	}
}
