// Package engine abstracts template expansion. The default backend is
// pongo2, a Jinja2-compatible engine; a substitution-only backend
// covers callers that only need variable interpolation. Both expand a
// source string against JSON-shaped data and resolve includes through
// a template registry.
package engine

import (
	"sync"
)

// Engine expands template sources against JSON-shaped data.
type Engine interface {
	// Name identifies the backend
	Name() string

	// Expand renders source with data. name keys the compiled-template
	// cache; cacheable=false forces recompilation, which file-backed
	// templates need in debug mode.
	Expand(name, source string, data map[string]interface{}, cacheable bool) (string, error)
}

// layoutWidth is the terminal width the table filter lays out
// against. The core is single-threaded per invocation; the renderer
// sets this before each expansion. The mutex only guards callers that
// multiplex invocations across goroutines.
var (
	layoutMu    sync.RWMutex
	layoutWidth = 80
)

// SetLayoutWidth sets the width used by layout-aware filters
func SetLayoutWidth(w int) {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	if w > 0 {
		layoutWidth = w
	}
}

// LayoutWidth returns the width used by layout-aware filters
func LayoutWidth() int {
	layoutMu.RLock()
	defer layoutMu.RUnlock()
	return layoutWidth
}
