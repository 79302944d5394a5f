package style

import (
	"sort"
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
)

// Registry maps style names to concrete attributes plus an alias
// table. Aliases are recorded unresolved so the chain is walked at
// apply time; validation proves every chain terminates on a concrete
// style without looping.
type Registry struct {
	styles  map[string]Attributes
	aliases map[string]string
}

// NewRegistry returns an empty style registry
func NewRegistry() *Registry {
	return &Registry{
		styles:  make(map[string]Attributes),
		aliases: make(map[string]string),
	}
}

// Add registers concrete attributes under a name, replacing any
// previous entry (including an alias of the same name).
func (r *Registry) Add(name string, attrs Attributes) {
	delete(r.aliases, name)
	r.styles[name] = attrs
}

// AddAlias registers name as an alias for target
func (r *Registry) AddAlias(name, target string) {
	delete(r.styles, name)
	r.aliases[name] = target
}

// Has reports whether name is known, concretely or as an alias
func (r *Registry) Has(name string) bool {
	if _, ok := r.styles[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Names returns all registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles)+len(r.aliases))
	for name := range r.styles {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve follows the alias chain from name to concrete attributes.
// It fails with UNRESOLVED_ALIAS when a target is missing and with
// CYCLE_DETECTED when a name repeats along the chain.
func (r *Registry) Resolve(name string) (Attributes, error) {
	visited := make(map[string]bool)
	var path []string

	current := name
	for {
		if attrs, ok := r.styles[current]; ok {
			return attrs, nil
		}
		target, ok := r.aliases[current]
		if !ok {
			if current == name {
				return Attributes{}, errors.Newf(errors.ErrNotFound, "style %q not found", name)
			}
			return Attributes{}, errors.Newf(errors.ErrUnresolvedAlias, "alias target %q does not exist", current).
				WithDetail("from", path[len(path)-1]).
				WithDetail("to", current)
		}
		if visited[current] {
			path = append(path, current)
			return Attributes{}, errors.Newf(errors.ErrCycleDetected, "alias cycle: %s", strings.Join(path, " -> ")).
				WithDetail("path", path)
		}
		visited[current] = true
		path = append(path, current)
		current = target
	}
}

// Validate walks every alias chain once and returns the first
// resolution failure. Cycle detection is per chain; re-walking shared
// suffixes across chains is fine at these sizes.
func (r *Registry) Validate() error {
	names := make([]string, 0, len(r.aliases))
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := r.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}
