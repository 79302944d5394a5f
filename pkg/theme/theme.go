// Package theme holds named collections of style definitions with
// adaptive light/dark overrides and alias chains. Themes load from
// YAML or CSS documents, merge right-wins, and materialize into a
// style registry for one output variant.
package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/logging"
	"github.com/arthur-debert/tela/pkg/style"
)

// Theme is an ordered mapping from style name to definition, tagged
// with an optional source file for refresh-from-disk.
type Theme struct {
	name  string
	path  string
	order []string
	defs  map[string]style.Definition
}

// New returns an empty theme with the given name
func New(name string) *Theme {
	return &Theme{
		name: name,
		defs: make(map[string]style.Definition),
	}
}

// Name returns the theme name
func (t *Theme) Name() string {
	return t.name
}

// Path returns the source file path, empty for programmatic themes
func (t *Theme) Path() string {
	return t.path
}

// Names returns the style names in definition order
func (t *Theme) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of definitions
func (t *Theme) Len() int {
	return len(t.defs)
}

// Get returns the definition for a name
func (t *Theme) Get(name string) (style.Definition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Add registers a definition, replacing any previous entry of the
// same name while keeping its original position.
func (t *Theme) Add(name string, def style.Definition) *Theme {
	if _, exists := t.defs[name]; !exists {
		t.order = append(t.order, name)
	}
	t.defs[name] = def
	return t
}

// Merge returns a new theme where entries from other overwrite
// entries in t. For a name present in both as concrete definitions,
// the base comes from other while missing light/dark overrides fall
// back to t's. An alias on either side is taken wholesale from other.
func (t *Theme) Merge(other *Theme) *Theme {
	out := New(t.name)
	out.path = t.path
	for _, name := range t.order {
		out.Add(name, t.defs[name])
	}
	for _, name := range other.order {
		right := other.defs[name]
		left, both := out.defs[name]
		if !both || right.IsAlias() || left.IsAlias() {
			out.Add(name, right)
			continue
		}
		merged := right
		if merged.Light == nil {
			merged.Light = left.Light
		}
		if merged.Dark == nil {
			merged.Dark = left.Dark
		}
		out.Add(name, merged)
	}
	return out
}

// ResolveStyles materializes a style registry for one variant. Each
// concrete definition contributes its variant-merged attributes;
// aliases are recorded unchanged so the registry resolves them at
// apply time.
func (t *Theme) ResolveStyles(v style.Variant) *style.Registry {
	reg := style.NewRegistry()
	for _, name := range t.order {
		def := t.defs[name]
		if def.IsAlias() {
			reg.AddAlias(name, def.Alias)
			continue
		}
		reg.Add(name, def.ForVariant(v))
	}
	return reg
}

// Validate checks every alias chain terminates on a concrete style
func (t *Theme) Validate() error {
	return t.ResolveStyles(style.VariantNone).Validate()
}

// FromFile loads a theme from a YAML or CSS file; the theme name
// derives from the file stem.
func FromFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLoadError, "reading theme file %s", path)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var t *Theme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		t, err = FromCSS(stem, data)
	default:
		t, err = FromYAML(stem, data)
	}
	if err != nil {
		return nil, err
	}
	t.path = path
	return t, nil
}

// Refresh re-reads the theme from its source file. Themes without a
// source cannot refresh.
func (t *Theme) Refresh() error {
	if t.path == "" {
		return errors.Newf(errors.ErrLoadError, "theme %q has no source file to refresh from", t.name)
	}
	log := logging.GetLogger("theme")
	log.Debug().Str("theme", t.name).Str("path", t.path).Msg("Refreshing theme from disk")

	fresh, err := FromFile(t.path)
	if err != nil {
		return err
	}
	t.order = fresh.order
	t.defs = fresh.defs
	return nil
}
