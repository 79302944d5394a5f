package engine

import (
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/logging"
	"github.com/arthur-debert/tela/pkg/registry"
)

// maxIncludeDepth bounds include chains so a template that includes
// itself fails instead of recursing until the stack blows.
const maxIncludeDepth = 64

// Jinja is the pongo2-backed engine. Includes are resolved through the
// template registry, so {% include "partial" %} finds partial.jinja
// the same way a top-level lookup would.
type Jinja struct {
	set    *pongo2.TemplateSet
	loader *registryLoader

	mu    sync.Mutex
	cache map[string]compiled
}

type compiled struct {
	source string
	tpl    *pongo2.Template
}

// NewJinja creates a pongo2 engine backed by the given template
// registry. A nil registry disables includes.
func NewJinja(templates *registry.Resources) *Jinja {
	registerFilters()
	loader := &registryLoader{templates: templates}
	return &Jinja{
		set:    pongo2.NewSet("tela", loader),
		loader: loader,
		cache:  make(map[string]compiled),
	}
}

func (e *Jinja) Name() string { return "jinja" }

func (e *Jinja) Expand(name, source string, data map[string]interface{}, cacheable bool) (string, error) {
	logger := logging.GetLogger("engine")

	tpl, err := e.compile(name, source, cacheable)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrParseError,
			"failed to parse template %q", name)
	}

	ctx := pongo2.Context{}
	for k, v := range data {
		ctx[k] = v
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderError,
			"failed to render template %q", name)
	}

	logger.Trace().Str("template", name).Int("bytes", len(out)).Msg("template expanded")
	return out, nil
}

func (e *Jinja) compile(name, source string, cacheable bool) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cacheable {
		if c, ok := e.cache[name]; ok && c.source == source {
			return c.tpl, nil
		}
	}

	e.loader.depth = 0
	tpl, err := e.set.FromString(source)
	if err != nil {
		return nil, err
	}
	if cacheable {
		e.cache[name] = compiled{source: source, tpl: tpl}
	}
	return tpl, nil
}

// registryLoader adapts the template registry to pongo2's loader
// interface. pongo2 resolves includes at parse time, so depth tracks
// nested parses within a single compile.
type registryLoader struct {
	templates *registry.Resources
	depth     int
}

func (l *registryLoader) Abs(base, name string) string {
	return name
}

func (l *registryLoader) Get(path string) (io.Reader, error) {
	if l.templates == nil {
		return nil, errors.Newf(errors.ErrTemplateNotFound,
			"no template registry configured, cannot include %q", path)
	}
	l.depth++
	if l.depth > maxIncludeDepth {
		return nil, errors.Newf(errors.ErrRenderError,
			"include depth exceeded %d resolving %q, template includes itself?",
			maxIncludeDepth, path)
	}
	content, err := l.templates.Get(path)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(content), nil
}
