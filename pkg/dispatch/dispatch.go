package dispatch

import (
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/logging"
	"github.com/arthur-debert/tela/pkg/registry"
	"github.com/arthur-debert/tela/pkg/render"
)

// Args holds parsed argument names to values
type Args map[string]interface{}

// CommandContext is what handlers and hooks see about the invocation
type CommandContext struct {
	Mode        render.OutputMode
	CommandPath []string
	// AppState is an opaque bag of shared resources owned by the
	// caller
	AppState map[string]interface{}
}

// Handler produces a typed result for one command
type Handler func(args Args, ctx CommandContext) (Output, error)

// PreHook runs before the handler; a failure aborts the invocation
type PreHook func(args Args, ctx CommandContext) error

// PostDispatchHook transforms the serialized handler value
type PostDispatchHook func(data map[string]interface{}, ctx CommandContext) (map[string]interface{}, error)

// PostOutputHook sees the final output; it may transform or abort
type PostOutputHook func(out *Rendered, ctx CommandContext) error

// Recipe binds a command path to a handler, a template, and hooks
type Recipe struct {
	// Path is the dotted command path, e.g. "task.list"
	Path string
	// Template names the template rendered for OutputRender results;
	// empty defaults to the path with dots as dashes
	Template string
	Handler  Handler

	Pre        []PreHook
	Post       []PostDispatchHook
	PostOutput []PostOutputHook
}

func (r *Recipe) template() string {
	if r.Template != "" {
		return r.Template
	}
	return strings.ReplaceAll(r.Path, ".", "-")
}

// Router owns the routing table and the renderer
type Router struct {
	recipes  registry.Registry[*Recipe]
	renderer *render.Renderer
}

// NewRouter creates an empty routing table over a renderer
func NewRouter(renderer *render.Renderer) *Router {
	return &Router{
		recipes:  registry.New[*Recipe](),
		renderer: renderer,
	}
}

// Register adds a recipe, rejecting empty paths, nil handlers, and
// duplicate registrations
func (r *Router) Register(recipe *Recipe) error {
	if recipe == nil || recipe.Handler == nil {
		return errors.New(errors.ErrInvalidInput, "recipe needs a handler")
	}
	return r.recipes.Register(recipe.Path, recipe)
}

// Paths lists registered command paths
func (r *Router) Paths() []string {
	return r.recipes.List()
}

// Dispatch runs the full invocation for a dotted path: pre hooks,
// handler, post-dispatch hooks, rendering, post-output hooks. Hooks
// run in registration order; the first failure short-circuits and is
// never retried.
func (r *Router) Dispatch(path string, args Args, appState map[string]interface{}) (*Rendered, error) {
	logger := logging.GetLogger("dispatch")

	recipe, err := r.recipes.Get(path)
	if err != nil {
		return nil, err
	}
	ctx := CommandContext{
		Mode:        r.renderer.Mode(),
		CommandPath: strings.Split(path, "."),
		AppState:    appState,
	}
	logger.Debug().Str("path", path).Msg("dispatching")

	for _, hook := range recipe.Pre {
		if err := hook(args, ctx); err != nil {
			return nil, hookError(err, "pre-dispatch", path)
		}
	}

	out, err := recipe.Handler(args, ctx)
	if err != nil {
		return nil, err
	}

	switch out.Kind {
	case OutputSilent:
		rendered := &Rendered{Kind: OutputSilent}
		if err := r.postOutput(recipe, rendered, ctx); err != nil {
			return nil, err
		}
		return rendered, nil

	case OutputBinary:
		rendered := &Rendered{Kind: OutputBinary, Bytes: out.Bytes, Filename: out.Filename}
		if err := r.postOutput(recipe, rendered, ctx); err != nil {
			return nil, err
		}
		return rendered, nil

	default:
		data, err := toMap(out.Value)
		if err != nil {
			return nil, err
		}
		for _, hook := range recipe.Post {
			data, err = hook(data, ctx)
			if err != nil {
				return nil, hookError(err, "post-dispatch", path)
			}
		}
		text, err := r.renderer.Render(recipe.template(), data)
		if err != nil {
			return nil, err
		}
		rendered := &Rendered{Kind: OutputRender, Text: text}
		if err := r.postOutput(recipe, rendered, ctx); err != nil {
			return nil, err
		}
		return rendered, nil
	}
}

func (r *Router) postOutput(recipe *Recipe, out *Rendered, ctx CommandContext) error {
	for _, hook := range recipe.PostOutput {
		if err := hook(out, ctx); err != nil {
			return hookError(err, "post-output", recipe.Path)
		}
	}
	return nil
}

func hookError(err error, phase, path string) error {
	return errors.Wrapf(err, errors.ErrHookError, "%s hook failed for %s", phase, path).
		WithDetail("phase", phase).
		WithDetail("path", path)
}
