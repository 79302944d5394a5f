package render

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/arthur-debert/tela/pkg/color"
	"github.com/arthur-debert/tela/pkg/engine"
	"github.com/arthur-debert/tela/pkg/logging"
	"github.com/arthur-debert/tela/pkg/registry"
	"github.com/arthur-debert/tela/pkg/style"
	"github.com/arthur-debert/tela/pkg/tags"
	"github.com/arthur-debert/tela/pkg/theme"
)

const defaultWidth = 80

// Config assembles a Renderer. Zero values get sensible defaults:
// nil Engine means the Jinja-compatible backend, nil Theme the
// embedded default theme, zero Width terminal detection.
type Config struct {
	Templates *registry.Resources
	Theme     *theme.Theme
	Engine    engine.Engine
	Palette   *color.Palette
	Providers *Providers

	// Mode may be ModeAuto; it resolves against Sink
	Mode OutputMode
	// Sink is only consulted for mode and width detection; the
	// renderer returns strings and never writes
	Sink io.Writer
	// Variant overrides light/dark background detection
	Variant style.Variant
	// Width of 0 means detect, falling back to 80
	Width int
	// Profile forces a termenv color profile instead of detecting
	// from Sink; mostly for tests and --color flags
	Profile *termenv.Profile
	// Debug disables compiled-template caching for file-backed
	// templates so edits show up without restart
	Debug bool
	// StrictTags errors on unknown style tags instead of passing
	// them through
	StrictTags bool
}

// Renderer runs the full pipeline for one configuration
type Renderer struct {
	templates *registry.Resources
	theme     *theme.Theme
	engine    engine.Engine
	palette   *color.Palette
	providers *Providers
	lip       *lipgloss.Renderer

	mode    OutputMode
	variant style.Variant
	width   int
	debug   bool
	strict  bool

	styles *style.Registry
}

// New builds a renderer, validating the theme's alias graph up front
func New(cfg Config) (*Renderer, error) {
	logger := logging.GetLogger("render")

	sink := cfg.Sink
	if sink == nil {
		sink = os.Stdout
	}
	th := cfg.Theme
	if th == nil {
		th = theme.Default()
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}
	eng := cfg.Engine
	if eng == nil {
		eng = engine.NewJinja(cfg.Templates)
	}
	palette := cfg.Palette
	if palette == nil {
		palette = color.DefaultPalette()
	}
	providers := cfg.Providers
	if providers == nil {
		providers = NewProviders()
	}

	lip := lipgloss.NewRenderer(sink)
	if cfg.Profile != nil {
		lip.SetColorProfile(*cfg.Profile)
	}
	mode := DetectMode(cfg.Mode, sink)

	variant := cfg.Variant
	if variant == style.VariantNone {
		if lip.HasDarkBackground() {
			variant = style.VariantDark
		} else {
			variant = style.VariantLight
		}
	}

	width := cfg.Width
	if width == 0 {
		width = detectWidth(sink)
	}

	r := &Renderer{
		templates: cfg.Templates,
		theme:     th,
		engine:    eng,
		palette:   palette,
		providers: providers,
		lip:       lip,
		mode:      mode,
		variant:   variant,
		width:     width,
		debug:     cfg.Debug,
		strict:    cfg.StrictTags,
		styles:    th.ResolveStyles(variant),
	}

	logger.Debug().
		Str("mode", mode.String()).
		Str("variant", variant.String()).
		Int("width", width).
		Str("theme", th.Name()).
		Str("engine", eng.Name()).
		Msg("renderer configured")
	return r, nil
}

func detectWidth(sink io.Writer) int {
	if f, ok := sink.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// Mode returns the resolved output mode
func (r *Renderer) Mode() OutputMode { return r.mode }

// Width returns the layout width
func (r *Renderer) Width() int { return r.width }

// Theme returns the active theme
func (r *Renderer) Theme() *theme.Theme { return r.theme }

// Render looks up a registered template by name and runs the
// pipeline over data
func (r *Renderer) Render(name string, data map[string]interface{}) (string, error) {
	if r.mode.Structured() {
		return serialize(r.mode, data)
	}
	res, err := r.templates.Lookup(name)
	if err != nil {
		return "", err
	}
	cacheable := res.Kind != registry.EntryFile || !r.debug
	return r.pipeline(res.Name, res.Content, data, cacheable)
}

// RenderString runs the pipeline over an inline template source
func (r *Renderer) RenderString(source string, data map[string]interface{}) (string, error) {
	if r.mode.Structured() {
		return serialize(r.mode, data)
	}
	return r.pipeline(source, source, data, false)
}

func (r *Renderer) pipeline(name, source string, data map[string]interface{}, cacheable bool) (string, error) {
	logger := logging.GetLogger("render")
	start := time.Now()

	merged := r.providers.Collect(Context{
		Mode:      r.mode,
		Width:     r.width,
		ThemeName: r.theme.Name(),
		Data:      data,
	})
	for k, v := range data {
		merged[k] = v
	}

	engine.SetLayoutWidth(r.width)
	expanded, err := r.engine.Expand(name, source, merged, cacheable)
	if err != nil {
		return "", err
	}

	proc := tags.New(r.styles, r.palette, r.lip)
	if r.strict {
		proc = proc.WithPolicy(tags.UnknownStrict)
	}
	out, err := proc.Process(expanded, r.mode.transform())
	if err != nil {
		return "", err
	}

	logger.Trace().Str("template", name).Int("bytes", len(out)).Msg("pipeline complete")
	logging.LogDuration(start, "render")
	return out, nil
}

// RenderMessage styles a one-line informational message
func (r *Renderer) RenderMessage(msg string) string {
	out, err := r.RenderString("[info]{{ msg }}[/info]", map[string]interface{}{"msg": msg})
	if err != nil {
		return msg
	}
	return out
}

// RenderError styles an error for terminal display
func (r *Renderer) RenderError(err error) string {
	out, rerr := r.RenderString("[error]{{ msg }}[/error]",
		map[string]interface{}{"msg": err.Error()})
	if rerr != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}

// Refresh re-reads file-backed templates and the theme, then
// re-resolves the style registry
func (r *Renderer) Refresh() error {
	if r.templates != nil {
		if err := r.templates.Refresh(); err != nil {
			return err
		}
	}
	if r.theme.Path() != "" {
		if err := r.theme.Refresh(); err != nil {
			return err
		}
	}
	r.styles = r.theme.ResolveStyles(r.variant)
	return nil
}
