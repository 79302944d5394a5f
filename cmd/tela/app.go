package main

import (
	"os"
	"strings"

	"github.com/arthur-debert/tela/pkg/config"
	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/registry"
	"github.com/arthur-debert/tela/pkg/render"
	"github.com/arthur-debert/tela/pkg/theme"
)

// app bundles the configured pipeline for one invocation
type app struct {
	cfg      *config.Config
	theme    *theme.Theme
	renderer *render.Renderer
}

// newApp wires config, registries, theme, and renderer from the
// persistent flags. Flags beat config file values.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if outputMode != "" {
		cfg.Output.Mode = outputMode
	}
	if themeName != "" {
		cfg.Output.Theme = themeName
	}
	if width != 0 {
		cfg.Output.Width = width
	}
	if debug {
		cfg.Debug = true
	}

	mode, err := render.ParseMode(cfg.Output.Mode)
	if err != nil {
		return nil, err
	}

	templates := registry.NewTemplates(cfg.Debug)
	for _, dir := range cfg.Paths.TemplateDirs {
		templates.AddDir(dir)
	}

	th, err := loadTheme(cfg)
	if err != nil {
		return nil, err
	}

	providers := render.NewProviders()
	providers.SetValue("app", "tela")
	providers.SetProvider("theme", func(ctx render.Context) interface{} {
		return ctx.ThemeName
	})
	providers.SetProvider("width", func(ctx render.Context) interface{} {
		return ctx.Width
	})

	renderer, err := render.New(render.Config{
		Templates: templates,
		Theme:     th,
		Providers: providers,
		Mode:      mode,
		Sink:      os.Stdout,
		Width:     cfg.Output.Width,
		Debug:     cfg.Debug,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, theme: th, renderer: renderer}, nil
}

// loadTheme resolves the configured theme: "default" is embedded, a
// path with a slash or known extension loads directly, anything else
// searches the configured theme directories
func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	name := cfg.Output.Theme
	if name == "" || name == "default" {
		return theme.Default(), nil
	}
	if strings.ContainsAny(name, "/\\") || hasStylesheetExt(name) {
		return theme.FromFile(name)
	}

	sheets := registry.NewStylesheets(cfg.Debug)
	for _, dir := range cfg.Paths.ThemeDirs {
		sheets.AddDir(dir)
	}
	res, err := sheets.Lookup(name)
	if err != nil {
		return nil, err
	}
	if res.Path != "" {
		return theme.FromFile(res.Path)
	}
	return theme.FromYAML(name, []byte(res.Content))
}

func hasStylesheetExt(name string) bool {
	for _, ext := range registry.StylesheetExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrNotFound) ||
		errors.IsErrorCode(err, errors.ErrTemplateNotFound) ||
		errors.IsErrorCode(err, errors.ErrThemeNotFound) {
		return 2
	}
	return 1
}
