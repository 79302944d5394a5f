package render_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tela/pkg/engine"
	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/registry"
	"github.com/arthur-debert/tela/pkg/render"
	"github.com/arthur-debert/tela/pkg/style"
	"github.com/arthur-debert/tela/pkg/theme"
)

func TestMain(m *testing.M) {
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(io.Discard))
	m.Run()
}

func testRenderer(t *testing.T, mode render.OutputMode) *render.Renderer {
	t.Helper()
	templates := registry.NewTemplates(false)
	templates.AddInline("greet.jinja", "[ok]hello {{ name }}[/ok]")
	templates.AddInline("status.jinja", "{{ count }} items")

	r, err := render.New(render.Config{
		Templates: templates,
		Mode:      mode,
		Sink:      &bytes.Buffer{},
		Variant:   style.VariantDark,
		Width:     80,
	})
	require.NoError(t, err)
	return r
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"auto", "term", "text", "term-debug", "json", "yaml", "xml", "csv"} {
		m, err := render.ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := render.ParseMode("bogus")
	assert.Error(t, err)
}

func TestDetectModeNonTerminal(t *testing.T) {
	assert.Equal(t, render.ModeText, render.DetectMode(render.ModeAuto, &bytes.Buffer{}))
	assert.Equal(t, render.ModeTerm, render.DetectMode(render.ModeTerm, &bytes.Buffer{}))
	assert.Equal(t, render.ModeJSON, render.DetectMode(render.ModeJSON, &bytes.Buffer{}))
}

func TestRenderTermModeAppliesAnsi(t *testing.T) {
	templates := registry.NewTemplates(false)
	templates.AddInline("greet.jinja", "[ok]{{ msg }}[/ok]")

	profile := termenv.ANSI
	r, err := render.New(render.Config{
		Templates: templates,
		Mode:      render.ModeTerm,
		Sink:      &bytes.Buffer{},
		Variant:   style.VariantDark,
		Width:     80,
		Profile:   &profile,
	})
	require.NoError(t, err)

	// the default theme maps ok to green
	out, err := r.Render("greet", map[string]interface{}{"msg": "hi"})
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[32m")
	assert.Contains(t, out, "hi")
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
}

func TestRenderTextMode(t *testing.T) {
	r := testRenderer(t, render.ModeText)

	out, err := r.Render("greet", map[string]interface{}{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestRenderTermDebugKeepsTags(t *testing.T) {
	r := testRenderer(t, render.ModeTermDebug)

	out, err := r.Render("greet", map[string]interface{}{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "[ok]hello world[/ok]", out)
}

func TestRenderMissingTemplate(t *testing.T) {
	r := testRenderer(t, render.ModeText)

	_, err := r.Render("nope", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestRenderString(t *testing.T) {
	r := testRenderer(t, render.ModeText)

	out, err := r.RenderString("count: {{ n }}", map[string]interface{}{"n": 3})
	require.NoError(t, err)
	assert.Equal(t, "count: 3", out)
}

func TestProvidersMergeUnderData(t *testing.T) {
	templates := registry.NewTemplates(false)
	templates.AddInline("t.jinja", "{{ app }}/{{ name }}/{{ width }}")

	providers := render.NewProviders()
	providers.SetValue("app", "tela")
	providers.SetValue("name", "from-provider")
	providers.SetProvider("width", func(ctx render.Context) interface{} {
		return ctx.Width
	})

	r, err := render.New(render.Config{
		Templates: templates,
		Providers: providers,
		Mode:      render.ModeText,
		Sink:      &bytes.Buffer{},
		Variant:   style.VariantDark,
		Width:     42,
	})
	require.NoError(t, err)

	// data key wins over the provider entry of the same name
	out, err := r.Render("t", map[string]interface{}{"name": "from-data"})
	require.NoError(t, err)
	assert.Equal(t, "tela/from-data/42", out)
}

func TestStructuredJSON(t *testing.T) {
	r := testRenderer(t, render.ModeJSON)

	out, err := r.Render("greet", map[string]interface{}{"name": "x", "count": 2})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "x", decoded["name"])
	assert.Equal(t, float64(2), decoded["count"])
}

func TestStructuredYAML(t *testing.T) {
	r := testRenderer(t, render.ModeYAML)

	out, err := r.Render("greet", map[string]interface{}{"name": "x"})
	require.NoError(t, err)
	assert.Contains(t, out, "name: x")
}

func TestStructuredXML(t *testing.T) {
	r := testRenderer(t, render.ModeXML)

	out, err := r.Render("greet", map[string]interface{}{
		"name": "x",
		"tags": []interface{}{"a", "b"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<result>")
	assert.Contains(t, out, "<name>x</name>")
	assert.Contains(t, out, "<tags>a</tags>")
	assert.Contains(t, out, "<tags>b</tags>")
}

func TestStructuredCSV(t *testing.T) {
	r := testRenderer(t, render.ModeCSV)

	out, err := r.Render("greet", map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"name": "one", "n": 1},
			map[string]interface{}{"name": "two", "n": 2},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "n,name", lines[0])
	assert.Equal(t, "1,one", lines[1])
	assert.Equal(t, "2,two", lines[2])
}

func TestStructuredCSVScalarsOnly(t *testing.T) {
	r := testRenderer(t, render.ModeCSV)

	out, err := r.Render("greet", map[string]interface{}{"name": "x", "n": 1})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "n,name", lines[0])
	assert.Equal(t, "1,x", lines[1])
}

func TestStrictTags(t *testing.T) {
	templates := registry.NewTemplates(false)
	templates.AddInline("t.jinja", "[nosuch]x[/nosuch]")

	r, err := render.New(render.Config{
		Templates:  templates,
		Mode:       render.ModeText,
		Sink:       &bytes.Buffer{},
		Variant:    style.VariantDark,
		Width:      80,
		StrictTags: true,
	})
	require.NoError(t, err)

	_, err = r.Render("t", nil)
	require.Error(t, err)
}

func TestInvalidThemeRejected(t *testing.T) {
	th := theme.New("broken").Add("a", style.AliasOf("missing"))

	_, err := render.New(render.Config{
		Theme:   th,
		Mode:    render.ModeText,
		Sink:    &bytes.Buffer{},
		Variant: style.VariantDark,
	})
	require.Error(t, err)
}

func TestSubstEngineSelection(t *testing.T) {
	templates := registry.NewTemplates(false)
	templates.AddInline("t.jinja", "hi {{ name }}")

	r, err := render.New(render.Config{
		Templates: templates,
		Engine:    engine.NewSubst(),
		Mode:      render.ModeText,
		Sink:      &bytes.Buffer{},
		Variant:   style.VariantDark,
		Width:     80,
	})
	require.NoError(t, err)

	out, err := r.Render("t", map[string]interface{}{"name": "sub"})
	require.NoError(t, err)
	assert.Equal(t, "hi sub", out)
}

func TestRenderMessageAndError(t *testing.T) {
	r := testRenderer(t, render.ModeText)

	assert.Equal(t, "all good", r.RenderMessage("all good"))
	assert.Equal(t, "boom", r.RenderError(errors.New(errors.ErrInternal, "boom")))
}

func TestStyleFilterThroughPipeline(t *testing.T) {
	templates := registry.NewTemplates(false)
	templates.AddInline("t.jinja", `{{ msg | style:"warning" }}`)

	r, err := render.New(render.Config{
		Templates: templates,
		Mode:      render.ModeTermDebug,
		Sink:      &bytes.Buffer{},
		Variant:   style.VariantDark,
		Width:     80,
	})
	require.NoError(t, err)

	out, err := r.Render("t", map[string]interface{}{"msg": "careful"})
	require.NoError(t, err)
	assert.Equal(t, "[warning]careful[/warning]", out)
}
