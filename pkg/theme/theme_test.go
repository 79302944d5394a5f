package theme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/style"
	"github.com/arthur-debert/tela/pkg/theme"
)

func TestFromYAML(t *testing.T) {
	doc := []byte(`
header:
  bold: true
  light: {fg: black}
  dark: {fg: white}
ok: green
warning: yellow bold
strong: emphasis
emphasis: bold
`)

	th, err := theme.FromYAML("test", doc)
	require.NoError(t, err)
	assert.Equal(t, "test", th.Name())
	assert.Equal(t, []string{"header", "ok", "warning", "strong", "emphasis"}, th.Names())

	t.Run("map_with_variants", func(t *testing.T) {
		def, ok := th.Get("header")
		require.True(t, ok)
		assert.False(t, def.IsAlias())
		require.NotNil(t, def.Base.Bold)
		require.NotNil(t, def.Light)
		require.NotNil(t, def.Dark)
		assert.Equal(t, "black", def.Light.FG.String())
		assert.Equal(t, "white", def.Dark.FG.String())
	})

	t.Run("shorthand_single_color", func(t *testing.T) {
		def, ok := th.Get("ok")
		require.True(t, ok)
		require.NotNil(t, def.Base.FG)
		assert.Equal(t, "green", def.Base.FG.String())
	})

	t.Run("shorthand_color_and_flag", func(t *testing.T) {
		def, ok := th.Get("warning")
		require.True(t, ok)
		require.NotNil(t, def.Base.FG)
		require.NotNil(t, def.Base.Bold)
	})

	t.Run("bare_identifier_naming_a_style_is_alias", func(t *testing.T) {
		def, ok := th.Get("strong")
		require.True(t, ok)
		assert.True(t, def.IsAlias())
		assert.Equal(t, "emphasis", def.Alias)
	})

	t.Run("bare_flag_word_not_naming_a_style_is_shorthand", func(t *testing.T) {
		def, ok := th.Get("emphasis")
		require.True(t, ok)
		assert.False(t, def.IsAlias())
		require.NotNil(t, def.Base.Bold)
	})
}

func TestFromYAMLErrors(t *testing.T) {
	t.Run("malformed_document", func(t *testing.T) {
		_, err := theme.FromYAML("bad", []byte("a: [unclosed"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParseError))
	})

	t.Run("unknown_attribute", func(t *testing.T) {
		_, err := theme.FromYAML("bad", []byte("x:\n  shimmer: true"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownAttribute))
	})

	t.Run("top_level_sequence", func(t *testing.T) {
		_, err := theme.FromYAML("bad", []byte("- a\n- b"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParseError))
	})
}

func TestFromCSS(t *testing.T) {
	doc := []byte(`
.error, .critical {
	color: red;
	font-weight: bold;
}
.note {
	font-style: italic;
	text-decoration: underline;
}
@media (prefers-color-scheme: dark) {
	.note { color: white; }
}
@media (prefers-color-scheme: light) {
	.note { color: black; }
}
`)

	th, err := theme.FromCSS("css-test", doc)
	require.NoError(t, err)

	t.Run("comma_selectors_define_both", func(t *testing.T) {
		for _, name := range []string{"error", "critical"} {
			def, ok := th.Get(name)
			require.True(t, ok, name)
			require.NotNil(t, def.Base.FG, name)
			assert.Equal(t, "red", def.Base.FG.String())
			require.NotNil(t, def.Base.Bold, name)
		}
	})

	t.Run("media_queries_fill_variants", func(t *testing.T) {
		def, ok := th.Get("note")
		require.True(t, ok)
		require.NotNil(t, def.Base.Italic)
		require.NotNil(t, def.Base.Underline)
		require.NotNil(t, def.Dark)
		assert.Equal(t, "white", def.Dark.FG.String())
		require.NotNil(t, def.Light)
		assert.Equal(t, "black", def.Light.FG.String())
	})
}

func TestMerge(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	left := theme.New("left").
		Add("a", style.Concrete(style.Attributes{Bold: boolPtr(true)})).
		Add("b", style.Concrete(style.Attributes{Italic: boolPtr(true)})).
		Add("al", style.AliasOf("a"))

	rightDark := style.Attributes{Dim: boolPtr(true)}
	right := theme.New("right").
		Add("b", style.Definition{Base: style.Attributes{Underline: boolPtr(true)}, Dark: &rightDark}).
		Add("c", style.Concrete(style.Attributes{Bold: boolPtr(true)})).
		Add("al", style.AliasOf("c"))

	merged := left.Merge(right)

	t.Run("left_only_survives", func(t *testing.T) {
		def, ok := merged.Get("a")
		require.True(t, ok)
		require.NotNil(t, def.Base.Bold)
	})

	t.Run("right_overwrites_base", func(t *testing.T) {
		def, ok := merged.Get("b")
		require.True(t, ok)
		assert.Nil(t, def.Base.Italic)
		require.NotNil(t, def.Base.Underline)
		require.NotNil(t, def.Dark)
	})

	t.Run("right_only_added", func(t *testing.T) {
		_, ok := merged.Get("c")
		assert.True(t, ok)
	})

	t.Run("alias_retargeted", func(t *testing.T) {
		def, ok := merged.Get("al")
		require.True(t, ok)
		assert.True(t, def.IsAlias())
		assert.Equal(t, "c", def.Alias)
	})
}

func TestResolveStyles(t *testing.T) {
	doc := []byte(`
base:
  bold: true
  light: {fg: black}
  dark: {fg: white}
link: base
`)
	th, err := theme.FromYAML("t", doc)
	require.NoError(t, err)

	t.Run("variant_selected", func(t *testing.T) {
		reg := th.ResolveStyles(style.VariantDark)
		attrs, err := reg.Resolve("base")
		require.NoError(t, err)
		require.NotNil(t, attrs.FG)
		assert.Equal(t, "white", attrs.FG.String())
	})

	t.Run("alias_recorded_unchanged", func(t *testing.T) {
		reg := th.ResolveStyles(style.VariantNone)
		attrs, err := reg.Resolve("link")
		require.NoError(t, err)
		require.NotNil(t, attrs.Bold)
		assert.Nil(t, attrs.FG)
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid_forest", func(t *testing.T) {
		th, err := theme.FromYAML("ok", []byte("a: bold\nb: a\nc: b"))
		require.NoError(t, err)
		assert.NoError(t, th.Validate())
	})

	t.Run("cycle_fails", func(t *testing.T) {
		th := theme.New("cyclic").
			Add("a", style.AliasOf("b")).
			Add("b", style.AliasOf("a"))
		err := th.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCycleDetected))
	})

	t.Run("dangling_fails", func(t *testing.T) {
		th := theme.New("dangling").Add("a", style.AliasOf("missing"))
		err := th.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedAlias))
	})
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mytheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ok: green"), 0644))

	th, err := theme.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mytheme", th.Name())
	assert.Equal(t, path, th.Path())

	t.Run("refresh_picks_up_changes", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("ok: red\nextra: bold"), 0644))
		require.NoError(t, th.Refresh())
		def, ok := th.Get("ok")
		require.True(t, ok)
		assert.Equal(t, "red", def.Base.FG.String())
		_, ok = th.Get("extra")
		assert.True(t, ok)
	})

	t.Run("refresh_without_source_fails", func(t *testing.T) {
		err := theme.New("mem").Refresh()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLoadError))
	})
}

func TestDefaultTheme(t *testing.T) {
	th := theme.Default()
	assert.Greater(t, th.Len(), 5)
	assert.NoError(t, th.Validate())

	def, ok := th.Get("strong")
	require.True(t, ok)
	assert.True(t, def.IsAlias())
}
