package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/registry"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestInlinePriority(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"status.jinja": "from file"})

	r := registry.NewTemplates(false)
	r.AddDir(dir)
	r.AddInline("status", "from inline")

	got, err := r.Get("status")
	require.NoError(t, err)
	assert.Equal(t, "from inline", got)

	// The full file name remains reachable
	got, err = r.Get("status.jinja")
	require.NoError(t, err)
	assert.Equal(t, "from file", got)
}

func TestExtensionPriority(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"list.j2":    "lower priority",
		"list.jinja": "higher priority",
		"list.txt":   "lowest priority",
	})

	r := registry.NewTemplates(false)
	r.AddDir(dir)

	t.Run("bare_name_uses_priority", func(t *testing.T) {
		got, err := r.Get("list")
		require.NoError(t, err)
		assert.Equal(t, "higher priority", got)
	})

	t.Run("full_names_stay_reachable", func(t *testing.T) {
		for name, want := range map[string]string{
			"list.jinja": "higher priority",
			"list.j2":    "lower priority",
			"list.txt":   "lowest priority",
		} {
			got, err := r.Get(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}
	})
}

func TestCrossDirectoryFirstRegisteredWins(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFiles(t, dirA, map[string]string{"page.jinja": "from A"})
	writeFiles(t, dirB, map[string]string{"page.jinja": "from B"})

	r := registry.NewTemplates(false)
	r.AddDir(dirA)
	r.AddDir(dirB)

	got, err := r.Get("page")
	require.NoError(t, err)
	assert.Equal(t, "from A", got)
}

func TestSubdirectoryKeys(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		filepath.Join("widgets", "card.jinja"): "card body",
	})

	r := registry.NewTemplates(false)
	r.AddDir(dir)

	got, err := r.Get("widgets/card")
	require.NoError(t, err)
	assert.Equal(t, "card body", got)

	got, err = r.Get("widgets/card.jinja")
	require.NoError(t, err)
	assert.Equal(t, "card body", got)
}

func TestEmbedded(t *testing.T) {
	r := registry.NewStylesheets(false)
	r.AddEmbedded([]registry.EmbeddedResource{
		{Path: "themes/default.yaml", Content: "ok: green"},
	})

	t.Run("bare_and_full", func(t *testing.T) {
		got, err := r.Get("themes/default")
		require.NoError(t, err)
		assert.Equal(t, "ok: green", got)

		got, err = r.Get("themes/default.yaml")
		require.NoError(t, err)
		assert.Equal(t, "ok: green", got)
	})

	t.Run("embedded_survives_refresh", func(t *testing.T) {
		require.NoError(t, r.Refresh())
		got, err := r.Get("themes/default")
		require.NoError(t, err)
		assert.Equal(t, "ok: green", got)
	})
}

func TestStylesheetExtensionPriority(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"dark.yaml": "a: bold",
		"dark.yml":  "a: dim",
	})

	r := registry.NewStylesheets(false)
	r.AddDir(dir)

	got, err := r.Get("dark")
	require.NoError(t, err)
	assert.Equal(t, "a: bold", got)
}

func TestMissErrors(t *testing.T) {
	t.Run("template_miss", func(t *testing.T) {
		r := registry.NewTemplates(false)
		_, err := r.Get("ghost")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	})

	t.Run("stylesheet_miss", func(t *testing.T) {
		r := registry.NewStylesheets(false)
		_, err := r.Get("ghost")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))
	})
}

func TestDebugReread(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.jinja")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	t.Run("debug_sees_changes", func(t *testing.T) {
		r := registry.NewTemplates(true)
		r.AddDir(dir)

		got, err := r.Get("live")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)

		require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
		got, err = r.Get("live")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)
	})

	t.Run("release_caches_first_read", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
		r := registry.NewTemplates(false)
		r.AddDir(dir)

		got, err := r.Get("live")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)

		require.NoError(t, os.WriteFile(path, []byte("v3"), 0644))
		got, err = r.Get("live")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)
	})
}

func TestLazyScan(t *testing.T) {
	// Registering a directory that does not exist yet is fine as long
	// as it exists by the first lookup.
	dir := filepath.Join(t.TempDir(), "later")

	r := registry.NewTemplates(false)
	r.AddDir(dir)

	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jinja"), []byte("hi"), 0644))

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"x.jinja": "x"})

	r := registry.NewTemplates(false)
	r.AddDir(dir)
	r.AddInline("y", "y")

	names := r.Names()
	assert.Contains(t, names, "x")
	assert.Contains(t, names, "x.jinja")
	assert.Contains(t, names, "y")
}

func TestGenericRegistry(t *testing.T) {
	r := registry.New[int]()
	require.NoError(t, r.Register("one", 1))

	t.Run("duplicate_fails", func(t *testing.T) {
		err := r.Register("one", 2)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("get", func(t *testing.T) {
		v, err := r.Get("one")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := r.Get("two")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("empty_name", func(t *testing.T) {
		err := r.Register("", 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
