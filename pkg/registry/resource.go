package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/logging"
)

// TemplateExtensions lists recognized template extensions, highest
// priority first.
var TemplateExtensions = []string{".jinja", ".jinja2", ".j2", ".txt"}

// StylesheetExtensions lists recognized stylesheet extensions,
// highest priority first.
var StylesheetExtensions = []string{".yaml", ".yml"}

// EntryKind discriminates where a resource's content comes from
type EntryKind int

const (
	// EntryInline was registered programmatically with its content
	EntryInline EntryKind = iota
	// EntryFile is backed by a file on disk
	EntryFile
	// EntryEmbedded carries build-time content; its nominal path may
	// not exist on disk.
	EntryEmbedded
)

// Resource is a resolved registry entry
type Resource struct {
	Name    string
	Kind    EntryKind
	Content string
	// Path is the absolute file path for file entries and the nominal
	// path for embedded ones.
	Path string
}

// EmbeddedResource is one build-time generated (path, content) pair
type EmbeddedResource struct {
	Path    string
	Content string
}

type entry struct {
	kind    EntryKind
	content string
	path    string
	ext     string
	loaded  bool
}

// source is one pool of file-like entries, scanned lazily
type source struct {
	dir     string
	scanned bool
	// entries is dual-keyed: both the bare name and the full
	// extension-suffixed name resolve. Same-stem collisions within
	// the source resolve by extension priority.
	entries map[string]*entry
	// embedded sources are pre-populated and never rescanned
	embedded bool
}

// Resources is a multi-source resource registry. Lookup priority:
// inline entries first, then file and embedded sources in
// registration order; the first source holding a name wins.
type Resources struct {
	mu      sync.RWMutex
	label   string
	exts    []string
	missErr errors.ErrorCode
	// debug re-reads file content from disk on every access
	debug   bool
	inline  map[string]*entry
	sources []*source
}

// NewTemplates builds a registry for template sources
func NewTemplates(debug bool) *Resources {
	return &Resources{
		label:   "template",
		exts:    TemplateExtensions,
		missErr: errors.ErrTemplateNotFound,
		debug:   debug,
		inline:  make(map[string]*entry),
	}
}

// NewStylesheets builds a registry for theme documents
func NewStylesheets(debug bool) *Resources {
	return &Resources{
		label:   "stylesheet",
		exts:    StylesheetExtensions,
		missErr: errors.ErrThemeNotFound,
		debug:   debug,
		inline:  make(map[string]*entry),
	}
}

// extPriority returns the priority rank of an extension; lower wins.
// Unrecognized extensions rank below every known one.
func (r *Resources) extPriority(ext string) int {
	for i, e := range r.exts {
		if strings.EqualFold(e, ext) {
			return i
		}
	}
	return len(r.exts)
}

func (r *Resources) recognized(ext string) bool {
	return r.extPriority(ext) < len(r.exts)
}

// AddInline registers content under a name. Inline entries take
// priority over every file source. The name is dual-keyed when it
// carries a recognized extension.
func (r *Resources) AddInline(name, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := &entry{kind: EntryInline, content: content, loaded: true, ext: filepath.Ext(name)}
	r.inline[name] = e
	if ext := filepath.Ext(name); r.recognized(ext) {
		bare := strings.TrimSuffix(name, ext)
		if prev, ok := r.inline[bare]; !ok || r.extPriority(ext) < r.extPriority(prev.ext) {
			r.inline[bare] = e
		}
	}
}

// AddDir registers a directory source. The walk is lazy: files are
// enumerated on first lookup or on Refresh.
func (r *Resources) AddDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, &source{dir: dir})
}

// AddEmbedded registers build-time generated resources as one source.
// They behave like a directory source, except the content is
// authoritative and never re-read.
func (r *Resources) AddEmbedded(resources []EmbeddedResource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := &source{embedded: true, scanned: true, entries: make(map[string]*entry)}
	for _, res := range resources {
		name := filepath.ToSlash(res.Path)
		ext := filepath.Ext(name)
		e := &entry{kind: EntryEmbedded, content: res.Content, path: res.Path, ext: ext, loaded: true}
		src.entries[name] = e
		if r.recognized(ext) {
			bare := strings.TrimSuffix(name, ext)
			if prev, ok := src.entries[bare]; !ok || r.extPriority(ext) < r.extPriority(prev.ext) {
				src.entries[bare] = e
			}
		}
	}
	r.sources = append(r.sources, src)
}

// scan enumerates a directory source, keyed by slash-separated path
// relative to the source root.
func (r *Resources) scan(src *source) error {
	src.entries = make(map[string]*entry)
	err := filepath.WalkDir(src.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if !r.recognized(ext) {
			return nil
		}
		rel, err := filepath.Rel(src.dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		e := &entry{kind: EntryFile, path: path, ext: ext}
		src.entries[name] = e
		bare := strings.TrimSuffix(name, ext)
		if prev, ok := src.entries[bare]; !ok || r.extPriority(ext) < r.extPriority(prev.ext) {
			src.entries[bare] = e
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrLoadError, "walking %s directory %s", r.label, src.dir)
	}
	src.scanned = true
	return nil
}

// load reads file content, honoring the debug re-read policy
func (r *Resources) load(e *entry) (string, error) {
	if e.kind != EntryFile {
		return e.content, nil
	}
	if e.loaded && !r.debug {
		return e.content, nil
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrLoadError, "reading %s %s", r.label, e.path)
	}
	e.content = string(data)
	e.loaded = true
	return e.content, nil
}

// Lookup resolves a name, with or without extension, to its resource
func (r *Resources) Lookup(name string) (Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.inline[name]; ok {
		return Resource{Name: name, Kind: e.kind, Content: e.content}, nil
	}

	for _, src := range r.sources {
		if !src.scanned {
			if err := r.scan(src); err != nil {
				return Resource{}, err
			}
		}
		e, ok := src.entries[name]
		if !ok {
			continue
		}
		content, err := r.load(e)
		if err != nil {
			return Resource{}, err
		}
		return Resource{Name: name, Kind: e.kind, Content: content, Path: e.path}, nil
	}

	return Resource{}, errors.Newf(r.missErr, "%s %q not found", r.label, name)
}

// Get returns just the content for a name
func (r *Resources) Get(name string) (string, error) {
	res, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// Has reports whether a name resolves
func (r *Resources) Has(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}

// Names returns every resolvable name, bare and suffixed, sorted
func (r *Resources) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	for name := range r.inline {
		seen[name] = true
	}
	for _, src := range r.sources {
		if !src.scanned {
			if err := r.scan(src); err != nil {
				logger := logging.GetLogger("registry")
			logger.Warn().Err(err).Str("dir", src.dir).Msg("Skipping unscannable source")
				continue
			}
		}
		for name := range src.entries {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh rescans every directory source and drops cached file
// content. Inline and embedded entries are unaffected.
func (r *Resources) Refresh() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, src := range r.sources {
		if src.embedded {
			continue
		}
		if err := r.scan(src); err != nil {
			return err
		}
	}
	return nil
}
