package render

import (
	"sort"
	"sync"
)

// Context is what providers see when a render happens
type Context struct {
	// Mode is the resolved output mode, never auto
	Mode OutputMode
	// Width is the layout width in columns
	Width int
	// ThemeName is the active theme's name
	ThemeName string
	// Data is the handler data being rendered
	Data map[string]interface{}
}

// Provider computes one context value per render
type Provider func(Context) interface{}

// Providers holds named context entries, static values or callbacks.
// At render time every entry is evaluated once; the results merge
// under the handler data, data keys winning.
type Providers struct {
	mu      sync.RWMutex
	static  map[string]interface{}
	derived map[string]Provider
}

func NewProviders() *Providers {
	return &Providers{
		static:  make(map[string]interface{}),
		derived: make(map[string]Provider),
	}
}

// SetValue registers a precomputed context value
func (p *Providers) SetValue(name string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.derived, name)
	p.static[name] = value
}

// SetProvider registers a callback evaluated per render
func (p *Providers) SetProvider(name string, fn Provider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.static, name)
	p.derived[name] = fn
}

// Names lists registered entries sorted
func (p *Providers) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.static)+len(p.derived))
	for n := range p.static {
		names = append(names, n)
	}
	for n := range p.derived {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Collect evaluates all entries into a flat map
func (p *Providers) Collect(ctx Context) map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]interface{}, len(p.static)+len(p.derived))
	for n, v := range p.static {
		out[n] = v
	}
	for n, fn := range p.derived {
		out[n] = fn(ctx)
	}
	return out
}
