package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// variablePattern matches {{ dotted.path }} placeholders
var variablePattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][\w.]*)\s*\}\}`)

// Subst is the substitution-only engine: {{ dotted.path }} lookups
// against the data map, nothing else. Control structures and filters
// pass through verbatim. It exists for callers that render trusted
// one-line snippets and want no template machinery behind them.
type Subst struct{}

func NewSubst() *Subst { return &Subst{} }

func (e *Subst) Name() string { return "subst" }

func (e *Subst) Expand(name, source string, data map[string]interface{}, _ bool) (string, error) {
	out := variablePattern.ReplaceAllStringFunc(source, func(m string) string {
		path := variablePattern.FindStringSubmatch(m)[1]
		v, ok := lookupPath(data, path)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%v", v)
	})
	return out, nil
}

func lookupPath(data map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
