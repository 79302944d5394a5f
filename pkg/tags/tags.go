// Package tags implements the second rendering pass: rewriting
// bracket-delimited style tags in expanded template text. Tags look
// like [name]content[/name], nest arbitrarily, and name styles in a
// resolved style registry. Unknown names are literal text unless the
// processor is strict.
package tags

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/tela/pkg/color"
	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/style"
)

// Transform selects what happens to recognized tags
type Transform int

const (
	// TransformApply replaces tags with ANSI-styled content
	TransformApply Transform = iota
	// TransformRemove strips the tag markers, keeping content
	TransformRemove
	// TransformKeep leaves the text verbatim
	TransformKeep
)

func (t Transform) String() string {
	switch t {
	case TransformApply:
		return "apply"
	case TransformRemove:
		return "remove"
	case TransformKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// UnknownPolicy decides what to do with tag-shaped text whose name is
// not in the registry
type UnknownPolicy int

const (
	// UnknownPassThrough keeps unknown tags as literal text
	UnknownPassThrough UnknownPolicy = iota
	// UnknownStrict fails the pass on the first unknown tag
	UnknownStrict
)

// Processor rewrites style tags against a resolved style registry
type Processor struct {
	styles   *style.Registry
	palette  *color.Palette
	renderer *lipgloss.Renderer
	policy   UnknownPolicy
}

// New creates a processor. palette may be nil for the default palette;
// renderer may be nil for the lipgloss default.
func New(styles *style.Registry, palette *color.Palette, renderer *lipgloss.Renderer) *Processor {
	if palette == nil {
		palette = color.DefaultPalette()
	}
	return &Processor{
		styles:   styles,
		palette:  palette,
		renderer: renderer,
		policy:   UnknownPassThrough,
	}
}

// WithPolicy sets the unknown-tag policy
func (p *Processor) WithPolicy(policy UnknownPolicy) *Processor {
	p.policy = policy
	return p
}

// Process runs the selected transform over input
func (p *Processor) Process(input string, t Transform) (string, error) {
	if t == TransformKeep {
		return input, nil
	}
	nodes, err := p.parse(input)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := p.emit(&sb, nodes, t, style.Attributes{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// node is either a literal text run or a styled span with children
type node struct {
	text     string
	tag      string
	children []node
}

// parse builds the tag tree. Tag-shaped text with an unknown name is
// folded into the surrounding literal run (pass-through policy) or
// rejected (strict). Known tags must balance.
func (p *Processor) parse(input string) ([]node, error) {
	type frame struct {
		tag      string
		children []node
	}
	stack := []frame{{}}
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			top := &stack[len(stack)-1]
			top.children = append(top.children, node{text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(input) {
		c := input[i]
		if c != '[' {
			text.WriteByte(c)
			i++
			continue
		}
		name, closing, end := scanTag(input, i)
		if name == "" {
			// not tag-shaped (covers ANSI CSI sequences, whose
			// parameters are never identifiers)
			text.WriteByte(c)
			i++
			continue
		}
		if !p.styles.Has(name) {
			if p.policy == UnknownStrict {
				return nil, errors.Newf(errors.ErrNotFound,
					"unknown style tag %q", name)
			}
			text.WriteString(input[i:end])
			i = end
			continue
		}
		flush()
		if !closing {
			stack = append(stack, frame{tag: name})
		} else {
			if len(stack) == 1 {
				return nil, errors.Newf(errors.ErrParseError,
					"closing tag [/%s] without matching open", name)
			}
			top := stack[len(stack)-1]
			if top.tag != name {
				return nil, errors.Newf(errors.ErrParseError,
					"closing tag [/%s] does not match open tag [%s]", name, top.tag)
			}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, node{tag: top.tag, children: top.children})
		}
		i = end
	}
	if len(stack) > 1 {
		return nil, errors.Newf(errors.ErrParseError,
			"unclosed style tag [%s]", stack[len(stack)-1].tag)
	}
	flush()
	return stack[0].children, nil
}

// scanTag checks whether input[start:] begins a tag-shaped token.
// Returns the tag name, whether it is a closing tag, and the index
// past the ']'. An empty name means not tag-shaped.
func scanTag(input string, start int) (name string, closing bool, end int) {
	i := start + 1
	if i < len(input) && input[i] == '/' {
		closing = true
		i++
	}
	j := i
	for j < len(input) && isNameByte(input[j], j > i) {
		j++
	}
	if j == i || j >= len(input) || input[j] != ']' {
		return "", false, start
	}
	return input[i:j], closing, j + 1
}

func isNameByte(c byte, tail bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case tail && (c >= '0' && c <= '9' || c == '-'):
		return true
	default:
		return false
	}
}

// emit walks the tree. enclosing is the merged attribute set of all
// open tags above this level; nested tags compose by merging their
// own attributes over it, inner values winning.
func (p *Processor) emit(sb *strings.Builder, nodes []node, t Transform, enclosing style.Attributes) error {
	for _, n := range nodes {
		if n.tag == "" {
			if t == TransformApply && !enclosing.IsZero() {
				sb.WriteString(enclosing.Render(n.text, p.palette, p.renderer))
			} else {
				sb.WriteString(n.text)
			}
			continue
		}
		effective := enclosing
		if t == TransformApply {
			attrs, err := p.styles.Resolve(n.tag)
			if err != nil {
				return err
			}
			effective = enclosing.Merge(attrs)
		}
		if err := p.emit(sb, n.children, t, effective); err != nil {
			return err
		}
	}
	return nil
}
