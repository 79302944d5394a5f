package theme

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/style"
)

// FromCSS parses the CSS-subset theme grammar. Class selectors map to
// style names, comma-separated selectors define the same attributes on
// multiple names, and @media (prefers-color-scheme: dark|light) blocks
// supply the adaptive variants. Invalid declarations are ignored; only
// malformed top-level structure is an error.
func FromCSS(name string, data []byte) (*Theme, error) {
	sheet, err := parser.Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParseError, "parsing CSS theme %q", name)
	}

	t := New(name)
	for _, rule := range sheet.Rules {
		switch rule.Kind {
		case css.QualifiedRule:
			applyCSSRule(t, rule, style.VariantNone)
		case css.AtRule:
			variant := mediaVariant(rule)
			if variant == style.VariantNone {
				continue
			}
			for _, inner := range rule.Rules {
				if inner.Kind == css.QualifiedRule {
					applyCSSRule(t, inner, variant)
				}
			}
		}
	}
	return t, nil
}

// mediaVariant recognizes @media (prefers-color-scheme: dark|light)
func mediaVariant(rule *css.Rule) style.Variant {
	if rule.Name != "@media" {
		return style.VariantNone
	}
	prelude := strings.ToLower(rule.Prelude)
	if !strings.Contains(prelude, "prefers-color-scheme") {
		return style.VariantNone
	}
	switch {
	case strings.Contains(prelude, "dark"):
		return style.VariantDark
	case strings.Contains(prelude, "light"):
		return style.VariantLight
	default:
		return style.VariantNone
	}
}

func applyCSSRule(t *Theme, rule *css.Rule, variant style.Variant) {
	var attrs style.Attributes
	for _, decl := range rule.Declarations {
		attrs.ApplyCSSDeclaration(decl.Property, decl.Value)
	}
	if attrs.IsZero() {
		return
	}

	for _, selector := range rule.Selectors {
		styleName := strings.TrimPrefix(strings.TrimSpace(selector), ".")
		if styleName == "" {
			continue
		}

		def, ok := t.Get(styleName)
		if !ok {
			def = style.Concrete(style.Attributes{})
		}
		switch variant {
		case style.VariantLight:
			merged := attrs
			if def.Light != nil {
				merged = def.Light.Merge(attrs)
			}
			def.Light = &merged
		case style.VariantDark:
			merged := attrs
			if def.Dark != nil {
				merged = def.Dark.Merge(attrs)
			}
			def.Dark = &merged
		default:
			def.Base = def.Base.Merge(attrs)
		}
		t.Add(styleName, def)
	}
}
