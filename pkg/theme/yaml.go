package theme

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/style"
)

// FromYAML parses the YAML theme grammar: one style per top-level
// key, whose value is a shorthand string, a bare identifier naming
// another style (an alias), or an attribute map with optional light
// and dark sub-maps. Definition order is preserved.
func FromYAML(name string, data []byte) (*Theme, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrParseError, "parsing theme %q", name)
	}

	t := New(name)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return t, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrParseError, "theme %q must be a mapping at the top level", name)
	}

	// Alias classification needs the full key set first: a bare
	// identifier on the right-hand side is an alias only when it
	// names another style in the document.
	keys := make(map[string]bool)
	for i := 0; i < len(root.Content); i += 2 {
		keys[root.Content[i].Value] = true
	}

	for i := 0; i < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		styleName := keyNode.Value

		def, err := parseDefinition(styleName, valNode, keys)
		if err != nil {
			return nil, err
		}
		t.Add(styleName, def)
	}
	return t, nil
}

func parseDefinition(styleName string, node *yaml.Node, keys map[string]bool) (style.Definition, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		value := node.Value
		if isBareIdentifier(value) && value != styleName && keys[value] {
			return style.AliasOf(value), nil
		}
		attrs, err := style.ParseShorthand(value)
		if err != nil {
			return style.Definition{}, err
		}
		return style.Concrete(attrs), nil

	case yaml.MappingNode:
		var raw map[string]interface{}
		if err := node.Decode(&raw); err != nil {
			return style.Definition{}, errors.Wrapf(err, errors.ErrParseError, "style %q", styleName)
		}
		base, err := style.ParseMap(raw)
		if err != nil {
			return style.Definition{}, err
		}
		def := style.Concrete(base)
		for _, variant := range []string{"light", "dark"} {
			sub, ok := raw[variant]
			if !ok {
				continue
			}
			subMap, ok := sub.(map[string]interface{})
			if !ok {
				return style.Definition{}, errors.Newf(errors.ErrParseError, "style %q: %s must be a mapping", styleName, variant)
			}
			attrs, err := style.ParseMap(subMap)
			if err != nil {
				return style.Definition{}, err
			}
			if variant == "light" {
				def.Light = &attrs
			} else {
				def.Dark = &attrs
			}
		}
		return def, nil

	default:
		return style.Definition{}, errors.Newf(errors.ErrParseError, "style %q has an unsupported value shape", styleName)
	}
}

// isBareIdentifier reports whether s looks like a plain style name:
// one token of letters, digits, dashes, dots or underscores.
func isBareIdentifier(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t#(") {
		return false
	}
	return true
}
