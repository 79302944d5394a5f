// Package style models appearance attributes, their parsing from YAML
// maps, shorthand strings and CSS declarations, and their resolution
// through alias chains into concrete terminal styles.
package style

import (
	"strings"

	"github.com/arthur-debert/tela/pkg/color"
	"github.com/arthur-debert/tela/pkg/errors"
)

// Attributes is the parsed appearance of a style. Nil means "inherit
// from base"; a set pointer means "override".
type Attributes struct {
	FG            *color.Color
	BG            *color.Color
	Bold          *bool
	Dim           *bool
	Italic        *bool
	Underline     *bool
	Blink         *bool
	Reverse       *bool
	Hidden        *bool
	Strikethrough *bool
}

// flagNames maps attribute keys to accessors for the boolean flags
var flagNames = []string{
	"bold", "dim", "italic", "underline", "blink", "reverse", "hidden", "strikethrough",
}

func (a *Attributes) flag(name string) **bool {
	switch name {
	case "bold":
		return &a.Bold
	case "dim":
		return &a.Dim
	case "italic":
		return &a.Italic
	case "underline":
		return &a.Underline
	case "blink":
		return &a.Blink
	case "reverse":
		return &a.Reverse
	case "hidden":
		return &a.Hidden
	case "strikethrough":
		return &a.Strikethrough
	}
	return nil
}

// IsZero reports whether no attribute is set
func (a Attributes) IsZero() bool {
	if a.FG != nil || a.BG != nil {
		return false
	}
	for _, name := range flagNames {
		if *a.flag(name) != nil {
			return false
		}
	}
	return true
}

// Merge returns a copy of a with every attribute set in other
// overriding the corresponding attribute in a. Merge is associative
// and the zero Attributes is its identity.
func (a Attributes) Merge(other Attributes) Attributes {
	out := a
	if other.FG != nil {
		out.FG = other.FG
	}
	if other.BG != nil {
		out.BG = other.BG
	}
	for _, name := range flagNames {
		if v := *other.flag(name); v != nil {
			*out.flag(name) = v
		}
	}
	return out
}

// variantKeys are sub-maps handled by the adaptive layer, not
// attributes themselves.
var variantKeys = map[string]bool{"light": true, "dark": true}

// ParseMap parses attributes from a YAML-shaped map such as
// {fg: cyan, bold: true}. The light and dark sub-maps are skipped
// here; the adaptive layer parses them separately.
func ParseMap(m map[string]interface{}) (Attributes, error) {
	var a Attributes
	for key, value := range m {
		key = strings.ToLower(key)
		if variantKeys[key] {
			continue
		}
		switch key {
		case "fg", "foreground":
			c, err := color.Parse(value)
			if err != nil {
				return Attributes{}, err
			}
			a.FG = &c
		case "bg", "background":
			c, err := color.Parse(value)
			if err != nil {
				return Attributes{}, err
			}
			a.BG = &c
		default:
			slot := a.flag(key)
			if slot == nil {
				return Attributes{}, errors.Newf(errors.ErrUnknownAttribute, "unknown style attribute %q", key)
			}
			b, ok := value.(bool)
			if !ok {
				return Attributes{}, errors.Newf(errors.ErrUnknownAttribute, "attribute %q wants a bool, got %v (%T)", key, value, value)
			}
			*slot = &b
		}
	}
	return a, nil
}

// ParseShorthand parses a compact style string such as "cyan bold" or
// "yellow italic". At most one color token is allowed; every other
// token must be a flag name.
func ParseShorthand(s string) (Attributes, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Attributes{}, errors.New(errors.ErrInvalidShorthand, "empty style shorthand")
	}

	var a Attributes
	sawColor := false
	for _, tok := range fields {
		lower := strings.ToLower(tok)
		if slot := a.flag(lower); slot != nil {
			on := true
			*slot = &on
			continue
		}
		c, err := color.Parse(tok)
		if err != nil {
			return Attributes{}, errors.Wrapf(err, errors.ErrInvalidShorthand, "token %q is neither a flag nor a color", tok)
		}
		if sawColor {
			return Attributes{}, errors.Newf(errors.ErrInvalidShorthand, "shorthand %q has more than one color", s)
		}
		sawColor = true
		a.FG = &c
	}
	return a, nil
}
