package style

import (
	"strings"

	"github.com/arthur-debert/tela/pkg/color"
)

// ApplyCSSDeclaration folds a single CSS property/value pair into the
// attributes. Recognized properties follow the CSS subset themes may
// use; anything unrecognized or unparseable is silently ignored, which
// matches how browsers treat unknown declarations.
func (a *Attributes) ApplyCSSDeclaration(property, value string) {
	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)

	on := true
	switch property {
	case "color":
		if c, err := color.Parse(value); err == nil {
			a.FG = &c
		}
	case "background-color", "background":
		if c, err := color.Parse(value); err == nil {
			a.BG = &c
		}
	case "font-weight":
		if strings.EqualFold(value, "bold") {
			a.Bold = &on
		}
	case "font-style":
		if strings.EqualFold(value, "italic") {
			a.Italic = &on
		}
	case "text-decoration":
		switch strings.ToLower(value) {
		case "underline":
			a.Underline = &on
		case "line-through":
			a.Strikethrough = &on
		}
	case "visibility":
		if strings.EqualFold(value, "hidden") {
			a.Hidden = &on
		}
	default:
		// direct flag properties: "bold: true", "dim: true", ...
		if slot := a.flag(property); slot != nil {
			if strings.EqualFold(value, "true") {
				*slot = &on
			}
		}
	}
}
