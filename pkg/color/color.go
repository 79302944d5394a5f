// Package color defines the color model used by styles and themes.
//
// A Color is one of four shapes: a named ANSI color, a 256-palette
// index, a direct RGB triple, or a cube coordinate. Cube coordinates
// are theme-relative: they only become concrete RGB once resolved
// against a Palette (see palette.go).
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
)

// Kind discriminates the color union
type Kind int

const (
	// KindNamed is one of the 16 ANSI colors
	KindNamed Kind = iota
	// KindPalette is a 256-color palette index
	KindPalette
	// KindRGB is a direct sRGB triple
	KindRGB
	// KindCube is a theme-relative cube coordinate in [0,1]^3
	KindCube
)

// Color is a tagged union over the four color shapes
type Color struct {
	kind  Kind
	ansi  uint8
	index uint8
	r     uint8
	g     uint8
	b     uint8
	cr    float64
	cg    float64
	cb    float64
}

// Kind returns the shape of the color
func (c Color) Kind() Kind {
	return c.kind
}

// ANSI returns the ANSI index for a named color
func (c Color) ANSI() uint8 {
	return c.ansi
}

// Index returns the palette index for a palette color
func (c Color) Index() uint8 {
	return c.index
}

// RGBBytes returns the channels of an RGB color
func (c Color) RGBBytes() (uint8, uint8, uint8) {
	return c.r, c.g, c.b
}

// CubeCoords returns the cube coordinates of a cube color
func (c Color) CubeCoords() (float64, float64, float64) {
	return c.cr, c.cg, c.cb
}

// ansiNames maps normalized color names to ANSI indices.
// gray/grey are aliases for bright black.
var ansiNames = map[string]uint8{
	"black":         0,
	"red":           1,
	"green":         2,
	"yellow":        3,
	"blue":          4,
	"magenta":       5,
	"cyan":          6,
	"white":         7,
	"brightblack":   8,
	"gray":          8,
	"grey":          8,
	"brightred":     9,
	"brightgreen":   10,
	"brightyellow":  11,
	"brightblue":    12,
	"brightmagenta": 13,
	"brightcyan":    14,
	"brightwhite":   15,
}

// IsNamedColor reports whether name is a recognized ANSI color name
func IsNamedColor(name string) bool {
	_, ok := ansiNames[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// Named builds a color from an ANSI color name
func Named(name string) (Color, error) {
	idx, ok := ansiNames[normalizeName(name)]
	if !ok {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "unknown color name %q", name)
	}
	return Color{kind: KindNamed, ansi: idx}, nil
}

// Palette256 builds a color from a 256-palette index
func Palette256(index int) (Color, error) {
	if index < 0 || index > 255 {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "palette index %d out of range 0-255", index)
	}
	return Color{kind: KindPalette, index: uint8(index)}, nil
}

// RGB builds a color from sRGB channels
func RGB(r, g, b uint8) Color {
	return Color{kind: KindRGB, r: r, g: g, b: b}
}

// Cube builds a theme-relative cube color; each coordinate must be in [0,1]
func Cube(r, g, b float64) (Color, error) {
	for _, v := range []float64{r, g, b} {
		if v < 0 || v > 1 {
			return Color{}, errors.Newf(errors.ErrInvalidColor, "cube coordinate %v out of range [0,1]", v)
		}
	}
	return Color{kind: KindCube, cr: r, cg: g, cb: b}, nil
}

// Parse builds a color from any of the literal forms a theme document
// may carry: a named string, "#rgb"/"#rrggbb" hex, "cube(p%, p%, p%)",
// an integer palette index, or an [r, g, b] triple.
func Parse(value interface{}) (Color, error) {
	switch v := value.(type) {
	case string:
		return parseString(v)
	case int:
		return Palette256(v)
	case int64:
		return Palette256(int(v))
	case uint64:
		return Palette256(int(v))
	case float64:
		if v != float64(int(v)) {
			return Color{}, errors.Newf(errors.ErrInvalidColor, "palette index %v is not an integer", v)
		}
		return Palette256(int(v))
	case []interface{}:
		return parseTriple(v)
	default:
		return Color{}, errors.Newf(errors.ErrInvalidColor, "unsupported color literal %v (%T)", value, value)
	}
}

func parseString(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, errors.New(errors.ErrInvalidColor, "empty color literal")
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.HasPrefix(strings.ToLower(s), "cube(") {
		return parseCube(s)
	}
	if isDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Color{}, errors.Wrapf(err, errors.ErrInvalidColor, "bad palette index %q", s)
		}
		return Palette256(n)
	}
	return Named(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6:
		// full form
	default:
		return Color{}, errors.Newf(errors.ErrInvalidColor, "hex color %q must have 3 or 6 digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "hex color %q has non-hex digits", s)
	}
	return RGB(uint8(n>>16), uint8(n>>8&0xff), uint8(n&0xff)), nil
}

func parseCube(s string) (Color, error) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < open {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "malformed cube literal %q", s)
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "cube literal %q needs exactly 3 components", s)
	}
	coords := make([]float64, 3)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, "%")
		pct, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Color{}, errors.Wrapf(err, errors.ErrInvalidColor, "bad cube component %q", part)
		}
		if pct < 0 || pct > 100 {
			return Color{}, errors.Newf(errors.ErrInvalidColor, "cube component %v%% out of range 0-100", pct)
		}
		coords[i] = pct / 100
	}
	return Cube(coords[0], coords[1], coords[2])
}

func parseTriple(v []interface{}) (Color, error) {
	if len(v) != 3 {
		return Color{}, errors.Newf(errors.ErrInvalidColor, "rgb triple must have 3 elements, got %d", len(v))
	}
	channels := make([]uint8, 3)
	for i, elem := range v {
		var n int
		switch e := elem.(type) {
		case int:
			n = e
		case int64:
			n = int(e)
		case uint64:
			n = int(e)
		case float64:
			if e != float64(int(e)) {
				return Color{}, errors.Newf(errors.ErrInvalidColor, "rgb channel %v is not an integer", e)
			}
			n = int(e)
		default:
			return Color{}, errors.Newf(errors.ErrInvalidColor, "rgb channel %v (%T) is not a number", elem, elem)
		}
		if n < 0 || n > 255 {
			return Color{}, errors.Newf(errors.ErrInvalidColor, "rgb channel %d out of range 0-255", n)
		}
		channels[i] = uint8(n)
	}
	return RGB(channels[0], channels[1], channels[2]), nil
}

// String renders the color back to a literal form, mostly for logs
func (c Color) String() string {
	switch c.kind {
	case KindNamed:
		for name, idx := range ansiNames {
			if idx == c.ansi && name != "gray" && name != "grey" {
				return name
			}
		}
		return fmt.Sprintf("ansi(%d)", c.ansi)
	case KindPalette:
		return strconv.Itoa(int(c.index))
	case KindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	case KindCube:
		return fmt.Sprintf("cube(%.0f%%, %.0f%%, %.0f%%)", c.cr*100, c.cg*100, c.cb*100)
	}
	return "invalid"
}
