package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBValue is a concrete sRGB triple
type RGBValue struct {
	R, G, B uint8
}

// Palette holds the eight RGB anchors at the corners of the unit cube,
// plus optional background and foreground overrides for the (0,0,0)
// and (1,1,1) corners. Cube-coordinate colors resolve against it by
// trilinear interpolation in CIE LAB.
type Palette struct {
	Black   RGBValue
	Red     RGBValue
	Green   RGBValue
	Yellow  RGBValue
	Blue    RGBValue
	Magenta RGBValue
	Cyan    RGBValue
	White   RGBValue

	// Background replaces Black at the (0,0,0) corner when set
	Background *RGBValue
	// Foreground replaces White at the (1,1,1) corner when set
	Foreground *RGBValue
}

// DefaultPalette returns a palette anchored at the conventional
// terminal primaries.
func DefaultPalette() *Palette {
	return &Palette{
		Black:   RGBValue{0, 0, 0},
		Red:     RGBValue{205, 49, 49},
		Green:   RGBValue{13, 188, 121},
		Yellow:  RGBValue{229, 229, 16},
		Blue:    RGBValue{36, 114, 200},
		Magenta: RGBValue{188, 63, 188},
		Cyan:    RGBValue{17, 168, 205},
		White:   RGBValue{229, 229, 229},
	}
}

// bg returns the effective (0,0,0) corner
func (p *Palette) bg() RGBValue {
	if p.Background != nil {
		return *p.Background
	}
	return p.Black
}

// fg returns the effective (1,1,1) corner
func (p *Palette) fg() RGBValue {
	if p.Foreground != nil {
		return *p.Foreground
	}
	return p.White
}

func toColorful(v RGBValue) colorful.Color {
	return colorful.Color{
		R: float64(v.R) / 255.0,
		G: float64(v.G) / 255.0,
		B: float64(v.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGBValue {
	clamped := c.Clamped()
	r, g, b := clamped.RGB255()
	return RGBValue{R: r, G: g, B: b}
}

// blendLab interpolates between two colors in CIE LAB space
func blendLab(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, t)
}

// ResolveCube resolves the cube coordinate (r, g, b) in [0,1]^3 to a
// concrete sRGB value by trilinear interpolation between the eight
// anchors in CIE LAB: four edge blends along r, two face blends along
// g, one final blend along b.
func (p *Palette) ResolveCube(r, g, b float64) RGBValue {
	// Exact corners bypass the LAB round trip so anchors come back
	// bit-for-bit.
	if corner, ok := p.corner(r, g, b); ok {
		return corner
	}

	c000 := toColorful(p.bg())
	c100 := toColorful(p.Red)
	c010 := toColorful(p.Green)
	c110 := toColorful(p.Yellow)
	c001 := toColorful(p.Blue)
	c101 := toColorful(p.Magenta)
	c011 := toColorful(p.Cyan)
	c111 := toColorful(p.fg())

	e00 := blendLab(c000, c100, r)
	e10 := blendLab(c010, c110, r)
	e01 := blendLab(c001, c101, r)
	e11 := blendLab(c011, c111, r)

	f0 := blendLab(e00, e10, g)
	f1 := blendLab(e01, e11, g)

	return fromColorful(blendLab(f0, f1, b))
}

// corner returns the anchor for exact {0,1}^3 coordinates
func (p *Palette) corner(r, g, b float64) (RGBValue, bool) {
	isCorner := func(v float64) bool { return v == 0 || v == 1 }
	if !isCorner(r) || !isCorner(g) || !isCorner(b) {
		return RGBValue{}, false
	}
	switch {
	case r == 0 && g == 0 && b == 0:
		return p.bg(), true
	case r == 1 && g == 0 && b == 0:
		return p.Red, true
	case r == 0 && g == 1 && b == 0:
		return p.Green, true
	case r == 1 && g == 1 && b == 0:
		return p.Yellow, true
	case r == 0 && g == 0 && b == 1:
		return p.Blue, true
	case r == 1 && g == 0 && b == 1:
		return p.Magenta, true
	case r == 0 && g == 1 && b == 1:
		return p.Cyan, true
	default:
		return p.fg(), true
	}
}

// Resolve reduces any color to a concrete sRGB value. Named and
// palette colors map through the standard 256-color table; cube
// colors interpolate against the palette anchors.
func (p *Palette) Resolve(c Color) RGBValue {
	switch c.Kind() {
	case KindNamed:
		return p.resolveNamed(c.ANSI())
	case KindPalette:
		return standard256(c.Index())
	case KindRGB:
		r, g, b := c.RGBBytes()
		return RGBValue{r, g, b}
	case KindCube:
		return p.ResolveCube(c.CubeCoords())
	}
	return RGBValue{}
}

// resolveNamed resolves the 16 ANSI colors against the palette's own
// anchors so themed terminals stay coherent. Bright variants fall back
// to the standard table.
func (p *Palette) resolveNamed(idx uint8) RGBValue {
	switch idx {
	case 0:
		return p.bg()
	case 1:
		return p.Red
	case 2:
		return p.Green
	case 3:
		return p.Yellow
	case 4:
		return p.Blue
	case 5:
		return p.Magenta
	case 6:
		return p.Cyan
	case 7:
		return p.fg()
	default:
		return standard256(idx)
	}
}

// QuantizeIndex maps a concrete sRGB value to the nearest entry of the
// 6x6x6 color cube in the 256-color palette.
func QuantizeIndex(v RGBValue) uint8 {
	r := float64(v.R) / 255.0
	g := float64(v.G) / 255.0
	b := float64(v.B) / 255.0
	idx := 16 + 36*int(math.Round(5*r)) + 6*int(math.Round(5*g)) + int(math.Round(5*b))
	return uint8(idx)
}

// GeneratePalette produces the themed 256-color table tail: 216 cube
// colors from the 6x6x6 grid resolved through LAB interpolation,
// followed by a 24-step grayscale ramp between bg and fg, exclusive
// of both endpoints.
func (p *Palette) GeneratePalette() []RGBValue {
	out := make([]RGBValue, 0, 240)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				out = append(out, p.ResolveCube(float64(r)/5, float64(g)/5, float64(b)/5))
			}
		}
	}
	bg := toColorful(p.bg())
	fg := toColorful(p.fg())
	for i := 1; i <= 24; i++ {
		out = append(out, fromColorful(blendLab(bg, fg, float64(i)/25)))
	}
	return out
}

// standard256 returns the conventional xterm 256-color table entry
func standard256(idx uint8) RGBValue {
	switch {
	case idx < 16:
		return ansi16[idx]
	case idx < 232:
		n := int(idx) - 16
		r := n / 36
		g := (n / 6) % 6
		b := n % 6
		return RGBValue{cubeLevel(r), cubeLevel(g), cubeLevel(b)}
	default:
		v := uint8(8 + 10*(int(idx)-232))
		return RGBValue{v, v, v}
	}
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + 40*n)
}

// ansi16 is the conventional VGA-ish base table
var ansi16 = [16]RGBValue{
	{0, 0, 0},
	{205, 49, 49},
	{13, 188, 121},
	{229, 229, 16},
	{36, 114, 200},
	{188, 63, 188},
	{17, 168, 205},
	{229, 229, 229},
	{102, 102, 102},
	{241, 76, 76},
	{35, 209, 139},
	{245, 245, 67},
	{59, 142, 234},
	{214, 112, 214},
	{41, 184, 219},
	{229, 229, 229},
}
