package color_test

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tela/pkg/color"
	"github.com/arthur-debert/tela/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    color.Kind
		wantErr bool
	}{
		{name: "named", input: "cyan", want: color.KindNamed},
		{name: "named_bright", input: "bright-red", want: color.KindNamed},
		{name: "gray_alias", input: "grey", want: color.KindNamed},
		{name: "hex_long", input: "#1e1e2e", want: color.KindRGB},
		{name: "hex_short", input: "#fa0", want: color.KindRGB},
		{name: "palette_int", input: 240, want: color.KindPalette},
		{name: "palette_string", input: "196", want: color.KindPalette},
		{name: "rgb_triple", input: []interface{}{30, 30, 46}, want: color.KindRGB},
		{name: "cube", input: "cube(50%, 0%, 100%)", want: color.KindCube},
		{name: "unknown_name", input: "chartreuse-ish", wantErr: true},
		{name: "hex_wrong_length", input: "#12345", wantErr: true},
		{name: "hex_bad_digits", input: "#zzzzzz", wantErr: true},
		{name: "palette_out_of_range", input: 256, wantErr: true},
		{name: "triple_wrong_length", input: []interface{}{1, 2}, wantErr: true},
		{name: "triple_out_of_range", input: []interface{}{0, 0, 300}, wantErr: true},
		{name: "cube_out_of_range", input: "cube(120%, 0%, 0%)", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := color.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidColor),
					"expected INVALID_COLOR, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Kind())
		})
	}
}

func TestParseHexExpansion(t *testing.T) {
	c, err := color.Parse("#fa0")
	require.NoError(t, err)
	r, g, b := c.RGBBytes()
	assert.Equal(t, [3]uint8{0xff, 0xaa, 0x00}, [3]uint8{r, g, b})
}

func TestLabRoundTrip(t *testing.T) {
	// Sampling the full byte lattice is slow; a stride of 17 still
	// covers every channel boundary including 0 and 255.
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				in := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
				l, a, bb := in.Lab()
				out := colorful.Lab(l, a, bb).Clamped()
				rr, gg, bbb := out.RGB255()
				assert.InDelta(t, r, int(rr), 1)
				assert.InDelta(t, g, int(gg), 1)
				assert.InDelta(t, b, int(bbb), 1)
			}
		}
	}
}

func TestCubeCorners(t *testing.T) {
	p := color.DefaultPalette()
	bg := color.RGBValue{30, 30, 46}
	fg := color.RGBValue{205, 214, 244}
	p.Background = &bg
	p.Foreground = &fg

	tests := []struct {
		name    string
		r, g, b float64
		want    color.RGBValue
	}{
		{"origin_is_bg", 0, 0, 0, bg},
		{"red_corner", 1, 0, 0, p.Red},
		{"green_corner", 0, 1, 0, p.Green},
		{"yellow_corner", 1, 1, 0, p.Yellow},
		{"blue_corner", 0, 0, 1, p.Blue},
		{"magenta_corner", 1, 0, 1, p.Magenta},
		{"cyan_corner", 0, 1, 1, p.Cyan},
		{"far_corner_is_fg", 1, 1, 1, fg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ResolveCube(tt.r, tt.g, tt.b))
		})
	}
}

func TestResolveCubeInterior(t *testing.T) {
	p := color.DefaultPalette()
	mid := p.ResolveCube(0.5, 0.5, 0.5)
	// Interior points must land strictly inside the sRGB range; the
	// exact value depends on LAB arithmetic, so just sanity-check it
	// is neither anchor.
	assert.NotEqual(t, p.Black, mid)
	assert.NotEqual(t, p.White, mid)
}

func TestQuantizeIndex(t *testing.T) {
	tests := []struct {
		name string
		in   color.RGBValue
		want uint8
	}{
		{"black", color.RGBValue{0, 0, 0}, 16},
		{"white", color.RGBValue{255, 255, 255}, 231},
		{"pure_red", color.RGBValue{255, 0, 0}, 196},
		{"pure_green", color.RGBValue{0, 255, 0}, 46},
		{"pure_blue", color.RGBValue{0, 0, 255}, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, color.QuantizeIndex(tt.in))
		})
	}
}

func TestGeneratePalette(t *testing.T) {
	p := color.DefaultPalette()
	entries := p.GeneratePalette()
	require.Len(t, entries, 240)

	// First entry is the (0,0,0) cube corner, i.e. bg
	assert.Equal(t, p.Black, entries[0])
	// Entry 215 is the (1,1,1) corner, i.e. fg
	assert.Equal(t, p.White, entries[215])

	// The grayscale ramp excludes both endpoints
	assert.NotEqual(t, p.Black, entries[216])
	assert.NotEqual(t, p.White, entries[239])
}

func TestResolveNamed(t *testing.T) {
	p := color.DefaultPalette()
	bg := color.RGBValue{30, 30, 46}
	p.Background = &bg

	c, err := color.Named("black")
	require.NoError(t, err)
	assert.Equal(t, bg, p.Resolve(c))

	c, err = color.Named("red")
	require.NoError(t, err)
	assert.Equal(t, p.Red, p.Resolve(c))
}

func TestColorString(t *testing.T) {
	c, _ := color.Parse("#1e1e2e")
	assert.Equal(t, "#1e1e2e", c.String())

	c, _ = color.Parse(196)
	assert.Equal(t, "196", c.String())

	c, _ = color.Parse("cube(50%, 0%, 100%)")
	assert.Equal(t, "cube(50%, 0%, 100%)", c.String())
}
