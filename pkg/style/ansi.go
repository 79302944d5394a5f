package style

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/tela/pkg/color"
)

// TerminalColor converts a color to the lipgloss color reference used
// when emitting ANSI. Cube colors resolve against the palette and
// quantize to the 256-color table; the terminal's own palette then
// maps the index back to the themed value.
func TerminalColor(c color.Color, p *color.Palette) lipgloss.TerminalColor {
	switch c.Kind() {
	case color.KindNamed:
		return lipgloss.Color(strconv.Itoa(int(c.ANSI())))
	case color.KindPalette:
		return lipgloss.Color(strconv.Itoa(int(c.Index())))
	case color.KindRGB:
		r, g, b := c.RGBBytes()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	case color.KindCube:
		resolved := p.Resolve(c)
		return lipgloss.Color(strconv.Itoa(int(color.QuantizeIndex(resolved))))
	}
	return lipgloss.NoColor{}
}

// Lipgloss converts attributes to a lipgloss style bound to the given
// renderer. Hidden has no lipgloss equivalent and is handled by Render.
func (a Attributes) Lipgloss(p *color.Palette, renderer *lipgloss.Renderer) lipgloss.Style {
	s := renderer.NewStyle()
	if a.FG != nil {
		s = s.Foreground(TerminalColor(*a.FG, p))
	}
	if a.BG != nil {
		s = s.Background(TerminalColor(*a.BG, p))
	}
	if a.Bold != nil && *a.Bold {
		s = s.Bold(true)
	}
	if a.Dim != nil && *a.Dim {
		s = s.Faint(true)
	}
	if a.Italic != nil && *a.Italic {
		s = s.Italic(true)
	}
	if a.Underline != nil && *a.Underline {
		s = s.Underline(true)
	}
	if a.Blink != nil && *a.Blink {
		s = s.Blink(true)
	}
	if a.Reverse != nil && *a.Reverse {
		s = s.Reverse(true)
	}
	if a.Strikethrough != nil && *a.Strikethrough {
		s = s.Strikethrough(true)
	}
	return s
}

// Render wraps text in the ANSI sequences for these attributes.
// Preexisting escape sequences inside text pass through untouched.
func (a Attributes) Render(text string, p *color.Palette, renderer *lipgloss.Renderer) string {
	out := a.Lipgloss(p, renderer).Render(text)
	if a.Hidden != nil && *a.Hidden {
		// SGR 8/28: conceal is not in lipgloss's vocabulary
		out = "\x1b[8m" + out + "\x1b[28m"
	}
	return out
}
