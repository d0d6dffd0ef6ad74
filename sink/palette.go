package sink

import (
	"fmt"

	"github.com/fatih/color"
)

// Color is a named display color.
type Color struct {
	Name    string
	R, G, B uint8
	// Attr is the closest ANSI foreground color.
	Attr color.Attribute
}

// Palette assigns colors to cluster indices.
type Palette []Color

// DefaultPalette holds the six cluster hues of the reference scene.
var DefaultPalette = Palette{
	{Name: "red", R: 255, G: 0, B: 0, Attr: color.FgRed},
	{Name: "green", R: 0, G: 255, B: 0, Attr: color.FgGreen},
	{Name: "blue", R: 0, G: 0, B: 255, Attr: color.FgBlue},
	{Name: "yellow", R: 255, G: 235, B: 4, Attr: color.FgYellow},
	{Name: "cyan", R: 0, G: 255, B: 255, Attr: color.FgCyan},
	{Name: "magenta", R: 255, G: 0, B: 255, Attr: color.FgMagenta},
}

// Color returns the color for cluster i. Indices wrap around the palette,
// so clusters i and i+len(p) share a color.
func (p Palette) Color(i int) Color {
	if len(p) == 0 {
		return Color{Name: "white", R: 255, G: 255, B: 255, Attr: color.FgWhite}
	}
	n := len(p)
	return p[((i%n)+n)%n]
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
