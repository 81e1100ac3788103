package starfield

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color. Alpha travels separately through the Surface calls.
type RGB struct {
	R, G, B uint8
}

// NRGBA returns c with a straight (non-premultiplied) alpha in [0,1].
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(Clamp01(alpha)*255 + 0.5)}
}

// Colorful converts c for blending.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts a blended color back, clamping out-of-gamut values.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// hex parses a "#rrggbb" literal. It panics on malformed input, so only use
// it with constants.
func hex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return FromColorful(c)
}

var (
	White  = hex("#ffffff")
	Accent = hex("#4ecdc4") // constellation lines, trails, pointer glow
)

// Palette holds the celestial star colors, sampled uniformly per star.
var Palette = [8]RGB{
	White,
	hex("#c8dcff"), // blue-white
	hex("#b4d2ff"), // light blue
	hex("#fff0dc"), // warm white
	hex("#ffdcb4"), // pale gold
	Accent,         // teal
	hex("#dcc8ff"), // lavender
	hex("#ffc8c8"), // rose white
}
