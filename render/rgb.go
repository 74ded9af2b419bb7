package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// Predefined default color
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// FromTriple converts a 0..255 float triple (pen and swatch storage) to RGB
func FromTriple(c [3]float64) RGB {
	return RGB{R: clamp(c[0]), G: clamp(c[1]), B: clamp(c[2])}
}

// colorful converts to the go-colorful representation
func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Blend mixes src over c in Lab space so tints stay perceptually even.
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	return fromColorful(c.colorful().BlendLab(src.colorful(), alpha))
}

// Darken moves c toward black by amount (0..1)
func Darken(c RGB, amount float64) RGB {
	return Blend(c, RGBBlack, amount)
}

// Lighten moves c toward white by amount (0..1)
func Lighten(c RGB, amount float64) RGB {
	return Blend(c, RGBWhite, amount)
}

// Contrast picks black or white text for readability on bg
func Contrast(bg RGB) RGB {
	l, _, _ := bg.colorful().Lab()
	if l > 0.6 {
		return RGBBlack
	}
	return RGBWhite
}

// Hex parses a #rrggbb literal, falling back to black
func Hex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBBlack
	}
	return fromColorful(c)
}
