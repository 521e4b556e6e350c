package trail

import (
	"image/color"
	"math"
)

// Color is an opaque trail base color with components in [0, 1].
// Per-vertex alpha comes from the trail's opacity fade.
type Color struct {
	R, G, B float32
}

// RGB creates a color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: float32(r), G: float32(g), B: float32(b)}
}

// FromColor converts a standard color.Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// Unpremultiply.
	return RGB(float64(r)/float64(a), float64(g)/float64(a), float64(b)/float64(a))
}

// NRGBA converts the color to an 8-bit standard color with alpha a in [0, 1].
func (c Color) NRGBA(a float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(float64(c.R) * 255)),
		G: uint8(clamp255(float64(c.G) * 255)),
		B: uint8(clamp255(float64(c.B) * 255)),
		A: uint8(clamp255(float64(a) * 255)),
	}
}

// Array returns the components as an array, the form stored in vertices.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// valid reports whether every component is within [0, 1].
func (c Color) valid() bool {
	for _, v := range c.Array() {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with an optional leading '#'.
// Invalid input yields White.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	default:
		return White
	}
	return RGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	White   = RGB(1, 1, 1)
	Yellow  = RGB(1, 1, 0)
	Cyan    = RGB(0, 1, 1)
	Magenta = RGB(1, 0, 1)
)

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB(r+m, g+m, b+m)
}
